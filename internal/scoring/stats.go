package scoring

import "time"

// PlayerStats aggregates results across games. BestTime and BestMoves only
// tighten; they are never relaxed by a worse game.
type PlayerStats struct {
	GamesPlayed int           `json:"gamesPlayed"`
	GamesWon    int           `json:"gamesWon"`
	BestTime    time.Duration `json:"bestTime"`  // zero until first win
	BestMoves   int           `json:"bestMoves"` // zero until first win
	TotalMoves  int           `json:"totalMoves"`
	AvgTime     time.Duration `json:"runningAverageTime"`
	LastPlayed  time.Time     `json:"lastPlayedTimestamp"`
}

// RecordWin folds one completed game into the aggregates.
func (p *PlayerStats) RecordWin(moves int, elapsed time.Duration, now time.Time) {
	p.GamesPlayed++
	p.GamesWon++
	p.TotalMoves += moves
	p.LastPlayed = now

	if p.BestTime == 0 || elapsed < p.BestTime {
		p.BestTime = elapsed
	}
	if p.BestMoves == 0 || moves < p.BestMoves {
		p.BestMoves = moves
	}

	// Running average over won games.
	prev := p.AvgTime * time.Duration(p.GamesWon-1)
	p.AvgTime = (prev + elapsed) / time.Duration(p.GamesWon)
}

// RecordAbandoned counts a game that was started but reset before
// completion. Moves spent still count toward the total.
func (p *PlayerStats) RecordAbandoned(moves int, now time.Time) {
	p.GamesPlayed++
	p.TotalMoves += moves
	p.LastPlayed = now
}
