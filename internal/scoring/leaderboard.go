package scoring

import (
	"sort"
	"time"

	"flipmatch/internal/deck"
)

// MaxLeaderboardEntries bounds the persisted leaderboard; the lowest entry
// is evicted when a qualifying score arrives at capacity.
const MaxLeaderboardEntries = 10

// HighScoreEntry is one persisted leaderboard row.
type HighScoreEntry struct {
	ID         string          `json:"id"`
	Moves      int             `json:"moves"`
	Elapsed    time.Duration   `json:"elapsedTime"`
	Difficulty deck.Difficulty `json:"difficulty"`
	Score      int             `json:"score"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Leaderboard is a bounded list of high scores, kept sorted by score
// descending with ties broken by elapsed time ascending.
type Leaderboard struct {
	Entries []HighScoreEntry `json:"entries"`
}

// Qualifies reports whether a score would be admitted right now.
func (l *Leaderboard) Qualifies(score int) bool {
	if len(l.Entries) < MaxLeaderboardEntries {
		return true
	}
	last := l.Entries[len(l.Entries)-1]
	return score > last.Score
}

// Insert adds the entry if it qualifies, evicting the lowest entry at
// capacity. Returns false when the entry was rejected.
func (l *Leaderboard) Insert(e HighScoreEntry) bool {
	if !l.Qualifies(e.Score) {
		return false
	}
	l.Entries = append(l.Entries, e)
	l.sort()
	if len(l.Entries) > MaxLeaderboardEntries {
		l.Entries = l.Entries[:MaxLeaderboardEntries]
	}
	return true
}

// Top returns up to n entries from the head of the board.
func (l *Leaderboard) Top(n int) []HighScoreEntry {
	if n > len(l.Entries) {
		n = len(l.Entries)
	}
	out := make([]HighScoreEntry, n)
	copy(out, l.Entries[:n])
	return out
}

// ForDifficulty returns the entries recorded at the given difficulty,
// preserving order.
func (l *Leaderboard) ForDifficulty(d deck.Difficulty) []HighScoreEntry {
	var out []HighScoreEntry
	for _, e := range l.Entries {
		if e.Difficulty == d {
			out = append(out, e)
		}
	}
	return out
}

func (l *Leaderboard) sort() {
	sort.SliceStable(l.Entries, func(i, j int) bool {
		if l.Entries[i].Score != l.Entries[j].Score {
			return l.Entries[i].Score > l.Entries[j].Score
		}
		return l.Entries[i].Elapsed < l.Entries[j].Elapsed
	})
}
