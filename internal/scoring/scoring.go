package scoring

import (
	"time"

	"flipmatch/internal/deck"
)

// Score table. Completion bonuses only apply once every pair is matched.
const (
	// MatchBonus is awarded per matched pair.
	MatchBonus = 100
	// CompletionBonus is a flat bonus for finishing the board.
	CompletionBonus = 500
	// PerfectBonus is awarded for finishing in exactly PerfectMoves moves.
	PerfectBonus = 1000
	// TimeBonusPerSecond multiplies the seconds left under the limit (or
	// under TimeBonusThreshold when the difficulty has no limit).
	TimeBonusPerSecond = 5
	// MovePenaltyPerMove is subtracted per move beyond PerfectMoves.
	MovePenaltyPerMove = 10
	// TimeBonusThreshold is the time-bonus window for difficulties
	// without a time limit.
	TimeBonusThreshold = 120 * time.Second
)

// Score computes the score for a game in progress or at completion.
// It is pure: calling it incrementally after each match and once more at
// finalization agrees given identical inputs. Never negative.
func Score(moves int, elapsed time.Duration, d deck.Difficulty, matchedPairs int) int {
	s := matchedPairs * MatchBonus

	if matchedPairs > 0 && matchedPairs == d.Pairs() {
		s += CompletionBonus

		if moves == d.PerfectMoves() {
			s += PerfectBonus
		}

		secs := int(elapsed / time.Second)
		if limit, ok := d.TimeLimit(); ok {
			if remaining := int(limit/time.Second) - secs; remaining > 0 {
				s += remaining * TimeBonusPerSecond
			}
		} else if remaining := int(TimeBonusThreshold/time.Second) - secs; remaining > 0 {
			s += remaining * TimeBonusPerSecond
		}

		if over := moves - d.PerfectMoves(); over > 0 {
			s -= over * MovePenaltyPerMove
		}
	}

	if s < 0 {
		s = 0
	}
	return s
}
