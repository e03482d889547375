package deck

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty selects the board size and time-bonus window for a game.
// It is chosen before a game starts and never changes mid-game.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties lists all playable difficulties in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

// Pairs returns the number of card pairs on the board.
func (d Difficulty) Pairs() int {
	switch d {
	case Medium:
		return 8
	case Hard:
		return 12
	default:
		return 4
	}
}

// CardCount returns the total number of cards (2 per pair).
func (d Difficulty) CardCount() int {
	return d.Pairs() * 2
}

// Rows returns the grid height used by the presentation layer.
func (d Difficulty) Rows() int {
	switch d {
	case Medium:
		return 4
	case Hard:
		return 4
	default:
		return 2
	}
}

// Cols returns the grid width used by the presentation layer.
func (d Difficulty) Cols() int {
	switch d {
	case Medium:
		return 4
	case Hard:
		return 6
	default:
		return 4
	}
}

// TimeLimit returns the time limit for the difficulty, if it has one.
// Easy has no limit; its time bonus instead uses a fixed threshold.
func (d Difficulty) TimeLimit() (time.Duration, bool) {
	switch d {
	case Medium:
		return 180 * time.Second, true
	case Hard:
		return 240 * time.Second, true
	default:
		return 0, false
	}
}

// PerfectMoves is the move count of a perfect game, defined as 2 * pairs.
func (d Difficulty) PerfectMoves() int {
	return d.Pairs() * 2
}
