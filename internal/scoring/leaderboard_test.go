package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flipmatch/internal/deck"
)

func entry(score int, elapsed time.Duration) HighScoreEntry {
	return HighScoreEntry{
		ID:         fmt.Sprintf("e-%d-%d", score, elapsed),
		Score:      score,
		Elapsed:    elapsed,
		Moves:      10,
		Difficulty: deck.Easy,
	}
}

func TestLeaderboard_InsertKeepsOrder(t *testing.T) {
	var lb Leaderboard
	assert.True(t, lb.Insert(entry(100, time.Minute)))
	assert.True(t, lb.Insert(entry(300, time.Minute)))
	assert.True(t, lb.Insert(entry(200, time.Minute)))

	require.Len(t, lb.Entries, 3)
	assert.Equal(t, 300, lb.Entries[0].Score)
	assert.Equal(t, 200, lb.Entries[1].Score)
	assert.Equal(t, 100, lb.Entries[2].Score)
}

func TestLeaderboard_TiesBrokenByTime(t *testing.T) {
	var lb Leaderboard
	lb.Insert(entry(200, 90*time.Second))
	lb.Insert(entry(200, 45*time.Second))

	require.Len(t, lb.Entries, 2)
	assert.Equal(t, 45*time.Second, lb.Entries[0].Elapsed, "faster game ranks first on equal score")
}

func TestLeaderboard_AdmissionAtCapacity(t *testing.T) {
	var lb Leaderboard
	for i := 0; i < MaxLeaderboardEntries; i++ {
		require.True(t, lb.Insert(entry(100+i*10, time.Minute)))
	}
	require.Len(t, lb.Entries, MaxLeaderboardEntries)
	lowest := lb.Entries[len(lb.Entries)-1].Score

	// Lower than the floor: rejected, list untouched.
	assert.False(t, lb.Qualifies(lowest-1))
	assert.False(t, lb.Insert(entry(lowest-1, time.Second)))
	assert.Len(t, lb.Entries, MaxLeaderboardEntries)

	// Equal to the floor: also rejected (must beat it).
	assert.False(t, lb.Insert(entry(lowest, time.Second)))

	// Higher: admitted, lowest evicted, order kept.
	assert.True(t, lb.Insert(entry(lowest+5, time.Second)))
	assert.Len(t, lb.Entries, MaxLeaderboardEntries)
	assert.Equal(t, lowest+5, lb.Entries[len(lb.Entries)-1].Score)
	for i := 1; i < len(lb.Entries); i++ {
		assert.GreaterOrEqual(t, lb.Entries[i-1].Score, lb.Entries[i].Score)
	}
}

func TestLeaderboard_TopAndForDifficulty(t *testing.T) {
	var lb Leaderboard
	lb.Insert(entry(100, time.Minute))
	lb.Insert(entry(200, time.Minute))
	hard := entry(300, time.Minute)
	hard.Difficulty = deck.Hard
	lb.Insert(hard)

	assert.Len(t, lb.Top(2), 2)
	assert.Len(t, lb.Top(10), 3)

	got := lb.ForDifficulty(deck.Hard)
	require.Len(t, got, 1)
	assert.Equal(t, 300, got[0].Score)
}
