package random

import (
	"math/rand"
	"time"
)

// Source provides random number generation that can be seeded for
// reproducible deck generation under test.
type Source interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// MathRandom implements Source over math/rand with a private generator,
// so seeding one instance never affects another.
type MathRandom struct {
	rng *rand.Rand
}

// New creates a time-seeded MathRandom.
func New() *MathRandom {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded creates a MathRandom with a fixed seed.
func NewSeeded(seed int64) *MathRandom {
	return &MathRandom{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a random int in [0, n).
func (r *MathRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}
