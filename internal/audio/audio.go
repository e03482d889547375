// Package audio provides the sound cues for game events. The player is
// constructed once at startup and passed to whoever needs it; there is no
// lazily-created global handle.
package audio

import (
	"fmt"
	"io"
)

// Player emits the per-event sound cues.
type Player interface {
	Match()
	NoMatch()
	Complete()
	// Close releases any audio resources.
	Close() error
}

// Bell plays cues with the terminal bell. NoMatch is deliberately silent;
// a bell on every failed comparison gets grating fast.
type Bell struct {
	out io.Writer
}

// NewBell creates a Bell writing to out (normally stderr, so the TUI's
// stdout stream is untouched).
func NewBell(out io.Writer) *Bell {
	return &Bell{out: out}
}

func (b *Bell) Match() {
	fmt.Fprint(b.out, "\a")
}

func (b *Bell) NoMatch() {}

func (b *Bell) Complete() {
	fmt.Fprint(b.out, "\a")
}

func (b *Bell) Close() error {
	return nil
}

// Silent is the Player used when sound is disabled in settings.
type Silent struct{}

func (Silent) Match()       {}
func (Silent) NoMatch()     {}
func (Silent) Complete()    {}
func (Silent) Close() error { return nil }
