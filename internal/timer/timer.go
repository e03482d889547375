// Package timer implements the elapsed-time accumulator for a game.
// Accumulation is tick-driven: the owner delivers one Tick per second
// while the timer is running; no ticks are counted while paused or idle.
package timer

import (
	"fmt"
	"time"
)

// State is the timer lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Timer counts whole elapsed seconds across pause/resume cycles.
type Timer struct {
	state   State
	seconds int
}

// New returns an idle timer with a zero accumulator.
func New() *Timer {
	return &Timer{}
}

// State returns the current lifecycle state.
func (t *Timer) State() State {
	return t.state
}

// Start moves Idle or Stopped to Running. The accumulator is zeroed only
// when starting from Idle; starting from Stopped continues the old value.
func (t *Timer) Start() {
	switch t.state {
	case Idle:
		t.seconds = 0
		t.state = Running
	case Stopped:
		t.state = Running
	}
}

// Pause freezes the accumulator. Only valid from Running.
func (t *Timer) Pause() {
	if t.state == Running {
		t.state = Paused
	}
}

// Resume continues accumulation. Only valid from Paused.
func (t *Timer) Resume() {
	if t.state == Paused {
		t.state = Running
	}
}

// Stop freezes the value from any state.
func (t *Timer) Stop() {
	t.state = Stopped
}

// Reset zeroes the accumulator and returns to Idle from any state.
func (t *Timer) Reset() {
	t.state = Idle
	t.seconds = 0
}

// Tick adds one second while Running; otherwise it is ignored.
func (t *Timer) Tick() {
	if t.state == Running {
		t.seconds++
	}
}

// Seconds returns the accumulated whole seconds.
func (t *Timer) Seconds() int {
	return t.seconds
}

// SetSeconds overwrites the accumulator, used when restoring a session
// snapshot.
func (t *Timer) SetSeconds(s int) {
	if s < 0 {
		s = 0
	}
	t.seconds = s
}

// Elapsed returns the accumulated time as a duration.
func (t *Timer) Elapsed() time.Duration {
	return time.Duration(t.seconds) * time.Second
}

// Format renders the elapsed time as MM:SS.
func (t *Timer) Format() string {
	return fmt.Sprintf("%02d:%02d", t.seconds/60, t.seconds%60)
}
