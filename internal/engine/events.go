package engine

import (
	"time"

	"flipmatch/internal/deck"
)

// EventType identifies the kind of engine notification.
type EventType string

const (
	// EventFlipped fires when a card turns face-up (player click or
	// auto-resolve).
	EventFlipped EventType = "flipped"
	// EventMatched fires when a comparison resolves as a match.
	EventMatched EventType = "matched"
	// EventNoMatch fires after a failed comparison, once both cards have
	// been turned face-down again.
	EventNoMatch EventType = "no_match"
	// EventCompleted fires exactly once per session, shortly after the
	// final pair is matched.
	EventCompleted EventType = "completed"
)

// Event is an engine-emitted notification. Counter fields reflect the
// session state at emission time.
type Event struct {
	Type         EventType
	CardIDs      []string
	Moves        int
	MatchedPairs int
	Score        int
	// Completion is set on EventCompleted only.
	Completion *CompletionSummary
}

// CompletionSummary is the payload of the completion notification.
type CompletionSummary struct {
	Score        int
	Moves        int
	Elapsed      time.Duration
	Difficulty   deck.Difficulty
	Perfect      bool
	NewHighScore bool
}

// Listener receives engine events. Listeners are invoked synchronously on
// the engine's mutation path and must not call back into the engine;
// hand the event off (e.g. onto a channel) instead.
type Listener interface {
	HandleGameEvent(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

func (f ListenerFunc) HandleGameEvent(ev Event) {
	f(ev)
}
