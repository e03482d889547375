// Package engine owns the authoritative state of one game: the deck, the
// flip/compare/match sequencing, scoring, the session lifecycle and
// persistence of scores, stats and the suspended-session snapshot.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/rs/zerolog"

	"flipmatch/internal/deck"
	"flipmatch/internal/dependencies/clock"
	"flipmatch/internal/dependencies/random"
	"flipmatch/internal/scoring"
	"flipmatch/internal/storage"
	"flipmatch/internal/timer"
)

// GameState is the session lifecycle state.
type GameState string

const (
	StateNotStarted GameState = "not_started"
	StateInProgress GameState = "in_progress"
	StatePaused     GameState = "paused"
	StateComplete   GameState = "complete"
)

const (
	evStart  = "start"
	evPause  = "pause"
	evResume = "resume"
	evFinish = "finish"
	evReset  = "reset"
)

// Default delays. FlipDelay covers the face-up animation before a
// comparison resolves; MismatchDelay is the extra time mismatched cards
// stay visible; CompletionDelay defers the completion notification so a
// final flip can finish rendering.
const (
	DefaultFlipDelay          = 600 * time.Millisecond
	DefaultMismatchDelay      = 800 * time.Millisecond
	DefaultAutoResolveStagger = 300 * time.Millisecond
	DefaultCompletionDelay    = 500 * time.Millisecond
	DefaultAutosaveInterval   = 30 * time.Second
)

// Config wires the engine's collaborators. Zero-value fields get
// production defaults; tests inject seeded randomness, a mock clock and a
// manual scheduler.
type Config struct {
	Difficulty deck.Difficulty
	ThemeID    string

	// Records persists scores, stats and snapshots. Nil disables
	// persistence entirely (used by some tests).
	Records   *storage.Records
	Rand      random.Source
	Clock     clock.Clock
	Scheduler Scheduler
	Logger    *zerolog.Logger

	FlipDelay          time.Duration
	MismatchDelay      time.Duration
	AutoResolveStagger time.Duration
	CompletionDelay    time.Duration
	// AutosaveInterval of 0 takes the default; negative disables autosave.
	AutosaveInterval time.Duration
}

func (c *Config) applyDefaults() {
	if c.Rand == nil {
		c.Rand = random.New()
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Scheduler == nil {
		c.Scheduler = NewTimerScheduler()
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
	if c.FlipDelay == 0 {
		c.FlipDelay = DefaultFlipDelay
	}
	if c.MismatchDelay == 0 {
		c.MismatchDelay = DefaultMismatchDelay
	}
	if c.AutoResolveStagger == 0 {
		c.AutoResolveStagger = DefaultAutoResolveStagger
	}
	if c.CompletionDelay == 0 {
		c.CompletionDelay = DefaultCompletionDelay
	}
	if c.AutosaveInterval == 0 {
		c.AutosaveInterval = DefaultAutosaveInterval
	}
}

// Engine is the game-state machine. All public methods are safe for
// concurrent use; internally every mutation happens under one mutex, so
// callbacks and clicks never interleave mid-update.
type Engine struct {
	mu  sync.Mutex
	cfg Config
	log zerolog.Logger

	fsm   *fsm.FSM
	gen   *deck.Generator
	sched Scheduler

	board        deck.Deck
	flipped      []string
	matchedPairs int
	moves        int
	score        int
	clk          *timer.Timer

	// processing blocks new flips while a comparison is pending.
	processing bool
	// completionFired makes the completion transition one-shot.
	completionFired bool
	// epoch invalidates callbacks scheduled against a superseded session.
	epoch uint64

	listeners []Listener
	autosave  TaskHandle
}

// New creates an engine with a freshly generated deck, in NotStarted.
func New(cfg Config) *Engine {
	cfg.applyDefaults()
	e := &Engine{
		cfg:   cfg,
		log:   cfg.Logger.With().Str("component", "engine").Logger(),
		gen:   deck.NewGenerator(cfg.Rand),
		sched: cfg.Scheduler,
		clk:   timer.New(),
	}
	e.board = e.gen.Generate(cfg.Difficulty, cfg.ThemeID)
	e.fsm = e.newLifecycleFSM(StateNotStarted)
	return e
}

// NewFromSnapshot rebuilds a suspended session. The engine starts Paused;
// ResumeGame continues play. Unresolved flips are not restored — the
// snapshot normalizes them face-down.
func NewFromSnapshot(cfg Config, snap *storage.Snapshot) *Engine {
	cfg.Difficulty = snap.Difficulty
	cfg.ThemeID = snap.ThemeID
	cfg.applyDefaults()
	e := &Engine{
		cfg:   cfg,
		log:   cfg.Logger.With().Str("component", "engine").Logger(),
		gen:   deck.NewGenerator(cfg.Rand),
		sched: cfg.Scheduler,
		clk:   timer.New(),
	}
	e.board = snap.Deck
	e.matchedPairs = snap.MatchedPairs
	e.moves = snap.Moves
	e.score = snap.Score
	e.clk.Start()
	e.clk.Pause()
	e.clk.SetSeconds(snap.ElapsedSeconds)
	e.fsm = e.newLifecycleFSM(StatePaused)
	return e
}

func (e *Engine) newLifecycleFSM(initial GameState) *fsm.FSM {
	return fsm.NewFSM(
		string(initial),
		fsm.Events{
			{Name: evStart, Src: []string{string(StateNotStarted)}, Dst: string(StateInProgress)},
			{Name: evPause, Src: []string{string(StateInProgress)}, Dst: string(StatePaused)},
			{Name: evResume, Src: []string{string(StatePaused)}, Dst: string(StateInProgress)},
			{Name: evFinish, Src: []string{string(StateInProgress)}, Dst: string(StateComplete)},
			{Name: evReset, Src: []string{
				string(StateInProgress), string(StatePaused), string(StateComplete),
			}, Dst: string(StateNotStarted)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, ev *fsm.Event) {
				e.log.Debug().Str("from", ev.Src).Str("to", ev.Dst).Str("event", ev.Event).Msg("lifecycle transition")
			},
		},
	)
}

// Subscribe registers a listener for engine events.
func (e *Engine) Subscribe(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// State returns the current lifecycle state.
func (e *Engine) State() GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return GameState(e.fsm.Current())
}

// SessionView is a read-only copy of the session for rendering.
type SessionView struct {
	State        GameState
	Cards        []deck.Card
	Moves        int
	MatchedPairs int
	Pairs        int
	Score        int
	Elapsed      time.Duration
	TimeDisplay  string
	Processing   bool
	Difficulty   deck.Difficulty
	ThemeID      string
}

// View snapshots the session for the presentation layer.
func (e *Engine) View() SessionView {
	e.mu.Lock()
	defer e.mu.Unlock()
	cards := make([]deck.Card, len(e.board.Cards))
	copy(cards, e.board.Cards)
	return SessionView{
		State:        GameState(e.fsm.Current()),
		Cards:        cards,
		Moves:        e.moves,
		MatchedPairs: e.matchedPairs,
		Pairs:        e.cfg.Difficulty.Pairs(),
		Score:        e.score,
		Elapsed:      e.clk.Elapsed(),
		TimeDisplay:  e.clk.Format(),
		Processing:   e.processing,
		Difficulty:   e.cfg.Difficulty,
		ThemeID:      e.cfg.ThemeID,
	}
}

// StartGame begins play from NotStarted; elsewhere it is a no-op.
// HandleCardClick auto-starts, so calling this explicitly is optional.
func (e *Engine) StartGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startLocked()
}

func (e *Engine) startLocked() {
	if err := e.fsm.Event(context.Background(), evStart); err != nil {
		return
	}
	e.clk.Start()
	e.scheduleAutosaveLocked()
	e.maybeAutoResolveLocked()
}

// PauseGame freezes the timer and all pending delayed callbacks, and
// snapshots the session. No-op outside InProgress.
func (e *Engine) PauseGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.fsm.Event(context.Background(), evPause); err != nil {
		return
	}
	e.clk.Pause()
	e.sched.Pause()
	e.snapshotLocked()
}

// ResumeGame continues a paused session. No-op outside Paused.
func (e *Engine) ResumeGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.fsm.Event(context.Background(), evResume); err != nil {
		return
	}
	e.clk.Resume()
	e.sched.Resume()
	e.scheduleAutosaveLocked()
	e.maybeAutoResolveLocked()
}

// ResetGame abandons the current session and deals a fresh deck, from any
// state. Pending callbacks are cancelled, counters zeroed and the
// persisted snapshot cleared.
func (e *Engine) ResetGame() {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := GameState(e.fsm.Current())
	if (state == StateInProgress || state == StatePaused) && e.cfg.Records != nil {
		if st, err := e.cfg.Records.Stats(); err == nil {
			st.RecordAbandoned(e.moves, e.cfg.Clock.Now())
			if err := e.cfg.Records.SaveStats(st); err != nil {
				e.log.Warn().Err(err).Msg("could not save stats")
			}
		}
	}

	e.supersedeLocked()
	e.board = e.gen.Generate(e.cfg.Difficulty, e.cfg.ThemeID)
	e.flipped = nil
	e.matchedPairs = 0
	e.moves = 0
	e.score = 0
	e.clk.Reset()
	e.processing = false
	e.completionFired = false
	_ = e.fsm.Event(context.Background(), evReset)

	if e.cfg.Records != nil {
		if err := e.cfg.Records.ClearSnapshot(); err != nil {
			e.log.Warn().Err(err).Msg("could not clear snapshot")
		}
	}
}

// Close cancels all pending callbacks; the engine must not be used after.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.supersedeLocked()
}

func (e *Engine) supersedeLocked() {
	e.epoch++
	e.sched.CancelAll()
	e.sched.Resume()
	e.autosave = nil
}

// Tick advances the elapsed-time accumulator by one second while the
// session (and therefore the timer) is running. The presentation layer
// drives it from its once-per-second tick.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clk.Tick()
}

// HandleCardClick flips the identified card if the session allows it:
// in progress (auto-starting from NotStarted), no comparison pending, the
// card face-down and unmatched, and fewer than two cards already up.
// Rejected clicks are silent.
func (e *Engine) HandleCardClick(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch GameState(e.fsm.Current()) {
	case StateComplete, StatePaused:
		return
	case StateNotStarted:
		e.startLocked()
	}

	card, ok := e.board.ByID(id)
	if !ok || !e.canFlipLocked(card) {
		return
	}

	card.Flipped = true
	e.flipped = append(e.flipped, id)
	e.emitLocked(Event{Type: EventFlipped, CardIDs: []string{id}})

	if len(e.flipped) < 2 {
		return
	}

	// Second card of a comparison: count the move, block further flips
	// and resolve after the flip animation delay.
	e.moves++
	e.processing = true
	first, second := e.flipped[0], e.flipped[1]
	e.afterLocked(e.cfg.FlipDelay, func() {
		e.resolveLocked(first, second)
	})
}

func (e *Engine) canFlipLocked(card *deck.Card) bool {
	return !e.processing && !card.Flipped && !card.Matched && len(e.flipped) < 2
}

// afterLocked schedules fn to run under the engine lock, skipped if the
// session has been superseded in the meantime.
func (e *Engine) afterLocked(d time.Duration, fn func()) TaskHandle {
	epoch := e.epoch
	return e.sched.After(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.epoch != epoch {
			return
		}
		fn()
	})
}

func (e *Engine) resolveLocked(firstID, secondID string) {
	a, okA := e.board.ByID(firstID)
	b, okB := e.board.ByID(secondID)
	if !okA || !okB {
		return
	}

	if a.PairID == b.PairID {
		e.matchLocked(a, b)
		return
	}

	// Mismatch: keep both visible a while longer, then turn them back.
	e.afterLocked(e.cfg.MismatchDelay, func() {
		a.Flipped = false
		b.Flipped = false
		e.flipped = nil
		e.processing = false
		e.emitLocked(Event{Type: EventNoMatch, CardIDs: []string{a.ID, b.ID}})
	})
}

func (e *Engine) matchLocked(a, b *deck.Card) {
	a.Matched, b.Matched = true, true
	a.Flipped, b.Flipped = true, true
	e.matchedPairs++
	e.flipped = nil
	e.processing = false
	e.score = scoring.Score(e.moves, e.clk.Elapsed(), e.cfg.Difficulty, e.matchedPairs)
	e.emitLocked(Event{Type: EventMatched, CardIDs: []string{a.ID, b.ID}})

	if e.board.AllMatched() {
		e.completeLocked()
		return
	}
	e.maybeAutoResolveLocked()
}

// maybeAutoResolveLocked flips and matches the last remaining pair without
// player input: with one pair left the match is certain. The two flips are
// staggered to preserve the visual cue, and the comparison counts as a
// move just like manual play.
func (e *Engine) maybeAutoResolveLocked() {
	if e.processing || e.completionFired {
		return
	}
	if e.cfg.Difficulty.Pairs()-e.matchedPairs != 1 {
		return
	}
	remaining := e.board.Unmatched()
	if len(remaining) != 2 {
		return
	}

	e.processing = true
	c1, c2 := remaining[0], remaining[1]
	stagger := e.cfg.AutoResolveStagger

	e.afterLocked(stagger, func() {
		if !c1.Flipped {
			c1.Flipped = true
			e.emitLocked(Event{Type: EventFlipped, CardIDs: []string{c1.ID}})
		}
	})
	e.afterLocked(2*stagger, func() {
		if !c2.Flipped {
			c2.Flipped = true
			e.emitLocked(Event{Type: EventFlipped, CardIDs: []string{c2.ID}})
		}
		e.moves++
	})
	e.afterLocked(2*stagger+e.cfg.FlipDelay, func() {
		e.matchLocked(c1, c2)
	})
}

// completeLocked runs the completion transition exactly once: stop the
// timer, finalize the score, persist results, clear the snapshot and
// notify listeners after a short delay.
func (e *Engine) completeLocked() {
	if e.completionFired {
		return
	}
	e.completionFired = true

	e.clk.Stop()
	_ = e.fsm.Event(context.Background(), evFinish)
	if e.autosave != nil {
		e.autosave.Cancel()
		e.autosave = nil
	}

	elapsed := e.clk.Elapsed()
	e.score = scoring.Score(e.moves, elapsed, e.cfg.Difficulty, e.matchedPairs)

	summary := &CompletionSummary{
		Score:      e.score,
		Moves:      e.moves,
		Elapsed:    elapsed,
		Difficulty: e.cfg.Difficulty,
		Perfect:    e.moves == e.cfg.Difficulty.PerfectMoves(),
	}
	summary.NewHighScore = e.persistCompletionLocked(e.score, elapsed)

	e.log.Info().
		Int("score", e.score).
		Int("moves", e.moves).
		Dur("elapsed", elapsed).
		Bool("perfect", summary.Perfect).
		Msg("game complete")

	e.afterLocked(e.cfg.CompletionDelay, func() {
		e.emitLocked(Event{Type: EventCompleted, Completion: summary})
	})
}

// persistCompletionLocked commits the high score (when qualifying) and
// player stats, and clears the suspended-session snapshot. Storage
// failures are logged and ignored; the in-memory session stays
// authoritative.
func (e *Engine) persistCompletionLocked(score int, elapsed time.Duration) bool {
	rec := e.cfg.Records
	if rec == nil {
		return false
	}

	newHigh := false
	lb, err := rec.HighScores()
	if err != nil {
		e.log.Warn().Err(err).Msg("could not load high scores")
	} else {
		entry := scoring.HighScoreEntry{
			ID:         uuid.NewString(),
			Moves:      e.moves,
			Elapsed:    elapsed,
			Difficulty: e.cfg.Difficulty,
			Score:      score,
			Timestamp:  e.cfg.Clock.Now(),
		}
		if lb.Insert(entry) {
			newHigh = true
			if err := rec.SaveHighScores(lb); err != nil {
				e.log.Warn().Err(err).Msg("could not save high scores")
			}
		}
	}

	st, err := rec.Stats()
	if err != nil {
		e.log.Warn().Err(err).Msg("could not load stats")
	} else {
		st.RecordWin(e.moves, elapsed, e.cfg.Clock.Now())
		if err := rec.SaveStats(st); err != nil {
			e.log.Warn().Err(err).Msg("could not save stats")
		}
	}

	if err := rec.ClearSnapshot(); err != nil {
		e.log.Warn().Err(err).Msg("could not clear snapshot")
	}
	return newHigh
}

func (e *Engine) scheduleAutosaveLocked() {
	if e.cfg.AutosaveInterval < 0 || e.cfg.Records == nil {
		return
	}
	if e.autosave != nil {
		e.autosave.Cancel()
	}
	e.autosave = e.afterLocked(e.cfg.AutosaveInterval, func() {
		e.snapshotLocked()
		e.autosave = nil
		e.scheduleAutosaveLocked()
	})
}

// snapshotLocked persists the session for crash/resume recovery. Cards
// mid-comparison are saved face-down; a restored session never resumes a
// half-finished comparison.
func (e *Engine) snapshotLocked() {
	rec := e.cfg.Records
	if rec == nil {
		return
	}

	cards := make([]deck.Card, len(e.board.Cards))
	copy(cards, e.board.Cards)
	for i := range cards {
		if !cards[i].Matched {
			cards[i].Flipped = false
		}
	}

	snap := storage.Snapshot{
		Deck:           deck.Deck{Cards: cards},
		Difficulty:     e.cfg.Difficulty,
		ThemeID:        e.cfg.ThemeID,
		MatchedPairs:   e.matchedPairs,
		Moves:          e.moves,
		Score:          e.score,
		ElapsedSeconds: e.clk.Seconds(),
	}
	if err := rec.SaveSnapshot(snap); err != nil {
		e.log.Warn().Err(err).Msg("could not save snapshot")
	}
}

func (e *Engine) emitLocked(ev Event) {
	ev.Moves = e.moves
	ev.MatchedPairs = e.matchedPairs
	ev.Score = e.score
	for _, l := range e.listeners {
		l.HandleGameEvent(ev)
	}
}
