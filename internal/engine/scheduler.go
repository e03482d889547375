package engine

import (
	"sync"
	"time"
)

// TaskHandle is a cancellable scheduled callback.
type TaskHandle interface {
	// Cancel prevents the callback from running. Returns false when the
	// task already ran or was already cancelled.
	Cancel() bool
}

// Scheduler runs closures once after a delay. Every task is cancellable,
// and the whole scheduler can be paused, resumed or drained; the engine
// relies on this to keep stale callbacks from mutating a superseded
// session.
type Scheduler interface {
	After(d time.Duration, fn func()) TaskHandle
	// Pause freezes all pending tasks, preserving their remaining delay.
	Pause()
	// Resume restarts pending tasks with their preserved remaining delay.
	Resume()
	// CancelAll drops every pending task.
	CancelAll()
}

// TimerScheduler is the production Scheduler over time.AfterFunc.
type TimerScheduler struct {
	mu     sync.Mutex
	paused bool
	nextID int
	tasks  map[int]*timerTask
}

type timerTask struct {
	s         *TimerScheduler
	id        int
	fn        func()
	timer     *time.Timer
	deadline  time.Time
	remaining time.Duration
	done      bool
}

// NewTimerScheduler creates an empty, unpaused scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{tasks: make(map[int]*timerTask)}
}

// After schedules fn to run once after d. While paused, the task is held
// with remaining delay d until Resume.
func (s *TimerScheduler) After(d time.Duration, fn func()) TaskHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &timerTask{s: s, id: s.nextID, fn: fn}
	s.nextID++
	s.tasks[t.id] = t

	if s.paused {
		t.remaining = d
	} else {
		t.deadline = time.Now().Add(d)
		t.timer = time.AfterFunc(d, t.fire)
	}
	return t
}

func (t *timerTask) fire() {
	t.s.mu.Lock()
	if t.done {
		t.s.mu.Unlock()
		return
	}
	t.done = true
	delete(t.s.tasks, t.id)
	fn := t.fn
	// Run the callback outside the lock so it may schedule new tasks.
	t.s.mu.Unlock()
	fn()
}

func (t *timerTask) Cancel() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	if t.timer != nil {
		t.timer.Stop()
	}
	delete(t.s.tasks, t.id)
	return true
}

// Pause stops the underlying timers, recording how much delay each task
// still had.
func (s *TimerScheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return
	}
	s.paused = true

	now := time.Now()
	for _, t := range s.tasks {
		if t.timer != nil && t.timer.Stop() {
			t.remaining = t.deadline.Sub(now)
			if t.remaining < 0 {
				t.remaining = 0
			}
			t.timer = nil
		}
	}
}

// Resume restarts held tasks with their remaining delays.
func (s *TimerScheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused {
		return
	}
	s.paused = false

	for _, t := range s.tasks {
		if t.timer == nil {
			t.deadline = time.Now().Add(t.remaining)
			t.timer = time.AfterFunc(t.remaining, t.fire)
		}
	}
}

// CancelAll drops every pending task, fired or held.
func (s *TimerScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tasks {
		t.done = true
		if t.timer != nil {
			t.timer.Stop()
		}
		delete(s.tasks, id)
	}
}
