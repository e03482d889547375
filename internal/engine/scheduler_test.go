package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

// These exercise the production scheduler with real timers, so the delays
// are short and the waits generous.

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestTimerScheduler_FiresOnce(t *testing.T) {
	s := NewTimerScheduler()
	var n int32
	s.After(10*time.Millisecond, func() { atomic.AddInt32(&n, 1) })

	waitFor(t, func() bool { return atomic.LoadInt32(&n) == 1 }, "task never fired")
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&n); got != 1 {
		t.Fatalf("task fired %d times", got)
	}
}

func TestTimerScheduler_CancelBeforeFire(t *testing.T) {
	s := NewTimerScheduler()
	var n int32
	h := s.After(50*time.Millisecond, func() { atomic.AddInt32(&n, 1) })

	if !h.Cancel() {
		t.Fatal("cancel of a pending task should succeed")
	}
	if h.Cancel() {
		t.Fatal("second cancel should report false")
	}

	time.Sleep(120 * time.Millisecond)
	if atomic.LoadInt32(&n) != 0 {
		t.Fatal("cancelled task fired")
	}
}

func TestTimerScheduler_CancelAfterFire(t *testing.T) {
	s := NewTimerScheduler()
	var n int32
	h := s.After(5*time.Millisecond, func() { atomic.AddInt32(&n, 1) })

	waitFor(t, func() bool { return atomic.LoadInt32(&n) == 1 }, "task never fired")
	if h.Cancel() {
		t.Fatal("cancel after fire should report false")
	}
}

func TestTimerScheduler_PauseHoldsTasks(t *testing.T) {
	s := NewTimerScheduler()
	var n int32
	s.After(30*time.Millisecond, func() { atomic.AddInt32(&n, 1) })
	s.Pause()

	time.Sleep(120 * time.Millisecond)
	if atomic.LoadInt32(&n) != 0 {
		t.Fatal("task fired while paused")
	}

	s.Resume()
	waitFor(t, func() bool { return atomic.LoadInt32(&n) == 1 }, "task never fired after resume")
}

func TestTimerScheduler_AfterWhilePaused(t *testing.T) {
	s := NewTimerScheduler()
	s.Pause()

	var n int32
	s.After(10*time.Millisecond, func() { atomic.AddInt32(&n, 1) })

	time.Sleep(80 * time.Millisecond)
	if atomic.LoadInt32(&n) != 0 {
		t.Fatal("task scheduled while paused fired before resume")
	}

	s.Resume()
	waitFor(t, func() bool { return atomic.LoadInt32(&n) == 1 }, "held task never fired")
}

func TestTimerScheduler_CancelAll(t *testing.T) {
	s := NewTimerScheduler()
	var n int32
	for i := 0; i < 5; i++ {
		s.After(30*time.Millisecond, func() { atomic.AddInt32(&n, 1) })
	}
	s.CancelAll()

	time.Sleep(120 * time.Millisecond)
	if atomic.LoadInt32(&n) != 0 {
		t.Fatalf("%d tasks fired after CancelAll", atomic.LoadInt32(&n))
	}
}

func TestTimerScheduler_CallbackMaySchedule(t *testing.T) {
	s := NewTimerScheduler()
	var n int32
	s.After(5*time.Millisecond, func() {
		s.After(5*time.Millisecond, func() { atomic.AddInt32(&n, 1) })
	})

	waitFor(t, func() bool { return atomic.LoadInt32(&n) == 1 }, "chained task never fired")
}
