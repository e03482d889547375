package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"flipmatch/internal/audio"
	"flipmatch/internal/deck"
	"flipmatch/internal/dependencies/mocks"
	"flipmatch/internal/dependencies/random"
	"flipmatch/internal/engine"
	"flipmatch/internal/storage"
)

func newTestModel(t *testing.T) (Model, *engine.Engine, *storage.Records) {
	t.Helper()
	clk := mocks.NewMockClock(time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
	rec := storage.NewRecords(storage.NewMemStore(), clk, zerolog.Nop())
	eng := engine.New(engine.Config{
		Difficulty:       deck.Easy,
		ThemeID:          deck.DefaultThemeID,
		Records:          rec,
		Rand:             random.NewSeeded(5),
		Clock:            clk,
		AutosaveInterval: -1,
	})
	t.Cleanup(eng.Close)
	m := New(eng, rec, storage.DefaultSettings(), audio.Silent{}, zerolog.Nop())
	return m, eng, rec
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_CursorMovement(t *testing.T) {
	m, _, _ := newTestModel(t)

	// Easy is a 2x4 grid. The cursor starts top-left and cannot leave it.
	m = press(m, runes("k"))
	m = press(m, runes("h"))
	if m.cursor != 0 {
		t.Fatalf("cursor escaped the top-left corner: %d", m.cursor)
	}

	m = press(m, runes("l"))
	if m.cursor != 1 {
		t.Fatalf("right: expected 1, got %d", m.cursor)
	}
	m = press(m, runes("j"))
	if m.cursor != 5 {
		t.Fatalf("down: expected 5, got %d", m.cursor)
	}
	m = press(m, runes("j"))
	if m.cursor != 5 {
		t.Fatalf("down from bottom row moved: %d", m.cursor)
	}
	m = press(m, runes("k"))
	if m.cursor != 1 {
		t.Fatalf("up: expected 1, got %d", m.cursor)
	}

	// Right edge.
	for i := 0; i < 10; i++ {
		m = press(m, runes("l"))
	}
	if m.cursor != 3 {
		t.Fatalf("right edge: expected 3, got %d", m.cursor)
	}
}

func TestModel_FlipStartsGame(t *testing.T) {
	m, eng, _ := newTestModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if eng.State() != engine.StateInProgress {
		t.Fatalf("flip should auto-start, state %v", eng.State())
	}
	v := eng.View()
	if !v.Cards[0].Flipped {
		t.Fatal("card under cursor was not flipped")
	}
}

func TestModel_PauseToggle(t *testing.T) {
	m, eng, _ := newTestModel(t)
	m = press(m, tea.KeyMsg{Type: tea.KeySpace})

	m = press(m, runes("p"))
	if eng.State() != engine.StatePaused {
		t.Fatalf("expected paused, got %v", eng.State())
	}
	m = press(m, runes("p"))
	if eng.State() != engine.StateInProgress {
		t.Fatalf("expected in progress, got %v", eng.State())
	}
}

func TestModel_ResetReturnsCursorHome(t *testing.T) {
	m, eng, _ := newTestModel(t)
	m = press(m, runes("l"))
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	m = press(m, runes("r"))
	if m.cursor != 0 {
		t.Fatalf("reset should home the cursor, got %d", m.cursor)
	}
	if eng.State() != engine.StateNotStarted {
		t.Fatalf("expected not started, got %v", eng.State())
	}
}

func TestModel_QuitSuspendsGame(t *testing.T) {
	m, eng, rec := newTestModel(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	next, cmd := m.Update(runes("q"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("quit should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("quit command did not produce tea.QuitMsg")
	}

	if eng.State() != engine.StatePaused {
		t.Fatalf("quit mid-game should pause, got %v", eng.State())
	}
	snap, err := rec.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snap == nil {
		t.Fatal("quit mid-game should leave a resumable snapshot")
	}
}
