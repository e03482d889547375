// Package tui renders the board and drives the engine from terminal
// input. All game rules live in the engine; this layer only translates
// key presses into engine operations and session views into frames.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"flipmatch/internal/audio"
	"flipmatch/internal/engine"
	"flipmatch/internal/scoring"
	"flipmatch/internal/storage"
)

type TickMsg time.Time

type engineEventMsg engine.Event

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model over one engine.
type Model struct {
	eng      *engine.Engine
	records  *storage.Records
	settings storage.Settings
	sound    audio.Player
	log      zerolog.Logger

	events chan engine.Event

	cursor     int
	width      int
	completion *engine.CompletionSummary
	topScores  []scoring.HighScoreEntry

	keys keyMap
	help help.Model
}

// New builds the model and subscribes it to engine events.
func New(eng *engine.Engine, records *storage.Records, settings storage.Settings, sound audio.Player, log zerolog.Logger) Model {
	m := Model{
		eng:      eng,
		records:  records,
		settings: settings,
		sound:    sound,
		log:      log,
		events:   make(chan engine.Event, 32),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}

	events := m.events
	eng.Subscribe(engine.ListenerFunc(func(ev engine.Event) {
		// Non-blocking: the engine emits under its lock, so a full
		// channel drops the event rather than stalling game logic.
		select {
		case events <- ev:
		default:
		}
	}))

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.waitForEvent())
}

func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return engineEventMsg(<-m.events)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.eng.Tick()
		return m, tickCmd()

	case engineEventMsg:
		return m.handleEngineEvent(engine.Event(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleEngineEvent(ev engine.Event) (tea.Model, tea.Cmd) {
	switch ev.Type {
	case engine.EventMatched:
		m.sound.Match()
	case engine.EventNoMatch:
		m.sound.NoMatch()
	case engine.EventCompleted:
		m.sound.Complete()
		m.completion = ev.Completion
		if m.records != nil {
			if lb, err := m.records.HighScores(); err == nil {
				m.topScores = lb.Top(5)
			}
		}
	}
	return m, m.waitForEvent()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		// Suspend the game so it can be resumed next run.
		if m.eng.State() == engine.StateInProgress {
			m.eng.PauseGame()
		}
		m.eng.Close()
		return m, tea.Quit
	}

	// Completion screen: only reset (new game) is meaningful.
	if m.completion != nil {
		if key.Matches(msg, m.keys.Reset) {
			m.eng.ResetGame()
			m.completion = nil
			m.topScores = nil
			m.cursor = 0
		}
		return m, nil
	}

	view := m.eng.View()
	cols := view.Difficulty.Cols()
	total := len(view.Cards)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+cols < total {
			m.cursor += cols
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor%cols > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%cols < cols-1 && m.cursor+1 < total {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Flip):
		if m.cursor < total {
			m.eng.HandleCardClick(view.Cards[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.Pause):
		switch view.State {
		case engine.StateInProgress:
			m.eng.PauseGame()
		case engine.StatePaused:
			m.eng.ResumeGame()
		}
	case key.Matches(msg, m.keys.Reset):
		m.eng.ResetGame()
		m.cursor = 0
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}
