package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flipmatch/internal/engine"
)

var (
	faceDownStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Foreground(lipgloss.Color("8")).
			Padding(0, 1)
	faceUpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
	matchedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")).
			Faint(true).
			Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("11")).
			Padding(0, 1)

	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	winStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	perfectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
)

func (m Model) View() string {
	if m.completion != nil {
		return m.completionView()
	}

	view := m.eng.View()
	cols := view.Difficulty.Cols()

	var b strings.Builder
	b.WriteString(titleStyle.Render("FLIPMATCH") + "  " + view.Difficulty.String() + "\n\n")

	var rows []string
	for start := 0; start < len(view.Cards); start += cols {
		end := start + cols
		if end > len(view.Cards) {
			end = len(view.Cards)
		}
		cells := make([]string, 0, cols)
		for i := start; i < end; i++ {
			card := view.Cards[i]

			face := "░░"
			style := faceDownStyle
			if card.Flipped || card.Matched {
				face = card.Value
				style = faceUpStyle
			}
			if card.Matched {
				style = matchedStyle
			}
			if i == m.cursor && view.State != engine.StateComplete {
				style = cursorStyle
			}
			cells = append(cells, style.Render(face))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n")

	status := fmt.Sprintf("SCORE: %d | MOVES: %d | PAIRS: %d/%d",
		view.Score, view.Moves, view.MatchedPairs, view.Pairs)
	if m.settings.ShowTimer {
		status += " | TIME: " + view.TimeDisplay
	}
	b.WriteString(statusStyle.Render(status) + "\n")

	if view.State == engine.StatePaused {
		b.WriteString(pausedStyle.Render("PAUSED") + " (press p to resume)\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) completionView() string {
	c := m.completion

	var b strings.Builder
	b.WriteString(winStyle.Render(fmt.Sprintf("You cleared the board! Final score: %d", c.Score)) + "\n")
	b.WriteString(fmt.Sprintf("Moves: %d | Time: %02d:%02d | Difficulty: %s\n",
		c.Moves, int(c.Elapsed.Seconds())/60, int(c.Elapsed.Seconds())%60, c.Difficulty))

	if c.Perfect {
		b.WriteString(perfectStyle.Render("Perfect game!") + "\n")
	}
	if c.NewHighScore {
		b.WriteString("You got a high score! Top scores:\n")
		for _, entry := range m.topScores {
			b.WriteString(fmt.Sprintf("  * %d (%s, %d moves) on %s\n",
				entry.Score, entry.Difficulty, entry.Moves,
				entry.Timestamp.Format("2006-01-02 15:04")))
		}
	}

	b.WriteString("\nPress r for a new game, q to quit.\n")
	return b.String()
}
