package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"flipmatch/internal/audio"
	"flipmatch/internal/deck"
	"flipmatch/internal/dependencies/random"
	"flipmatch/internal/engine"
	"flipmatch/internal/tui"
)

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("difficulty", "d", "easy", "difficulty: easy, medium or hard")
	cmd.Flags().StringP("theme", "t", deck.DefaultThemeID, "card theme: animals, foods, shapes or flags")
	cmd.Flags().Int64("seed", 0, "fixed random seed for a reproducible deal")
	cmd.Flags().Bool("resume", true, "resume a suspended game if one exists")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	difficultyName, _ := cmd.Flags().GetString("difficulty")
	themeID, _ := cmd.Flags().GetString("theme")
	seed, _ := cmd.Flags().GetInt64("seed")
	resume, _ := cmd.Flags().GetBool("resume")

	difficulty, err := deck.ParseDifficulty(difficultyName)
	if err != nil {
		return err
	}

	var rng random.Source
	if seed != 0 {
		rng = random.NewSeeded(seed)
	} else {
		rng = random.New()
	}

	settings, err := a.records.Settings()
	if err != nil {
		a.log.Warn().Err(err).Msg("could not load settings, using defaults")
	}

	cfg := engine.Config{
		Difficulty: difficulty,
		ThemeID:    themeID,
		Records:    a.records,
		Rand:       rng,
		Clock:      a.clock,
		Logger:     &a.log,
	}
	if settings.AutoFlipDelayMs > 0 {
		cfg.FlipDelay = time.Duration(settings.AutoFlipDelayMs) * time.Millisecond
	}

	var eng *engine.Engine
	if resume {
		snap, err := a.records.Snapshot()
		if err != nil {
			a.log.Warn().Err(err).Msg("could not load snapshot")
		} else if snap != nil {
			eng = engine.NewFromSnapshot(cfg, snap)
			a.log.Info().Time("savedAt", snap.SavedAt).Msg("resuming suspended game")
		}
	}
	if eng == nil {
		eng = engine.New(cfg)
	}

	var sound audio.Player = audio.Silent{}
	if settings.SoundEnabled {
		sound = audio.NewBell(os.Stderr)
	}
	defer sound.Close()

	model := tui.New(eng, a.records, settings, sound, a.log)

	// Resumed games continue as soon as the board is up.
	if eng.State() == engine.StatePaused {
		eng.ResumeGame()
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running the game: %w", err)
	}
	return nil
}
