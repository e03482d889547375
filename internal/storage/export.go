package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"flipmatch/internal/scoring"
)

// ExportVersion tags the backup blob format.
const ExportVersion = 1

// ExportBlob is the single-document backup of all persisted data except
// the session snapshot. Pointer fields let import distinguish a missing
// sub-record from a present-but-zero one.
type ExportBlob struct {
	Version         int                  `json:"version"`
	ExportedAt      time.Time            `json:"exportedAt"`
	HighScores      *scoring.Leaderboard `json:"highScores"`
	Stats           *scoring.PlayerStats `json:"stats"`
	Settings        *Settings            `json:"settings"`
	PlayerName      string               `json:"playerName,omitempty"`
	ThemePreference string               `json:"themePreference,omitempty"`
}

// Export serializes the persisted records (minus the session snapshot)
// into a single JSON blob for backup.
func (r *Records) Export() ([]byte, error) {
	lb, err := r.HighScores()
	if err != nil {
		return nil, fmt.Errorf("could not load high scores: %w", err)
	}
	st, err := r.Stats()
	if err != nil {
		return nil, fmt.Errorf("could not load stats: %w", err)
	}
	settings, err := r.Settings()
	if err != nil {
		return nil, fmt.Errorf("could not load settings: %w", err)
	}
	name, err := r.PlayerName()
	if err != nil {
		return nil, fmt.Errorf("could not load player name: %w", err)
	}
	pref, err := r.ThemePreference()
	if err != nil {
		return nil, fmt.Errorf("could not load theme preference: %w", err)
	}

	blob := ExportBlob{
		Version:         ExportVersion,
		ExportedAt:      r.clock.Now(),
		HighScores:      &lb,
		Stats:           &st,
		Settings:        &settings,
		PlayerName:      name,
		ThemePreference: pref,
	}
	return json.MarshalIndent(blob, "", "  ")
}

// Import validates and applies a backup blob. The three mandatory
// sub-records (high scores, stats, settings) must all be present or the
// import is rejected without touching the store.
func (r *Records) Import(data []byte) error {
	var blob ExportBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return fmt.Errorf("malformed backup: %w", err)
	}
	if blob.Version != ExportVersion {
		return fmt.Errorf("unsupported backup version %d", blob.Version)
	}
	if blob.HighScores == nil || blob.Stats == nil || blob.Settings == nil {
		return fmt.Errorf("backup is missing mandatory records (high scores, stats and settings are required)")
	}

	if err := r.SaveHighScores(*blob.HighScores); err != nil {
		return err
	}
	if err := r.SaveStats(*blob.Stats); err != nil {
		return err
	}
	if err := r.SaveSettings(*blob.Settings); err != nil {
		return err
	}
	if blob.PlayerName != "" {
		if err := r.SetPlayerName(blob.PlayerName); err != nil {
			return err
		}
	}
	if blob.ThemePreference != "" {
		if err := r.SetThemePreference(blob.ThemePreference); err != nil {
			return err
		}
	}
	return nil
}
