package storage

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"flipmatch/internal/deck"
	"flipmatch/internal/dependencies/clock"
	"flipmatch/internal/scoring"
)

// Logical record keys. The encoding behind each key belongs to Records;
// backends never interpret values.
const (
	KeyHighScores      = "highscores"
	KeySettings        = "settings"
	KeyStats           = "stats"
	KeySnapshot        = "session"
	KeyPlayerName      = "player-name"
	KeyThemePreference = "theme-preference"
)

// SnapshotMaxAge is the staleness window: suspended sessions older than
// this are discarded at load.
const SnapshotMaxAge = 24 * time.Hour

// Settings is the persisted game settings record.
type Settings struct {
	SoundEnabled    bool   `json:"soundEnabled"`
	MusicEnabled    bool   `json:"musicEnabled"`
	Theme           string `json:"theme"` // "light" or "dark"
	ShowTimer       bool   `json:"showTimer"`
	AutoFlipDelayMs int    `json:"autoFlipDelayMs"`
}

// DefaultSettings returns the settings applied on first run and whenever
// the persisted record is missing or malformed.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:    true,
		MusicEnabled:    false,
		Theme:           "dark",
		ShowTimer:       true,
		AutoFlipDelayMs: 600,
	}
}

// Snapshot is a suspended-game session: enough to rebuild the in-memory
// session after a crash or restart.
type Snapshot struct {
	Deck           deck.Deck       `json:"deck"`
	Difficulty     deck.Difficulty `json:"difficulty"`
	ThemeID        string          `json:"themeId"`
	MatchedPairs   int             `json:"matchedPairs"`
	Moves          int             `json:"moves"`
	Score          int             `json:"score"`
	ElapsedSeconds int             `json:"elapsedSeconds"`
	SavedAt        time.Time       `json:"savedAt"`
}

var playerNameRe = regexp.MustCompile(`^[A-Za-z0-9 ._-]{2,20}$`)

// ErrInvalidPlayerName is returned for names outside 2-20 chars of
// alphanumerics, space, hyphen, underscore and period.
var ErrInvalidPlayerName = fmt.Errorf("player name must be 2-20 characters: letters, digits, space, '.', '_' or '-'")

// Records layers typed codecs over a Store. Read methods fall back to
// zero-value/default records when the underlying key is missing or
// malformed; only genuine backend failures surface as errors.
type Records struct {
	store Store
	clock clock.Clock
	log   zerolog.Logger
}

// NewRecords creates a Records layer over the given store.
func NewRecords(store Store, clk clock.Clock, log zerolog.Logger) *Records {
	return &Records{store: store, clock: clk, log: log}
}

func (r *Records) getJSON(key string, v any) (bool, error) {
	data, found, err := r.store.Get(key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		// A corrupt record is treated like a missing one.
		r.log.Warn().Str("key", key).Err(err).Msg("discarding malformed record")
		return false, nil
	}
	return true, nil
}

func (r *Records) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", key, err)
	}
	return r.store.Set(key, data)
}

// HighScores loads the leaderboard, empty when none is stored.
func (r *Records) HighScores() (scoring.Leaderboard, error) {
	var lb scoring.Leaderboard
	_, err := r.getJSON(KeyHighScores, &lb)
	return lb, err
}

// SaveHighScores persists the leaderboard.
func (r *Records) SaveHighScores(lb scoring.Leaderboard) error {
	return r.setJSON(KeyHighScores, lb)
}

// Stats loads the aggregate player statistics.
func (r *Records) Stats() (scoring.PlayerStats, error) {
	var st scoring.PlayerStats
	_, err := r.getJSON(KeyStats, &st)
	return st, err
}

// SaveStats persists the aggregate player statistics.
func (r *Records) SaveStats(st scoring.PlayerStats) error {
	return r.setJSON(KeyStats, st)
}

// Settings loads the settings record, applying defaults when missing.
func (r *Records) Settings() (Settings, error) {
	s := DefaultSettings()
	_, err := r.getJSON(KeySettings, &s)
	return s, err
}

// SaveSettings persists the settings record.
func (r *Records) SaveSettings(s Settings) error {
	return r.setJSON(KeySettings, s)
}

// Snapshot loads the suspended session, if one exists and is fresh.
// Stale snapshots are removed and reported as absent.
func (r *Records) Snapshot() (*Snapshot, error) {
	var snap Snapshot
	found, err := r.getJSON(KeySnapshot, &snap)
	if err != nil || !found {
		return nil, err
	}
	if r.clock.Now().Sub(snap.SavedAt) > SnapshotMaxAge {
		r.log.Debug().Time("savedAt", snap.SavedAt).Msg("discarding stale session snapshot")
		if err := r.store.Remove(KeySnapshot); err != nil {
			r.log.Warn().Err(err).Msg("could not remove stale snapshot")
		}
		return nil, nil
	}
	return &snap, nil
}

// SaveSnapshot persists the suspended session, stamping SavedAt.
func (r *Records) SaveSnapshot(snap Snapshot) error {
	snap.SavedAt = r.clock.Now()
	return r.setJSON(KeySnapshot, snap)
}

// ClearSnapshot removes any suspended session.
func (r *Records) ClearSnapshot() error {
	return r.store.Remove(KeySnapshot)
}

// PlayerName loads the display name, empty when unset.
func (r *Records) PlayerName() (string, error) {
	var name string
	_, err := r.getJSON(KeyPlayerName, &name)
	return name, err
}

// SetPlayerName validates and persists the display name.
func (r *Records) SetPlayerName(name string) error {
	if !playerNameRe.MatchString(name) {
		return ErrInvalidPlayerName
	}
	return r.setJSON(KeyPlayerName, name)
}

// ThemePreference loads the standalone theme preference, falling back to
// the settings record's theme when unset.
func (r *Records) ThemePreference() (string, error) {
	var pref string
	found, err := r.getJSON(KeyThemePreference, &pref)
	if err != nil {
		return "", err
	}
	if found && pref != "" {
		return pref, nil
	}
	s, err := r.Settings()
	if err != nil {
		return "", err
	}
	return s.Theme, nil
}

// SetThemePreference persists the standalone theme preference and keeps
// the settings record's theme in sync.
func (r *Records) SetThemePreference(pref string) error {
	if err := r.setJSON(KeyThemePreference, pref); err != nil {
		return err
	}
	s, err := r.Settings()
	if err != nil {
		return err
	}
	s.Theme = pref
	return r.SaveSettings(s)
}
