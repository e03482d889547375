// Package cli defines the flipmatch command tree and wires the shared
// application resources (store, records, logger) from the environment.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"flipmatch/internal/dependencies/clock"
	"flipmatch/internal/storage"
)

// Environment variables. CLI flags take precedence where both exist.
const (
	envDataDir   = "FLIPMATCH_DATA_DIR"
	envRedisAddr = "FLIPMATCH_REDIS_ADDR"
	envLogLevel  = "FLIPMATCH_LOG_LEVEL"
)

const logFileName = "flipmatch.log"

// app bundles the resources shared by all commands.
type app struct {
	dataDir string
	store   storage.Store
	records *storage.Records
	clock   clock.Clock
	log     zerolog.Logger

	closers []func() error
}

// newApp loads .env, opens the log file and connects the configured
// storage backend.
func newApp() (*app, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	dataDir := os.Getenv(envDataDir)
	if dataDir == "" {
		var err error
		dataDir, err = storage.DefaultDataDir()
		if err != nil {
			return nil, err
		}
	}

	a := &app{dataDir: dataDir, clock: clock.New()}

	// The TUI owns the terminal, so logs go to a file in the data dir.
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create data directory: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(dataDir, logFileName), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	a.closers = append(a.closers, logFile.Close)

	level := zerolog.InfoLevel
	if s := os.Getenv(envLogLevel); s != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(s)); err == nil {
			level = parsed
		}
	}
	a.log = zerolog.New(logFile).Level(level).With().Timestamp().Logger()

	if addr := os.Getenv(envRedisAddr); addr != "" {
		rs, err := storage.NewRedisStore(addr)
		if err != nil {
			return nil, err
		}
		a.store = rs
		a.closers = append(a.closers, rs.Close)
		a.log.Info().Str("addr", addr).Msg("using redis storage")
	} else {
		a.store = storage.NewFileStore(dataDir)
	}

	a.records = storage.NewRecords(a.store, a.clock, a.log)
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}
