package tasks

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/Iron-Ham/taskroster/internal/config"
	"github.com/Iron-Ham/taskroster/internal/errors"
	"github.com/Iron-Ham/taskroster/internal/logging"
	"github.com/Iron-Ham/taskroster/internal/roster"
	"github.com/Iron-Ham/taskroster/internal/store"
)

// openStore is swapped out by tests.
var openStore = store.Open

// Session is everything a command needs to work on the roster: the loaded
// config, a logger tagged with this run, the open store and a controller
// initialized from the store's current contents.
type Session struct {
	Config *config.Config
	Logger *logging.Logger
	Store  store.Backend
	Roster *roster.Controller

	root *logging.Logger
}

// Open loads and validates the configuration, opens the store and seeds a
// controller with the tasks it lists. The caller must Close the session.
func Open(ctx context.Context, component string) (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	root := CreateLogger(cfg)
	logger := root.WithRun(uuid.NewString()).WithComponent(component)

	backend, err := openStore(ctx, cfg.Store)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.Store.Backend, "error", err.Error())
		_ = root.Close()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	initial, err := backend.List(ctx)
	if err != nil {
		logger.Error("failed to list tasks", "backend", cfg.Store.Backend, "error", err.Error())
		_ = backend.Close()
		_ = root.Close()
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	ctrl := roster.New(backend, logger)
	ctrl.Initialize(initial)
	logger.Info("roster loaded", "backend", cfg.Store.Backend, "table", cfg.Store.Table, "tasks", len(initial))

	return &Session{
		Config: cfg,
		Logger: logger,
		Store:  backend,
		Roster: ctrl,
		root:   root,
	}, nil
}

// Close releases the store and flushes the log file.
func (s *Session) Close() error {
	return errors.Join(s.Store.Close(), s.root.Close())
}

// CreateLogger creates a logger for the given config.
// Returns a NopLogger if logging is disabled or the log file can't be opened.
func CreateLogger(cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}

	rotation := logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Compress:   cfg.Logging.Compress,
	}

	logger, err := logging.NewLogger(cfg.Logging.LogDir(), cfg.Logging.Level, rotation)
	if err != nil {
		// Log creation failure shouldn't prevent the command from running
		fmt.Fprintf(os.Stderr, "Warning: failed to create logger: %v\n", err)
		return logging.NopLogger()
	}
	return logger
}
