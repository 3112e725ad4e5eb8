// Package store opens the backend that holds the task table.
//
// Every backend reports its failures as *errors.StoreError so callers can
// tell a backend that answered with an error (KindRequestFailed) from a
// request that never completed (KindRequestThrew).
package store

import (
	"context"
	"fmt"

	"github.com/Iron-Ham/taskroster/internal/config"
	"github.com/Iron-Ham/taskroster/internal/errors"
	"github.com/Iron-Ham/taskroster/internal/store/mysql"
	"github.com/Iron-Ham/taskroster/internal/store/postgres"
	"github.com/Iron-Ham/taskroster/internal/store/postgrest"
	"github.com/Iron-Ham/taskroster/internal/task"
)

// Backend is a task table the roster can read and mutate.
type Backend interface {
	// List returns every task ordered by id.
	List(ctx context.Context) ([]task.Task, error)
	// Delete removes rows with the given id and returns how many were removed.
	Delete(ctx context.Context, id int64) (int64, error)
	// Update overwrites the row keyed by t.ID and returns how many rows matched.
	Update(ctx context.Context, t task.Task) (int64, error)
	// Close releases connections held by the backend.
	Close() error
}

// Compile-time checks.
var (
	_ Backend = (*postgrest.Client)(nil)
	_ Backend = (*postgres.Store)(nil)
	_ Backend = (*mysql.Store)(nil)
)

// Open connects to the backend named by cfg.Backend.
func Open(ctx context.Context, cfg config.StoreConfig) (Backend, error) {
	switch cfg.Backend {
	case config.BackendPostgREST, "":
		return postgrest.New(cfg.URL, cfg.Key, postgrest.WithTable(cfg.Table))

	case config.BackendPostgres:
		s, err := postgres.Open(ctx, cfg.DSN, cfg.Table)
		if err != nil {
			return nil, err
		}
		if cfg.EnsureTable {
			if err := s.EnsureTable(ctx); err != nil {
				_ = s.Close()
				return nil, err
			}
		}
		return s, nil

	case config.BackendMySQL:
		s, err := mysql.Open(ctx, cfg.DSN, cfg.Table)
		if err != nil {
			return nil, err
		}
		if cfg.EnsureTable {
			if err := s.EnsureTable(ctx); err != nil {
				_ = s.Close()
				return nil, err
			}
		}
		return s, nil

	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", errors.ErrInvalidInput, cfg.Backend)
	}
}
