// Package postgres is a PostgreSQL-backed task store.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Iron-Ham/taskroster/internal/errors"
	"github.com/Iron-Ham/taskroster/internal/task"
)

// Querier is the subset of *pgxpool.Pool the store uses.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store is a PostgreSQL-backed task store.
type Store struct {
	db    Querier
	pool  *pgxpool.Pool
	table string
	ident string
}

// Open connects a pool to dsn and verifies it with a ping.
func Open(ctx context.Context, dsn, table string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.NewStoreError(errors.OpOpen, errors.KindRequestThrew, err).WithTable(table)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, classify(errors.OpOpen, err).WithTable(table)
	}
	s := New(pool, table)
	s.pool = pool
	return s, nil
}

// New creates a Store over an existing connection.
func New(db Querier, table string) *Store {
	if table == "" {
		table = "tasks"
	}
	return &Store{
		db:    db,
		table: table,
		ident: pgx.Identifier{table}.Sanitize(),
	}
}

// EnsureTable creates the tasks table if it doesn't exist.
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			name        TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT ''
		)`, s.ident))
	if err != nil {
		return classify(errors.OpOpen, err).WithTable(s.table)
	}
	return nil
}

// List returns every task ordered by id.
func (s *Store) List(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(
		`SELECT id, name, COALESCE(description, '') FROM %s ORDER BY id ASC`, s.ident))
	if err != nil {
		return nil, classify(errors.OpList, err).WithTable(s.table)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, classify(errors.OpList, err).WithTable(s.table)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(errors.OpList, fmt.Errorf("row iteration: %w", err)).WithTable(s.table)
	}
	return tasks, nil
}

// Delete removes every row with the given id.
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := s.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.ident), id)
	if err != nil {
		return 0, classify(errors.OpDelete, err).WithTable(s.table).WithTaskID(id)
	}
	return tag.RowsAffected(), nil
}

// Update overwrites name and description of the row keyed by t.ID.
func (s *Store) Update(ctx context.Context, t task.Task) (int64, error) {
	tag, err := s.db.Exec(ctx, fmt.Sprintf(
		`UPDATE %s SET name = $1, description = $2 WHERE id = $3`, s.ident),
		t.Name, t.Description, t.ID)
	if err != nil {
		return 0, classify(errors.OpUpdate, err).WithTable(s.table).WithTaskID(t.ID)
	}
	return tag.RowsAffected(), nil
}

// Close closes the pool if the store opened it.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// classify marks server-side errors as failed and everything else as threw.
func classify(op errors.Op, err error) *errors.StoreError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return errors.NewStoreError(op, errors.KindRequestFailed, err)
	}
	return errors.NewStoreError(op, errors.KindRequestThrew, err)
}
