// Package mysql is a MySQL-backed task store.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	driver "github.com/go-sql-driver/mysql"

	"github.com/Iron-Ham/taskroster/internal/errors"
	"github.com/Iron-Ham/taskroster/internal/task"
)

// Store is a MySQL-backed task store.
type Store struct {
	db    *sql.DB
	table string
	ident string
}

// Open connects to dsn and verifies it with a ping.
//
// clientFoundRows is forced on so an update that leaves a row unchanged
// still reports the row as affected, matching the other backends.
func Open(ctx context.Context, dsn, table string) (*Store, error) {
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: mysql dsn: %v", errors.ErrInvalidInput, err)
	}
	cfg.ClientFoundRows = true

	connector, err := driver.NewConnector(cfg)
	if err != nil {
		return nil, errors.NewStoreError(errors.OpOpen, errors.KindRequestThrew, err).WithTable(table)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, classify(errors.OpOpen, err).WithTable(table)
	}
	return New(db, table), nil
}

// New creates a Store over an open database.
func New(db *sql.DB, table string) *Store {
	if table == "" {
		table = "tasks"
	}
	return &Store{db: db, table: table, ident: "`" + table + "`"}
}

// EnsureTable creates the tasks table if it doesn't exist.
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    name VARCHAR(255) NOT NULL DEFAULT '',
    description TEXT
)`, s.ident))
	if err != nil {
		return classify(errors.OpOpen, err).WithTable(s.table)
	}
	return nil
}

// List returns every task ordered by id.
func (s *Store) List(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT id, name, COALESCE(description, '') FROM %s ORDER BY id ASC", s.ident))
	if err != nil {
		return nil, classify(errors.OpList, err).WithTable(s.table)
	}
	defer func() { _ = rows.Close() }()

	tasks := []task.Task{}
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, classify(errors.OpList, err).WithTable(s.table)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(errors.OpList, err).WithTable(s.table)
	}
	return tasks, nil
}

// Delete removes every row with the given id.
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.ident), id)
	if err != nil {
		return 0, classify(errors.OpDelete, err).WithTable(s.table).WithTaskID(id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(errors.OpDelete, err).WithTable(s.table).WithTaskID(id)
	}
	return n, nil
}

// Update overwrites name and description of the row keyed by t.ID.
func (s *Store) Update(ctx context.Context, t task.Task) (int64, error) {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(
		"UPDATE %s SET name = ?, description = ? WHERE id = ?", s.ident),
		t.Name, t.Description, t.ID)
	if err != nil {
		return 0, classify(errors.OpUpdate, err).WithTable(s.table).WithTaskID(t.ID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(errors.OpUpdate, err).WithTable(s.table).WithTaskID(t.ID)
	}
	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// classify marks server-side errors as failed and everything else as threw.
func classify(op errors.Op, err error) *errors.StoreError {
	var myErr *driver.MySQLError
	if errors.As(err, &myErr) {
		return errors.NewStoreError(op, errors.KindRequestFailed, err)
	}
	return errors.NewStoreError(op, errors.KindRequestThrew, err)
}
