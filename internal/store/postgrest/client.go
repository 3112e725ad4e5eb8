// Package postgrest talks to a tasks table exposed through PostgREST, the
// REST layer Supabase puts in front of PostgreSQL.
package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	rest "github.com/supabase-community/postgrest-go"

	"github.com/Iron-Ham/taskroster/internal/errors"
	"github.com/Iron-Ham/taskroster/internal/task"
)

const (
	// DefaultTable is used when no table option is given.
	DefaultTable = "tasks"

	// restPath is where PostgREST is mounted on a Supabase project.
	restPath = "/rest/v1"

	// selectColumns is the column list requested for reads.
	selectColumns = "id,name,description"

	// returnRows asks PostgREST to echo the affected rows back.
	returnRows = "representation"
)

// Client is a PostgREST task table client.
type Client struct {
	rest     *rest.Client
	endpoint string
	table    string
}

// Option configures a Client.
type Option func(*Client)

// WithTable sets the table name. An empty name keeps the default.
func WithTable(table string) Option {
	return func(c *Client) {
		if table != "" {
			c.table = table
		}
	}
}

// New creates a Client for the project at baseURL, authenticating with key.
// Both are required.
func New(baseURL, key string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: store url", errors.ErrMissingConfig)
	}
	if key == "" {
		return nil, fmt.Errorf("%w: store key", errors.ErrMissingConfig)
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: store url %q is not an absolute URL", errors.ErrInvalidInput, baseURL)
	}

	c := &Client{table: DefaultTable}
	for _, opt := range opts {
		opt(c)
	}

	c.endpoint = strings.TrimRight(u.String(), "/") + restPath
	c.rest, err = rest.NewClientWithError(c.endpoint, "", map[string]string{
		"apikey":        key,
		"Authorization": "Bearer " + key,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: store url: %v", errors.ErrInvalidInput, err)
	}
	return c, nil
}

// Table returns the table the client reads and writes.
func (c *Client) Table() string {
	return c.table
}

// List returns every task ordered by id.
func (c *Client) List(ctx context.Context) ([]task.Task, error) {
	q := c.rest.From(c.table).
		Select(selectColumns, "", false).
		Order("id", &rest.OrderOpts{Ascending: true})

	return c.execute(ctx, errors.OpList, q)
}

// Delete removes every row with the given id.
func (c *Client) Delete(ctx context.Context, id int64) (int64, error) {
	q := c.rest.From(c.table).
		Delete(returnRows, "").
		Eq("id", strconv.FormatInt(id, 10))

	deleted, err := c.execute(ctx, errors.OpDelete, q)
	if err != nil {
		return 0, withTaskID(err, id)
	}
	return int64(len(deleted)), nil
}

// Update writes the name and description of t to the row keyed by t.ID.
func (c *Client) Update(ctx context.Context, t task.Task) (int64, error) {
	q := c.rest.From(c.table).
		Update(t, returnRows, "").
		Eq("id", strconv.FormatInt(t.ID, 10))

	updated, err := c.execute(ctx, errors.OpUpdate, q)
	if err != nil {
		return 0, withTaskID(err, t.ID)
	}
	return int64(len(updated)), nil
}

// Close is a no-op; the client holds no connections of its own.
func (c *Client) Close() error {
	return nil
}

func withTaskID(err error, id int64) error {
	var se *errors.StoreError
	if errors.As(err, &se) {
		se.WithTaskID(id)
	}
	return err
}

type result struct {
	body []byte
	err  error
}

// execute runs q and decodes the returned rows. The request itself cannot
// take a context, so a cancelled ctx abandons it rather than aborting it.
func (c *Client) execute(ctx context.Context, op errors.Op, q *rest.FilterBuilder) ([]task.Task, error) {
	done := make(chan result, 1)
	go func() {
		body, _, err := q.Execute()
		done <- result{body: body, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return nil, errors.NewStoreError(op, errors.KindRequestThrew, ctx.Err()).WithTable(c.table)
	case res = <-done:
	}

	if res.err != nil {
		return nil, errors.NewStoreError(op, classify(res.err), res.err).WithTable(c.table)
	}

	tasks := []task.Task{}
	if len(strings.TrimSpace(string(res.body))) == 0 {
		return tasks, nil
	}
	if err := json.Unmarshal(res.body, &tasks); err != nil {
		return nil, errors.NewStoreError(op, errors.KindRequestFailed, fmt.Errorf("decode response: %w", err)).WithTable(c.table)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// classify separates requests that never got an answer from requests the
// server answered with an error.
func classify(err error) errors.Kind {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errors.KindRequestThrew
	}
	return errors.KindRequestFailed
}
