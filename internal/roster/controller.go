package roster

import (
	"context"
	"fmt"
	"slices"

	"github.com/Iron-Ham/taskroster/internal/errors"
	"github.com/Iron-Ham/taskroster/internal/task"
)

// Store is the slice of the backend the controller mutates through.
type Store interface {
	// Delete removes the row with the given id and reports how many rows went.
	Delete(ctx context.Context, id int64) (int64, error)
	// Update writes the full record keyed by t.ID and reports how many rows matched.
	Update(ctx context.Context, t task.Task) (int64, error)
}

// Sink receives failure reports. *logging.Logger satisfies it.
type Sink interface {
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// State is the edit state of the controller.
type State int

const (
	Idle State = iota
	Editing
)

// String returns the state name.
func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "idle"
}

// Op identifies a mutating controller operation.
type Op int

const (
	OpDelete Op = iota
	OpUpdate
)

// Request is a snapshot of a mutation, taken on the goroutine that owns the
// controller and handed to Execute.
type Request struct {
	Op      Op
	TaskID  int64
	Task    task.Task // working copy, OpUpdate only
	Session uint64    // edit session the update came from, OpUpdate only
}

// Outcome is the result of one store round trip.
type Outcome struct {
	Request
	Affected int64
	Err      error
}

// Controller keeps the displayed task list consistent with confirmed remote
// state and mediates delete and update.
//
// Roster and edit session are owned by a single goroutine: call every method
// except Execute from it. Execute only touches the store.
type Controller struct {
	store Store
	sink  Sink

	tasks   []task.Task
	session *EditSession
	nextSeq uint64
}

// New creates a Controller with an empty roster.
func New(store Store, sink Sink) *Controller {
	return &Controller{store: store, sink: sink}
}

// Initialize sets the roster verbatim to initial and returns it.
// The caller supplies authoritative data; nothing is validated.
func (c *Controller) Initialize(initial []task.Task) []task.Task {
	c.tasks = slices.Clone(initial)
	if c.tasks == nil {
		c.tasks = []task.Task{}
	}
	return c.Tasks()
}

// Tasks returns a copy of the roster in display order.
func (c *Controller) Tasks() []task.Task {
	return slices.Clone(c.tasks)
}

// Len returns the number of tasks in the roster.
func (c *Controller) Len() int {
	return len(c.tasks)
}

// Rows returns the roster with display labels, recomputed on every call.
func (c *Controller) Rows() []Row {
	return BuildRows(c.tasks)
}

// Find returns the first task with the given id.
func (c *Controller) Find(id int64) (task.Task, bool) {
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// State reports whether an edit session is open.
func (c *Controller) State() State {
	if c.session != nil {
		return Editing
	}
	return Idle
}

// Session returns the open edit session, or nil when idle.
func (c *Controller) Session() *EditSession {
	return c.session
}

// BeginEdit opens an edit session on a copy of t, replacing any open session.
// t.ID must be in the roster.
func (c *Controller) BeginEdit(t task.Task) (*EditSession, error) {
	if _, ok := c.Find(t.ID); !ok {
		return nil, fmt.Errorf("%w: id %d", errors.ErrTaskNotFound, t.ID)
	}
	c.nextSeq++
	c.session = newEditSession(c.nextSeq, t)
	return c.session, nil
}

// UpdateField sets one field of the working copy. No backend call.
func (c *Controller) UpdateField(field task.Field, value string) (*EditSession, error) {
	if c.session == nil {
		return nil, errors.ErrNoEditSession
	}
	if err := c.session.set(field, value); err != nil {
		return c.session, err
	}
	return c.session, nil
}

// CancelEdit discards the open session. Roster and store are untouched.
func (c *Controller) CancelEdit() {
	c.session = nil
}

// DeleteRequest prepares a delete of every task with the given id.
// No local precondition is checked.
func (c *Controller) DeleteRequest(id int64) Request {
	return Request{Op: OpDelete, TaskID: id}
}

// SubmitRequest snapshots the working copy of the open session.
func (c *Controller) SubmitRequest() (Request, error) {
	if c.session == nil {
		return Request{}, errors.ErrNoEditSession
	}
	working := c.session.Working()
	return Request{
		Op:      OpUpdate,
		TaskID:  working.ID,
		Task:    working,
		Session: c.session.Seq(),
	}, nil
}

// Execute performs the store round trip for req. It reads no roster state and
// may run on any goroutine. A panicking store is reported as a request that
// did not complete.
func (c *Controller) Execute(ctx context.Context, req Request) (out Outcome) {
	out.Request = req
	op := errors.OpDelete
	if req.Op == OpUpdate {
		op = errors.OpUpdate
	}

	defer func() {
		if r := recover(); r != nil {
			out.Affected = 0
			out.Err = errors.NewStoreError(op, errors.KindRequestThrew, fmt.Errorf("panic: %v", r)).
				WithTaskID(req.TaskID)
		}
	}()

	var err error
	switch req.Op {
	case OpDelete:
		out.Affected, err = c.store.Delete(ctx, req.TaskID)
	case OpUpdate:
		out.Affected, err = c.store.Update(ctx, req.Task)
	default:
		err = fmt.Errorf("%w: unknown op %d", errors.ErrInvalidInput, req.Op)
	}
	if err != nil {
		out.Err = errors.AsStoreError(op, req.TaskID, err)
	}
	return out
}

// Apply folds a completed round trip into the roster. A failure is logged
// once to the sink and leaves roster and session as they were; the error is
// returned for callers that surface it.
func (c *Controller) Apply(out Outcome) error {
	switch out.Op {
	case OpDelete:
		if out.Err != nil {
			c.logFailure("error deleting task", out)
			return out.Err
		}
		c.sink.Debug("task deleted", "task_id", out.TaskID, "affected", out.Affected)
		c.tasks = slices.DeleteFunc(c.tasks, func(t task.Task) bool { return t.ID == out.TaskID })

	case OpUpdate:
		if out.Err != nil {
			c.logFailure("error updating task", out)
			return out.Err
		}
		c.sink.Debug("task updated", "task_id", out.TaskID, "affected", out.Affected)
		for i := range c.tasks {
			if c.tasks[i].ID == out.Task.ID {
				c.tasks[i] = out.Task
			}
		}
		// A session cancelled or replaced while the request was in flight stays as it is.
		if c.session != nil && c.session.Seq() == out.Session {
			c.session = nil
		}

	default:
		return fmt.Errorf("%w: unknown op %d", errors.ErrInvalidInput, out.Op)
	}
	return nil
}

func (c *Controller) logFailure(msg string, out Outcome) {
	args := []any{"task_id", out.TaskID, "error", out.Err.Error()}
	if kind, ok := errors.KindOf(out.Err); ok {
		args = append(args, "kind", kind.String(), "retryable", errors.IsRetryable(out.Err))
	}
	c.sink.Error(msg, args...)
}

// Delete removes the task from the store and, once confirmed, from the roster.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	return c.Apply(c.Execute(ctx, c.DeleteRequest(id)))
}

// Submit writes the working copy to the store and, once confirmed, into the
// roster, closing the session. On failure the session stays open.
func (c *Controller) Submit(ctx context.Context) error {
	req, err := c.SubmitRequest()
	if err != nil {
		return err
	}
	return c.Apply(c.Execute(ctx, req))
}
