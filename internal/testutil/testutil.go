// Package testutil provides test doubles for taskroster tests.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Iron-Ham/taskroster/internal/task"
)

// Call records one store invocation.
type Call struct {
	Op   string // "list", "delete" or "update"
	ID   int64
	Task task.Task
}

// FakeStore is an in-memory store backend for testing.
// It implements roster.Store and store.Backend.
type FakeStore struct {
	mu    sync.Mutex
	tasks []task.Task
	calls []Call

	// Error injection
	ListErr   error
	DeleteErr error
	UpdateErr error

	// Panic injection, simulating a client that blows up mid-request
	PanicOnDelete bool
	PanicOnUpdate bool

	// Gate, when set, blocks Delete and Update until it is closed.
	Gate chan struct{}

	closed bool
}

// NewFakeStore creates a FakeStore holding a copy of tasks.
func NewFakeStore(tasks ...task.Task) *FakeStore {
	return &FakeStore{tasks: slices.Clone(tasks)}
}

// List implements store.Backend.
func (f *FakeStore) List(ctx context.Context) ([]task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "list"})
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return slices.Clone(f.tasks), nil
}

// Delete implements roster.Store.
func (f *FakeStore) Delete(ctx context.Context, id int64) (int64, error) {
	f.wait(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "delete", ID: id})
	if f.PanicOnDelete {
		panic(fmt.Sprintf("fake delete %d", id))
	}
	if f.DeleteErr != nil {
		return 0, f.DeleteErr
	}
	before := len(f.tasks)
	f.tasks = slices.DeleteFunc(f.tasks, func(t task.Task) bool { return t.ID == id })
	return int64(before - len(f.tasks)), nil
}

// Update implements roster.Store.
func (f *FakeStore) Update(ctx context.Context, t task.Task) (int64, error) {
	f.wait(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "update", ID: t.ID, Task: t})
	if f.PanicOnUpdate {
		panic(fmt.Sprintf("fake update %d", t.ID))
	}
	if f.UpdateErr != nil {
		return 0, f.UpdateErr
	}
	var n int64
	for i := range f.tasks {
		if f.tasks[i].ID == t.ID {
			f.tasks[i] = t
			n++
		}
	}
	return n, nil
}

// Close implements store.Backend.
func (f *FakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Closed reports whether Close was called.
func (f *FakeStore) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Calls returns a copy of the recorded calls.
func (f *FakeStore) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// Snapshot returns the tasks currently held by the fake backend.
func (f *FakeStore) Snapshot() []task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.tasks)
}

func (f *FakeStore) wait(ctx context.Context) {
	if f.Gate == nil {
		return
	}
	select {
	case <-f.Gate:
	case <-ctx.Done():
	}
}

// Entry is one message captured by RecordingSink.
type Entry struct {
	Level string
	Msg   string
	Args  []any
}

// Attr returns the value logged under key, or nil.
func (e Entry) Attr(key string) any {
	for i := 0; i+1 < len(e.Args); i += 2 {
		if k, ok := e.Args[i].(string); ok && k == key {
			return e.Args[i+1]
		}
	}
	return nil
}

// RecordingSink captures log calls. It satisfies roster.Sink.
type RecordingSink struct {
	mu      sync.Mutex
	entries []Entry
}

// Error records an ERROR entry.
func (s *RecordingSink) Error(msg string, args ...any) { s.add("ERROR", msg, args) }

// Info records an INFO entry.
func (s *RecordingSink) Info(msg string, args ...any) { s.add("INFO", msg, args) }

// Debug records a DEBUG entry.
func (s *RecordingSink) Debug(msg string, args ...any) { s.add("DEBUG", msg, args) }

func (s *RecordingSink) add(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Entry{Level: level, Msg: msg, Args: slices.Clone(args)})
}

// Entries returns the recorded entries at level, or all entries if level is "".
func (s *RecordingSink) Entries(level string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level == "" {
		return slices.Clone(s.entries)
	}
	var out []Entry
	for _, e := range s.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// SampleTasks returns the two-task roster used across tests.
func SampleTasks() []task.Task {
	return []task.Task{
		{ID: 1, Name: "A", Description: "desc1"},
		{ID: 2, Name: "B", Description: "desc2"},
	}
}
