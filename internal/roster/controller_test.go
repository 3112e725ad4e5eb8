package roster

import (
	"context"
	"errors"
	"slices"
	"testing"

	rerrors "github.com/Iron-Ham/taskroster/internal/errors"
	"github.com/Iron-Ham/taskroster/internal/task"
	"github.com/Iron-Ham/taskroster/internal/testutil"
)

func newTestController(t *testing.T, tasks ...task.Task) (*Controller, *testutil.FakeStore, *testutil.RecordingSink) {
	t.Helper()
	fake := testutil.NewFakeStore(tasks...)
	sink := &testutil.RecordingSink{}
	c := New(fake, sink)
	c.Initialize(tasks)
	return c, fake, sink
}

func TestInitialize(t *testing.T) {
	t.Run("roster equals input exactly", func(t *testing.T) {
		in := []task.Task{
			{ID: 9, Name: "z", Description: "last"},
			{ID: 1, Name: "A", Description: "desc1"},
			{ID: 5, Name: "m", Description: ""},
		}
		c := New(testutil.NewFakeStore(), &testutil.RecordingSink{})

		got := c.Initialize(in)
		if !slices.Equal(got, in) {
			t.Errorf("Initialize() = %+v, want %+v", got, in)
		}
		if !slices.Equal(c.Tasks(), in) {
			t.Errorf("Tasks() = %+v, want %+v", c.Tasks(), in)
		}
	})

	t.Run("copies the input", func(t *testing.T) {
		in := testutil.SampleTasks()
		c := New(testutil.NewFakeStore(), &testutil.RecordingSink{})
		c.Initialize(in)

		in[0].Name = "mutated"
		if c.Tasks()[0].Name != "A" {
			t.Error("roster should not alias the caller's slice")
		}
	})

	t.Run("nil input yields empty roster", func(t *testing.T) {
		c := New(testutil.NewFakeStore(), &testutil.RecordingSink{})
		if got := c.Initialize(nil); got == nil || len(got) != 0 {
			t.Errorf("Initialize(nil) = %#v, want empty slice", got)
		}
		if c.State() != Idle {
			t.Errorf("State() = %v, want idle", c.State())
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("success removes the task and relabels rows", func(t *testing.T) {
		c, fake, sink := newTestController(t, testutil.SampleTasks()...)

		if err := c.Delete(ctx, 1); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		want := []task.Task{{ID: 2, Name: "B", Description: "desc2"}}
		if !slices.Equal(c.Tasks(), want) {
			t.Errorf("Tasks() = %+v, want %+v", c.Tasks(), want)
		}
		rows := c.Rows()
		if len(rows) != 1 || rows[0].Label != "1" || rows[0].Task.ID != 2 {
			t.Errorf("Rows() = %+v, want one row labelled 1 for id 2", rows)
		}
		if calls := fake.Calls(); len(calls) != 1 || calls[0].Op != "delete" || calls[0].ID != 1 {
			t.Errorf("store calls = %+v", calls)
		}
		if errs := sink.Entries("ERROR"); len(errs) != 0 {
			t.Errorf("unexpected error entries: %+v", errs)
		}
	})

	t.Run("removes every task sharing the id", func(t *testing.T) {
		tasks := []task.Task{
			{ID: 1, Name: "A"},
			{ID: 2, Name: "B"},
			{ID: 1, Name: "A again"},
		}
		c, _, _ := newTestController(t, tasks...)

		if err := c.Delete(ctx, 1); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if got := c.Tasks(); len(got) != 1 || got[0].ID != 2 {
			t.Errorf("Tasks() = %+v, want only id 2", got)
		}
	})

	t.Run("unknown id still calls the store", func(t *testing.T) {
		c, fake, _ := newTestController(t, testutil.SampleTasks()...)

		if err := c.Delete(ctx, 99); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if len(fake.Calls()) != 1 {
			t.Error("expected a store call for an id not in the roster")
		}
		if c.Len() != 2 {
			t.Errorf("Len() = %d, want 2", c.Len())
		}
	})

	t.Run("store error leaves roster and logs once", func(t *testing.T) {
		c, fake, sink := newTestController(t, testutil.SampleTasks()...)
		fake.DeleteErr = errors.New("permission denied")

		err := c.Delete(ctx, 1)
		if !rerrors.Is(err, rerrors.ErrStoreRequestFailed) {
			t.Fatalf("Delete() error = %v, want ErrStoreRequestFailed", err)
		}
		if !slices.Equal(c.Tasks(), testutil.SampleTasks()) {
			t.Errorf("roster changed on failure: %+v", c.Tasks())
		}
		entries := sink.Entries("ERROR")
		if len(entries) != 1 {
			t.Fatalf("got %d error entries, want 1", len(entries))
		}
		if entries[0].Msg != "error deleting task" {
			t.Errorf("Msg = %q", entries[0].Msg)
		}
		if entries[0].Attr("task_id") != int64(1) {
			t.Errorf("task_id = %v", entries[0].Attr("task_id"))
		}
		if entries[0].Attr("kind") != "request_failed" || entries[0].Attr("retryable") != false {
			t.Errorf("kind = %v, retryable = %v", entries[0].Attr("kind"), entries[0].Attr("retryable"))
		}
	})

	t.Run("panicking store is reported as threw", func(t *testing.T) {
		c, fake, sink := newTestController(t, testutil.SampleTasks()...)
		fake.PanicOnDelete = true

		err := c.Delete(ctx, 2)
		if !rerrors.Is(err, rerrors.ErrStoreRequestThrew) {
			t.Fatalf("Delete() error = %v, want ErrStoreRequestThrew", err)
		}
		if c.Len() != 2 {
			t.Error("roster changed after panic")
		}
		entries := sink.Entries("ERROR")
		if len(entries) != 1 {
			t.Fatal("expected exactly one error entry")
		}
		if entries[0].Attr("kind") != "request_threw" || entries[0].Attr("retryable") != true {
			t.Errorf("kind = %v, retryable = %v", entries[0].Attr("kind"), entries[0].Attr("retryable"))
		}
	})

	t.Run("threw error from store keeps its kind", func(t *testing.T) {
		c, fake, _ := newTestController(t, testutil.SampleTasks()...)
		fake.DeleteErr = rerrors.NewStoreError(rerrors.OpDelete, rerrors.KindRequestThrew, errors.New("dial tcp: refused"))

		err := c.Delete(ctx, 1)
		if kind, ok := rerrors.KindOf(err); !ok || kind != rerrors.KindRequestThrew {
			t.Errorf("KindOf() = %v, %v", kind, ok)
		}
	})

	t.Run("does not touch the edit session", func(t *testing.T) {
		c, _, _ := newTestController(t, testutil.SampleTasks()...)
		if _, err := c.BeginEdit(testutil.SampleTasks()[1]); err != nil {
			t.Fatal(err)
		}
		if err := c.Delete(ctx, 1); err != nil {
			t.Fatal(err)
		}
		if c.State() != Editing {
			t.Error("delete of another row should not close the session")
		}
	})
}

func TestEditSession(t *testing.T) {
	ctx := context.Background()

	t.Run("begin edit copies the task", func(t *testing.T) {
		c, fake, _ := newTestController(t, testutil.SampleTasks()...)

		s, err := c.BeginEdit(testutil.SampleTasks()[0])
		if err != nil {
			t.Fatalf("BeginEdit() error = %v", err)
		}
		if c.State() != Editing {
			t.Errorf("State() = %v, want editing", c.State())
		}
		if s.Working() != testutil.SampleTasks()[0] || s.Dirty() {
			t.Errorf("Working() = %+v, Dirty() = %v", s.Working(), s.Dirty())
		}
		if len(fake.Calls()) != 0 {
			t.Error("BeginEdit should not call the store")
		}
	})

	t.Run("begin edit requires the task in the roster", func(t *testing.T) {
		c, _, _ := newTestController(t, testutil.SampleTasks()...)

		_, err := c.BeginEdit(task.Task{ID: 42})
		if !rerrors.Is(err, rerrors.ErrTaskNotFound) {
			t.Fatalf("BeginEdit() error = %v, want ErrTaskNotFound", err)
		}
		if c.State() != Idle {
			t.Error("failed BeginEdit should leave the controller idle")
		}
	})

	t.Run("update then cancel leaves roster", func(t *testing.T) {
		c, fake, _ := newTestController(t, testutil.SampleTasks()...)
		if _, err := c.BeginEdit(testutil.SampleTasks()[0]); err != nil {
			t.Fatal(err)
		}

		s, err := c.UpdateField(task.FieldName, "X")
		if err != nil {
			t.Fatalf("UpdateField() error = %v", err)
		}
		if s.Working().Name != "X" || !s.Dirty() {
			t.Errorf("Working() = %+v", s.Working())
		}
		if c.Tasks()[0].Name != "A" {
			t.Error("UpdateField must not touch the roster")
		}

		c.CancelEdit()
		if c.State() != Idle || c.Session() != nil {
			t.Error("CancelEdit should return to idle")
		}
		if !slices.Equal(c.Tasks(), testutil.SampleTasks()) {
			t.Errorf("roster changed: %+v", c.Tasks())
		}
		if len(fake.Calls()) != 0 {
			t.Errorf("unexpected store calls: %+v", fake.Calls())
		}
	})

	t.Run("update field while idle", func(t *testing.T) {
		c, _, _ := newTestController(t, testutil.SampleTasks()...)
		if _, err := c.UpdateField(task.FieldName, "X"); !rerrors.Is(err, rerrors.ErrNoEditSession) {
			t.Errorf("UpdateField() error = %v, want ErrNoEditSession", err)
		}
	})

	t.Run("update unknown field", func(t *testing.T) {
		c, _, _ := newTestController(t, testutil.SampleTasks()...)
		if _, err := c.BeginEdit(testutil.SampleTasks()[0]); err != nil {
			t.Fatal(err)
		}
		s, err := c.UpdateField(task.Field("id"), "7")
		if !rerrors.Is(err, rerrors.ErrUnknownField) {
			t.Errorf("UpdateField() error = %v, want ErrUnknownField", err)
		}
		if s.Working().ID != 1 {
			t.Error("working copy id must not change")
		}
	})

	t.Run("submit success replaces the task and closes", func(t *testing.T) {
		c, fake, sink := newTestController(t, testutil.SampleTasks()...)
		if _, err := c.BeginEdit(testutil.SampleTasks()[0]); err != nil {
			t.Fatal(err)
		}
		if _, err := c.UpdateField(task.FieldDescription, "Y"); err != nil {
			t.Fatal(err)
		}

		if err := c.Submit(ctx); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}

		want := []task.Task{
			{ID: 1, Name: "A", Description: "Y"},
			{ID: 2, Name: "B", Description: "desc2"},
		}
		if !slices.Equal(c.Tasks(), want) {
			t.Errorf("Tasks() = %+v, want %+v", c.Tasks(), want)
		}
		if c.State() != Idle {
			t.Error("successful submit should close the session")
		}
		calls := fake.Calls()
		if len(calls) != 1 || calls[0].Op != "update" || calls[0].Task != want[0] {
			t.Errorf("store calls = %+v, want full record update", calls)
		}
		if len(sink.Entries("ERROR")) != 0 {
			t.Error("unexpected error entries")
		}
	})

	t.Run("submit failure keeps session and edits", func(t *testing.T) {
		c, fake, sink := newTestController(t, testutil.SampleTasks()...)
		fake.UpdateErr = errors.New("row-level security")
		if _, err := c.BeginEdit(testutil.SampleTasks()[1]); err != nil {
			t.Fatal(err)
		}
		if _, err := c.UpdateField(task.FieldName, "renamed"); err != nil {
			t.Fatal(err)
		}

		err := c.Submit(ctx)
		if !rerrors.Is(err, rerrors.ErrStoreRequestFailed) {
			t.Fatalf("Submit() error = %v", err)
		}
		if !slices.Equal(c.Tasks(), testutil.SampleTasks()) {
			t.Errorf("roster changed: %+v", c.Tasks())
		}
		if c.State() != Editing {
			t.Fatal("session should stay open after a failed submit")
		}
		if c.Session().Working().Name != "renamed" {
			t.Errorf("edits lost: %+v", c.Session().Working())
		}
		entries := sink.Entries("ERROR")
		if len(entries) != 1 || entries[0].Msg != "error updating task" {
			t.Errorf("error entries = %+v", entries)
		}
	})

	t.Run("submit while idle", func(t *testing.T) {
		c, fake, _ := newTestController(t, testutil.SampleTasks()...)
		if err := c.Submit(ctx); !rerrors.Is(err, rerrors.ErrNoEditSession) {
			t.Errorf("Submit() error = %v, want ErrNoEditSession", err)
		}
		if len(fake.Calls()) != 0 {
			t.Error("idle submit should not call the store")
		}
	})

	t.Run("begin edit replaces the open session", func(t *testing.T) {
		c, _, _ := newTestController(t, testutil.SampleTasks()...)
		first, _ := c.BeginEdit(testutil.SampleTasks()[0])
		second, err := c.BeginEdit(testutil.SampleTasks()[1])
		if err != nil {
			t.Fatal(err)
		}
		if first.Seq() == second.Seq() {
			t.Error("each session should get its own sequence number")
		}
		if c.Session().Working().ID != 2 {
			t.Error("current session should edit task 2")
		}
	})
}

func TestSplitExecution(t *testing.T) {
	ctx := context.Background()

	t.Run("execute does not touch the roster", func(t *testing.T) {
		c, fake, _ := newTestController(t, testutil.SampleTasks()...)

		out := c.Execute(ctx, c.DeleteRequest(1))
		if out.Err != nil || out.Affected != 1 {
			t.Fatalf("Execute() = %+v", out)
		}
		if c.Len() != 2 {
			t.Error("Execute must not mutate the roster")
		}
		if len(fake.Snapshot()) != 1 {
			t.Error("fake backend should have dropped the row")
		}

		if err := c.Apply(out); err != nil {
			t.Fatal(err)
		}
		if c.Len() != 1 {
			t.Error("Apply should remove the row")
		}
	})

	t.Run("overlapping deletes apply independently", func(t *testing.T) {
		tasks := []task.Task{{ID: 1}, {ID: 2}, {ID: 3}}
		c, fake, _ := newTestController(t, tasks...)
		fake.Gate = make(chan struct{})

		reqs := []Request{c.DeleteRequest(1), c.DeleteRequest(3)}
		results := make(chan Outcome, len(reqs))
		for _, req := range reqs {
			go func(r Request) { results <- c.Execute(ctx, r) }(req)
		}
		close(fake.Gate)

		for range reqs {
			if err := c.Apply(<-results); err != nil {
				t.Fatal(err)
			}
		}
		if got := c.Tasks(); len(got) != 1 || got[0].ID != 2 {
			t.Errorf("Tasks() = %+v, want only id 2", got)
		}
	})

	t.Run("stale submit outcome leaves the new session open", func(t *testing.T) {
		c, _, _ := newTestController(t, testutil.SampleTasks()...)
		if _, err := c.BeginEdit(testutil.SampleTasks()[0]); err != nil {
			t.Fatal(err)
		}
		if _, err := c.UpdateField(task.FieldName, "A2"); err != nil {
			t.Fatal(err)
		}
		req, err := c.SubmitRequest()
		if err != nil {
			t.Fatal(err)
		}
		out := c.Execute(ctx, req)

		// The user cancelled and started editing another task before the reply arrived.
		c.CancelEdit()
		if _, err := c.BeginEdit(testutil.SampleTasks()[1]); err != nil {
			t.Fatal(err)
		}

		if err := c.Apply(out); err != nil {
			t.Fatal(err)
		}
		if c.Tasks()[0].Name != "A2" {
			t.Error("confirmed update should still reach the roster")
		}
		if c.State() != Editing || c.Session().Working().ID != 2 {
			t.Error("the newer session should stay open")
		}
	})

	t.Run("apply unknown op", func(t *testing.T) {
		c, _, _ := newTestController(t)
		if err := c.Apply(Outcome{Request: Request{Op: Op(9)}}); !rerrors.Is(err, rerrors.ErrInvalidInput) {
			t.Errorf("Apply() error = %v", err)
		}
	})
}

func TestState_String(t *testing.T) {
	if Idle.String() != "idle" || Editing.String() != "editing" {
		t.Errorf("State strings = %q, %q", Idle, Editing)
	}
}
