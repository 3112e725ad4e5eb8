// Package roster holds the task roster controller: the in-memory ordered list
// of tasks shown to the user, the optional edit session, and the two
// mutating operations (delete and submit) that go through the store.
//
// # State
//
// The roster is seeded once by [Controller.Initialize] and afterwards changes
// only when the store confirms an operation. Nothing is applied
// optimistically. At most one [EditSession] is open; it is created by
// [Controller.BeginEdit], changed by [Controller.UpdateField], and closed by a
// confirmed submit or by [Controller.CancelEdit].
//
//	Idle --BeginEdit--> Editing
//	Editing --UpdateField / failed Submit--> Editing
//	Editing --confirmed Submit / CancelEdit--> Idle
//
// # Running Requests Off The UI Loop
//
// Delete and Submit are each three steps so that the network round trip does
// not run on the goroutine that owns the controller:
//
//	req := ctrl.DeleteRequest(id)          // owner goroutine
//	out := ctrl.Execute(ctx, req)          // any goroutine
//	_ = ctrl.Apply(out)                    // owner goroutine
//
// [Controller.Delete] and [Controller.Submit] chain the three for synchronous
// callers. Overlapping requests are allowed and apply in the order their
// outcomes arrive.
//
// # Failures
//
// A failed or incomplete store call is logged once to the [Sink] ("error
// deleting task" / "error updating task") and the state change is dropped.
// There are no retries. Delete removes every local task with a matching id,
// so if the backend ever allowed duplicate ids the local list could lose rows
// the backend kept.
package roster
