// Package errors provides the error definitions shared across taskroster:
// sentinel errors, the StoreError type returned by store backends, and
// classification helpers.
//
// # Store Errors
//
// A store call can fail in two ways:
//   - KindRequestFailed: the backend answered and reported an error
//     (a PostgREST error body, a PostgreSQL or MySQL server error).
//   - KindRequestThrew: the call itself did not complete (connection refused,
//     DNS failure, a panic inside the client).
//
// The roster controller treats both the same way. The kind is recorded on the
// logged failure and selects the CLI exit status (see internal/exitcode).
//
// # Usage
//
//	err := errors.NewStoreError(errors.OpDelete, errors.KindRequestThrew, cause).WithTaskID(42)
//
//	if errors.Is(err, errors.ErrStoreRequestThrew) { ... }
//
//	var storeErr *errors.StoreError
//	if errors.As(err, &storeErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Store sentinel errors
var (
	// ErrStoreRequestFailed indicates the store answered with an error.
	ErrStoreRequestFailed = New("store request failed")
	// ErrStoreRequestThrew indicates the store request did not complete.
	ErrStoreRequestThrew = New("store request threw")
)

// Roster sentinel errors
var (
	// ErrTaskNotFound indicates that no task with the given id is in the roster.
	ErrTaskNotFound = New("task not found")
	// ErrNoEditSession indicates an edit operation was attempted while idle.
	ErrNoEditSession = New("no edit session open")
	// ErrUnknownField indicates an attempt to edit a field that is not editable.
	ErrUnknownField = New("unknown task field")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrMissingConfig indicates a required configuration value is absent.
	ErrMissingConfig = New("missing required configuration")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// RosterError is the base interface for classified taskroster errors.
type RosterError interface {
	error

	Unwrap() error
	Is(target error) bool

	// IsRetryable returns true if the error is transient. Nothing in
	// taskroster retries automatically; this only informs the caller.
	IsRetryable() bool
}

type baseError struct {
	message   string
	cause     error
	retryable bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error {
	return e.cause
}

func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// -----------------------------------------------------------------------------
// Store Errors
// -----------------------------------------------------------------------------

// Op names the store operation an error came from.
type Op string

const (
	OpList   Op = "list"
	OpDelete Op = "delete"
	OpUpdate Op = "update"
	OpOpen   Op = "open"
)

// Kind separates answered-with-error from did-not-complete.
type Kind int

const (
	KindRequestFailed Kind = iota
	KindRequestThrew
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindRequestFailed:
		return "request_failed"
	case KindRequestThrew:
		return "request_threw"
	default:
		return "unknown"
	}
}

// sentinel returns the sentinel error matched by errors.Is for this kind.
func (k Kind) sentinel() error {
	if k == KindRequestThrew {
		return ErrStoreRequestThrew
	}
	return ErrStoreRequestFailed
}

// StoreError is returned by store backends.
//
// Example:
//
//	err := errors.NewStoreError(errors.OpUpdate, errors.KindRequestFailed, apiErr).WithTaskID(7)
//	fmt.Println(err) // "store error [op=update, task=7, kind=request_failed]: ..."
type StoreError struct {
	baseError
	Op     Op
	Kind   Kind
	TaskID int64
	Table  string
}

// NewStoreError creates a StoreError. Threw errors are marked retryable.
func NewStoreError(op Op, kind Kind, cause error) *StoreError {
	msg := "request failed"
	if kind == KindRequestThrew {
		msg = "request did not complete"
	}
	return &StoreError{
		baseError: baseError{
			message:   msg,
			cause:     cause,
			retryable: kind == KindRequestThrew,
		},
		Op:   op,
		Kind: kind,
	}
}

// WithTaskID adds a task id to the error context.
func (e *StoreError) WithTaskID(id int64) *StoreError {
	e.TaskID = id
	return e
}

// WithTable adds the table name to the error context.
func (e *StoreError) WithTable(table string) *StoreError {
	e.Table = table
	return e
}

// Error returns the formatted error message.
func (e *StoreError) Error() string {
	parts := []string{fmt.Sprintf("op=%s", e.Op)}
	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table=%s", e.Table))
	}
	if e.TaskID != 0 {
		parts = append(parts, fmt.Sprintf("task=%d", e.TaskID))
	}
	parts = append(parts, fmt.Sprintf("kind=%s", e.Kind))

	prefix := fmt.Sprintf("store error [%s]", strings.Join(parts, ", "))
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is matches the sentinel for its kind or the cause chain. Use errors.As to
// test for the type.
func (e *StoreError) Is(target error) bool {
	if target == e.Kind.sentinel() {
		return true
	}
	return e.baseError.Is(target)
}

// AsStoreError converts any error returned by a store into a *StoreError.
// Errors that already are StoreErrors pass through; anything else is
// classified as KindRequestFailed.
func AsStoreError(op Op, taskID int64, err error) *StoreError {
	if err == nil {
		return nil
	}
	var se *StoreError
	if As(err, &se) {
		if se.TaskID == 0 {
			se.TaskID = taskID
		}
		return se
	}
	return NewStoreError(op, KindRequestFailed, err).WithTaskID(taskID)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error is transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var re RosterError
	if As(err, &re) {
		return re.IsRetryable()
	}
	return false
}

// KindOf returns the store error kind and true if err wraps a StoreError.
func KindOf(err error) (Kind, bool) {
	var se *StoreError
	if As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}
