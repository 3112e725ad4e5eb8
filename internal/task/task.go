// Package task defines the task record shared by the roster, the store
// backends, and the presentation layers.
package task

import (
	"fmt"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/taskroster/internal/errors"
)

// Task is a single row of the tasks table.
// ID is assigned by the backend and never changes; Name and Description are editable.
type Task struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Field names an editable column of a Task.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
)

// Fields returns the editable fields in display order.
func Fields() []Field {
	return []Field{FieldName, FieldDescription}
}

// With returns a copy of t with field set to value.
func (t Task) With(field Field, value string) (Task, error) {
	switch field {
	case FieldName:
		t.Name = value
	case FieldDescription:
		t.Description = value
	default:
		return t, fmt.Errorf("%w: %q", errors.ErrUnknownField, string(field))
	}
	return t, nil
}

// Get returns the value of field, or "" for an unknown field.
func (t Task) Get(field Field) string {
	switch field {
	case FieldName:
		return t.Name
	case FieldDescription:
		return t.Description
	}
	return ""
}

// NameMatcher compiles a glob pattern (e.g. "deploy*") into a predicate over
// task names. An empty pattern matches everything.
func NameMatcher(pattern string) (func(Task) bool, error) {
	if pattern == "" {
		return func(Task) bool { return true }, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: bad pattern %q: %v", errors.ErrInvalidInput, pattern, err)
	}
	return func(t Task) bool { return g.Match(t.Name) }, nil
}
