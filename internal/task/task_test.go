package task

import (
	"testing"

	"github.com/Iron-Ham/taskroster/internal/errors"
)

func TestTask_With(t *testing.T) {
	orig := Task{ID: 1, Name: "A", Description: "desc1"}

	renamed, err := orig.With(FieldName, "X")
	if err != nil {
		t.Fatalf("With(name) failed: %v", err)
	}
	if renamed.Name != "X" || renamed.Description != "desc1" || renamed.ID != 1 {
		t.Errorf("With(name) = %+v", renamed)
	}
	if orig.Name != "A" {
		t.Error("With must not modify the receiver")
	}

	if _, err := orig.With(Field("id"), "7"); !errors.Is(err, errors.ErrUnknownField) {
		t.Errorf("With(id) error = %v, want ErrUnknownField", err)
	}
}

func TestTask_Get(t *testing.T) {
	tk := Task{ID: 2, Name: "B", Description: "desc2"}
	if got := tk.Get(FieldName); got != "B" {
		t.Errorf("Get(name) = %q", got)
	}
	if got := tk.Get(FieldDescription); got != "desc2" {
		t.Errorf("Get(description) = %q", got)
	}
	if got := tk.Get(Field("bogus")); got != "" {
		t.Errorf("Get(bogus) = %q, want empty", got)
	}
}

func TestNameMatcher(t *testing.T) {
	tasks := []Task{
		{ID: 1, Name: "deploy api"},
		{ID: 2, Name: "write docs"},
		{ID: 3, Name: "deploy web"},
	}

	t.Run("empty pattern matches all", func(t *testing.T) {
		match, err := NameMatcher("")
		if err != nil {
			t.Fatal(err)
		}
		for _, tk := range tasks {
			if !match(tk) {
				t.Errorf("empty pattern rejected %q", tk.Name)
			}
		}
	})

	t.Run("glob", func(t *testing.T) {
		match, err := NameMatcher("deploy*")
		if err != nil {
			t.Fatal(err)
		}
		want := []bool{true, false, true}
		for i, tk := range tasks {
			if match(tk) != want[i] {
				t.Errorf("match(%q) = %v, want %v", tk.Name, match(tk), want[i])
			}
		}
	})

	t.Run("invalid pattern", func(t *testing.T) {
		if _, err := NameMatcher("[unclosed"); !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})
}
