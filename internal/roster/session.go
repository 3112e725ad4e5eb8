package roster

import "github.com/Iron-Ham/taskroster/internal/task"

// EditSession is an in-progress edit of one task. The working copy is
// separate from the roster's copy until a submit is confirmed.
type EditSession struct {
	seq      uint64
	original task.Task
	working  task.Task
}

func newEditSession(seq uint64, t task.Task) *EditSession {
	return &EditSession{seq: seq, original: t, working: t}
}

// Seq identifies the session; each BeginEdit gets a new one.
func (s *EditSession) Seq() uint64 {
	return s.seq
}

// Working returns the edited copy.
func (s *EditSession) Working() task.Task {
	return s.working
}

// Dirty reports whether the working copy differs from the original.
func (s *EditSession) Dirty() bool {
	return s.working != s.original
}

func (s *EditSession) set(field task.Field, value string) error {
	updated, err := s.working.With(field, value)
	if err != nil {
		return err
	}
	s.working = updated
	return nil
}
