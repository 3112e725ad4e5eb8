package roster

import (
	"strconv"

	"github.com/Iron-Ham/taskroster/internal/task"
)

// Row is a task paired with its display label.
type Row struct {
	Label string
	Task  task.Task
}

// RowLabel maps a zero-based position to the one-based row number shown to
// the user. Labels come from position only, never from the task id.
func RowLabel(pos int) string {
	return strconv.Itoa(pos + 1)
}

// BuildRows labels tasks in order.
func BuildRows(tasks []task.Task) []Row {
	rows := make([]Row, len(tasks))
	for i, t := range tasks {
		rows[i] = Row{Label: RowLabel(i), Task: t}
	}
	return rows
}
