package tasks

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskroster/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task's name or description",
	Long: `Open an edit session on the task with the given id, apply the field
flags, and submit the full record to the store.

Fields without a flag keep their current value.

Examples:
  taskroster edit 7 --name "Ship release"
  taskroster edit 7 --description ""`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("name", "", "new task name")
	editCmd.Flags().String("description", "", "new task description")
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, err := Open(cmd.Context(), "edit")
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	current, _ := s.Roster.Find(id)
	current.ID = id
	if _, err := s.Roster.BeginEdit(current); err != nil {
		return err
	}

	for _, f := range task.Fields() {
		flag := cmd.Flags().Lookup(string(f))
		if flag == nil || !flag.Changed {
			continue
		}
		if _, err := s.Roster.UpdateField(f, flag.Value.String()); err != nil {
			s.Roster.CancelEdit()
			return err
		}
	}

	if err := s.Roster.Submit(cmd.Context()); err != nil {
		return err
	}

	updated, _ := s.Roster.Find(id)
	fmt.Fprintf(cmd.OutOrStdout(), "Updated task %d: %s\n", id, updated.Name)
	return nil
}
