package tasks

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskroster/internal/errors"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task by id",
	Long: `Delete every row with the given id from the store.

The id is not checked against the loaded tasks first; the store decides what
matches. A delete that matches nothing still succeeds.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, err := Open(cmd.Context(), "delete")
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	out := s.Roster.Execute(cmd.Context(), s.Roster.DeleteRequest(id))
	if err := s.Roster.Apply(out); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d (%s affected)\n", id, rowsText(out.Affected))
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: task id %q is not an integer", errors.ErrInvalidInput, s)
	}
	return id, nil
}

func rowsText(n int64) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}
