package tasks

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskroster/internal/roster"
	"github.com/Iron-Ham/taskroster/internal/task"
	"github.com/Iron-Ham/taskroster/internal/util"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List the tasks in the configured store, in id order.

The # column is the row label shown in the TUI. Use --match to filter by
task name with a glob pattern.

Examples:
  taskroster list
  taskroster list --match 'deploy*'
  taskroster list --match '*{api,web}*'`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listMatch string

func init() {
	listCmd.Flags().StringVar(&listMatch, "match", "", "only show tasks whose name matches this glob")
}

func runList(cmd *cobra.Command, args []string) error {
	keep, err := task.NameMatcher(listMatch)
	if err != nil {
		return err
	}

	s, err := Open(cmd.Context(), "list")
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	rows := filterRows(s.Roster.Rows(), keep)
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tTASK NAME\tDESCRIPTION")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			r.Label,
			r.Task.ID,
			util.Truncate(util.SingleLine(r.Task.Name), s.Config.TUI.NameWidth),
			util.Truncate(util.SingleLine(r.Task.Description), 60))
	}
	return w.Flush()
}

// filterRows keeps the rows whose task passes keep. Labels stay those of the
// full roster so they match what the TUI shows.
func filterRows(rows []roster.Row, keep func(task.Task) bool) []roster.Row {
	out := make([]roster.Row, 0, len(rows))
	for _, r := range rows {
		if keep(r.Task) {
			out = append(out, r)
		}
	}
	return out
}
