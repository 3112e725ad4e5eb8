package tasks

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskroster/internal/errors"
	"github.com/Iron-Ham/taskroster/internal/export"
	"github.com/Iron-Ham/taskroster/internal/roster"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks as JSON, CSV or PDF",
	Long: `Export the current tasks with their row labels.

Without --out the export is written to stdout.

Examples:
  taskroster export --format csv > tasks.csv
  taskroster export --format pdf --out tasks.pdf`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOut    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json",
		"output format ("+strings.Join(export.Formats(), ", ")+")")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	if !slices.Contains(export.Formats(), strings.ToLower(exportFormat)) {
		return fmt.Errorf("%w: unknown format %q (valid: %s)",
			errors.ErrInvalidInput, exportFormat, strings.Join(export.Formats(), ", "))
	}

	s, err := Open(cmd.Context(), "export")
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if exportOut == "" {
		if err := export.Write(cmd.OutOrStdout(), exportFormat, s.Roster.Rows()); err != nil {
			return err
		}
	} else if err := writeFile(exportOut, exportFormat, s.Roster.Rows()); err != nil {
		return err
	}
	s.Logger.Info("tasks exported", "format", exportFormat, "tasks", s.Roster.Len(), "out", exportOut)

	if exportOut != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", s.Roster.Len(), exportOut)
	}
	return nil
}

func writeFile(path, format string, rows []roster.Row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return export.Write(f, format, rows)
}
