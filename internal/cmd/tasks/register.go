// Package tasks provides the non-interactive task commands: list, delete,
// edit and export. Each command loads the roster from the configured store,
// runs one controller operation, and exits non-zero if the store failed.
package tasks

import "github.com/spf13/cobra"

// Register adds all task commands to the given parent command.
// This is the main entry point for integrating the tasks subpackage with
// the root command.
func Register(parent *cobra.Command) {
	parent.AddCommand(listCmd)
	parent.AddCommand(deleteCmd)
	parent.AddCommand(editCmd)
	parent.AddCommand(exportCmd)
}
