package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/taskroster/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the taskroster TUI.

taskroster ships the built-in themes default and nord. A custom theme is a
YAML file selected with tui.theme_file; it replaces tui.theme when set.

Use 'theme list' to see the built-in themes.
Use 'theme export' to create a template for a custom theme.
Use 'theme info' to view the colors of a theme.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a built-in theme to YAML format for customization.

If no output file is specified, the YAML is printed to stdout.

Examples:
  taskroster config theme export default              # Print default theme to stdout
  taskroster config theme export nord my-theme.yaml   # Save nord theme to file
  taskroster config set tui.theme_file my-theme.yaml  # Then use it`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name-or-file>",
	Short: "Show information about a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeInfoCmd)
	configCmd.AddCommand(themeCmd)
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	current := viper.GetString("tui.theme")

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		marker := " "
		if name == current {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, name)
	}

	if file := viper.GetString("tui.theme_file"); file != "" {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Theme file (active): %s\n", file)
	}
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	themeName := args[0]

	if !styles.IsBuiltinTheme(themeName) {
		return fmt.Errorf("unknown theme: %s\n\nRun 'taskroster config theme list' to see available themes", themeName)
	}

	data, err := styles.ExportTheme(styles.ThemeName(themeName))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme exported to: %s\n", outputPath)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	arg := args[0]

	var palette *styles.ColorPalette
	if styles.IsBuiltinTheme(arg) {
		fmt.Fprintf(out, "Theme: %s\n", arg)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Type: Built-in")
		palette = styles.GetPalette(styles.ThemeName(arg))
	} else {
		theme, err := styles.LoadThemeFile(arg)
		if err != nil {
			return fmt.Errorf("%s is neither a built-in theme nor a valid theme file: %w", arg, err)
		}
		fmt.Fprintf(out, "Theme: %s\n", theme.Name)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Type: File (%s)\n", arg)
		if theme.Author != "" {
			fmt.Fprintf(out, "Author: %s\n", theme.Author)
		}
		if theme.Description != "" {
			fmt.Fprintf(out, "Description: %s\n", theme.Description)
		}
		palette = theme.ToPalette()
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Colors:")
	fmt.Fprintf(out, "  Primary:   %s\n", palette.Primary)
	fmt.Fprintf(out, "  Secondary: %s\n", palette.Secondary)
	fmt.Fprintf(out, "  Warning:   %s\n", palette.Warning)
	fmt.Fprintf(out, "  Error:     %s\n", palette.Error)
	fmt.Fprintf(out, "  Muted:     %s\n", palette.Muted)
	fmt.Fprintf(out, "  Surface:   %s\n", palette.Surface)
	fmt.Fprintf(out, "  Text:      %s\n", palette.Text)
	fmt.Fprintf(out, "  Border:    %s\n", palette.Border)

	return nil
}
