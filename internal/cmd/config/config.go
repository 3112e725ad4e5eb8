// Package config provides CLI commands for managing taskroster configuration.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/Iron-Ham/taskroster/internal/config"
	"github.com/Iron-Ham/taskroster/internal/errors"
	tuiconfig "github.com/Iron-Ham/taskroster/internal/tui/config"
	"github.com/Iron-Ham/taskroster/internal/tui/styles"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

// runInteractive is swapped out by tests.
var runInteractive = tuiconfig.Run

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify taskroster configuration",
	Long: `View or modify taskroster configuration.

Without arguments, opens an interactive configuration UI.
Use 'config show' to display configuration non-interactively.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigInteractive,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  taskroster config set store.backend postgres
  taskroster config set store.dsn postgres://localhost/tasks
  taskroster config set tui.theme nord

Valid keys:
  store.backend         - Where tasks live: postgrest, postgres, mysql
  store.url             - Supabase project URL (postgrest)
  store.key             - Supabase anon or service key (postgrest)
  store.table           - Tasks table name
  store.dsn             - Connection string (postgres, mysql)
  store.ensure_table    - Create the table on startup (true/false)
  tui.theme             - Built-in theme: default, nord
  tui.theme_file        - Path to a YAML theme file
  tui.name_width        - Task Name column width (8-80)
  logging.enabled       - Write a log file (true/false)
  logging.level         - debug, info, warn, error
  logging.dir           - Log directory
  logging.max_size_mb   - Rotate the log past this size
  logging.max_backups   - Rotated files to keep
  logging.compress      - Gzip rotated files (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/taskroster/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first.`,
	RunE: runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  taskroster config reset             # Reset all to defaults
  taskroster config reset tui.theme   # Reset only tui.theme to default`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
// This is the main entry point for integrating the config subpackage with
// the root command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// Styles resolves the configured theme. If the theme file can't be loaded the
// default theme is returned along with the error.
func Styles(cfg *appconfig.Config) (*styles.ThemedStyles, error) {
	palette, err := styles.Resolve(cfg.TUI.Theme, cfg.TUI.ThemeFile)
	if err != nil {
		return styles.NewThemedStyles(nil), err
	}
	return styles.NewThemedStyles(palette), nil
}

func runConfigInteractive(cmd *cobra.Command, args []string) error {
	st, err := Styles(appconfig.Get())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	return runInteractive(st)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	for _, cat := range tuiconfig.Categories() {
		section := ""
		for _, item := range cat.Items {
			prefix, name, _ := strings.Cut(item.Key, ".")
			if prefix != section {
				fmt.Fprintf(out, "%s:\n", prefix)
				section = prefix
			}
			fmt.Fprintf(out, "  %s: %s\n", name, tuiconfig.DisplayValue(item))
		}
	}

	var problems appconfig.ValidationErrors
	if _, err := appconfig.Load(); errors.As(err, &problems) {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Problems:")
		for _, p := range problems {
			fmt.Fprintf(out, "  - %s\n", p.Error())
		}
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	item, ok := tuiconfig.FindItem(key)
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'taskroster config set --help' to see valid keys", key)
	}

	typedValue, err := tuiconfig.ParseValue(item, value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	viper.Set(key, typedValue)
	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	shown := typedValue
	if item.Secret {
		shown = tuiconfig.DisplayValue(item)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, shown)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)

	return nil
}

// writeConfig saves viper's current settings to the user's config file.
func writeConfig() (string, error) {
	if err := os.MkdirAll(appconfig.ConfigDir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

const defaultConfigContent = `# taskroster configuration

# Where tasks are stored
store:
  # Backend: postgrest (Supabase REST), postgres, or mysql
  backend: postgrest
  # Supabase project URL and anon key (postgrest backend).
  # SUPABASE_URL and SUPABASE_ANON_KEY are read from the environment too.
  url: ""
  key: ""
  # Table holding id, name and description columns
  table: tasks
  # Connection string for the postgres and mysql backends
  dsn: ""
  # Create the table on startup if it does not exist (postgres and mysql)
  ensure_table: false

# TUI (terminal user interface) settings
tui:
  # Built-in theme: default or nord
  theme: default
  # Path to a YAML theme file; overrides theme when set
  theme_file: ""
  # Width of the Task Name column
  name_width: 24

# Log file settings
logging:
  enabled: true
  # debug, info, warn, or error
  level: info
  # Empty means ~/.local/state/taskroster/logs
  dir: ""
  max_size_mb: 10
  max_backups: 3
  compress: false
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'taskroster config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	fmt.Fprintln(cmd.OutOrStdout(), "Set store.url and store.key (or store.dsn) before running taskroster.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := appconfig.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: TASKROSTER_* (e.g., TASKROSTER_STORE_BACKEND)")
	fmt.Fprintln(out, "Also read: SUPABASE_URL, SUPABASE_ANON_KEY and their NEXT_PUBLIC_ forms")

	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file exists, if not create it
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file doesn't exist, creating with defaults...\n")
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "nano", "vi"} {
			if _, err := execLookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable")
	}

	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file saved: %s\n", configFile)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, cat := range tuiconfig.Categories() {
			for _, item := range cat.Items {
				value, _ := tuiconfig.DefaultValue(item.Key)
				viper.Set(item.Key, value)
			}
		}
		fmt.Fprintln(out, "Reset all configuration to defaults.")
	} else {
		key := args[0]
		value, ok := tuiconfig.DefaultValue(key)
		if !ok {
			return fmt.Errorf("unknown configuration key: %s\nRun 'taskroster config set --help' to see valid keys", key)
		}
		viper.Set(key, value)
		fmt.Fprintf(out, "Reset %s to default: %v\n", key, value)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}
