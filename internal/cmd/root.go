package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/taskroster/internal/cmd/config"
	"github.com/Iron-Ham/taskroster/internal/cmd/tasks"
	appconfig "github.com/Iron-Ham/taskroster/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "taskroster",
	Short: "Terminal task list backed by Supabase, PostgreSQL or MySQL",
	Long: `taskroster shows the tasks table of a remote store and lets you edit or
delete rows in place. Changes appear only once the store has confirmed them.

Without a subcommand it opens the interactive task table:
  j/k     move             e/enter  edit task
  d       delete task      q        quit

In the edit dialog, tab switches fields, enter saves and esc cancels.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runStart,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/taskroster/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	tasks.Register(rootCmd)
	config.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	appconfig.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(appconfig.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TASKROSTER")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TASKROSTER_STORE_BACKEND for store.backend
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
