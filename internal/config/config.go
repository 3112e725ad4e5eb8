package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AppName is used for the config directory and the env prefix.
const AppName = "taskroster"

// Config represents the complete taskroster configuration
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StoreConfig selects and connects the task backend
type StoreConfig struct {
	// Backend is one of "postgrest", "postgres", "mysql" (default: "postgrest")
	Backend string `mapstructure:"backend"`
	// URL is the base address of the PostgREST/Supabase project (postgrest only)
	URL string `mapstructure:"url"`
	// Key is the access key sent as apikey and bearer token (postgrest only)
	Key string `mapstructure:"key"`
	// Table is the tasks table name (default: "tasks")
	Table string `mapstructure:"table"`
	// DSN is the database connection string (postgres and mysql only)
	DSN string `mapstructure:"dsn"`
	// EnsureTable creates the table on startup if missing (postgres and mysql only)
	EnsureTable bool `mapstructure:"ensure_table"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Theme is a built-in theme name: "default" or "nord"
	Theme string `mapstructure:"theme"`
	// ThemeFile is a path to a YAML theme; it overrides Theme when set
	ThemeFile string `mapstructure:"theme_file"`
	// NameWidth is the column width of the task name (default: 24, min: 8)
	NameWidth int `mapstructure:"name_width"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled writes a JSON log file (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is one of "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir overrides the log directory (default: <state dir>/logs)
	Dir string `mapstructure:"dir"`
	// MaxSizeMB rotates the log file past this size (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is how many rotated files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated files (default: false)
	Compress bool `mapstructure:"compress"`
}

// Backend names
const (
	BackendPostgREST = "postgrest"
	BackendPostgres  = "postgres"
	BackendMySQL     = "mysql"
)

// ValidBackends returns the list of valid store backends
func ValidBackends() []string {
	return []string{BackendPostgREST, BackendPostgres, BackendMySQL}
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendPostgREST,
			Table:   "tasks",
		},
		TUI: TUIConfig{
			Theme:     "default",
			NameWidth: 24,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// envAliases lists extra environment variables accepted for a key, in
// precedence order. The Supabase names let an existing project env file work as is.
var envAliases = map[string][]string{
	"store.url": {"TASKROSTER_STORE_URL", "SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL"},
	"store.key": {"TASKROSTER_STORE_KEY", "SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY"},
}

// SetDefaults registers default values and env aliases with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("store.backend", defaults.Store.Backend)
	viper.SetDefault("store.url", defaults.Store.URL)
	viper.SetDefault("store.key", defaults.Store.Key)
	viper.SetDefault("store.table", defaults.Store.Table)
	viper.SetDefault("store.dsn", defaults.Store.DSN)
	viper.SetDefault("store.ensure_table", defaults.Store.EnsureTable)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)
	viper.SetDefault("tui.name_width", defaults.TUI.NameWidth)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)

	for key, names := range envAliases {
		_ = viper.BindEnv(append([]string{key}, names...)...)
	}
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return &cfg, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration without validating it.
// It falls back to defaults if unmarshaling fails.
func Get() *Config {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Default()
	}
	return &cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateDir returns the directory for logs and other runtime state
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".local", "state", AppName)
}

// LogDir resolves the directory the log file is written to
func (c *LoggingConfig) LogDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return filepath.Join(StateDir(), "logs")
}
