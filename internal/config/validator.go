package config

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/Iron-Ham/taskroster/internal/errors"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "store.url")
	Value   any    // The invalid value
	Message string // Human-readable error description
	Missing bool   // A required value was not supplied
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// Unwrap lets errors.Is match ErrMissingConfig or ErrInvalidInput
func (e ValidationError) Unwrap() error {
	if e.Missing {
		return errors.ErrMissingConfig
	}
	return errors.ErrInvalidInput
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap exposes each failure to errors.Is and errors.As
func (e ValidationErrors) Unwrap() []error {
	out := make([]error, len(e))
	for i, v := range e {
		out[i] = v
	}
	return out
}

// tableNameRegex restricts table names to plain identifiers; the SQL backends
// interpolate it into statements.
var tableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the built-in theme names
func ValidThemes() []string {
	return []string{"default", "nord"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, c.validateStore()...)
	errs = append(errs, c.validateTUI()...)
	errs = append(errs, c.validateLogging()...)
	return errs
}

func (c *Config) validateStore() []ValidationError {
	var errs []ValidationError
	s := c.Store

	if !slices.Contains(ValidBackends(), s.Backend) {
		errs = append(errs, ValidationError{
			Field:   "store.backend",
			Value:   s.Backend,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidBackends(), ", ")),
		})
	}

	if !tableNameRegex.MatchString(s.Table) {
		errs = append(errs, ValidationError{
			Field:   "store.table",
			Value:   s.Table,
			Message: "must start with a letter or underscore and contain only letters, digits, underscores",
		})
	}

	switch s.Backend {
	case BackendPostgREST:
		if s.URL == "" {
			errs = append(errs, ValidationError{
				Field:   "store.url",
				Message: "is required (set TASKROSTER_STORE_URL or SUPABASE_URL)",
				Missing: true,
			})
		} else if u, err := url.Parse(s.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "store.url",
				Value:   s.URL,
				Message: "must be an absolute http or https URL",
			})
		}
		if s.Key == "" {
			errs = append(errs, ValidationError{
				Field:   "store.key",
				Message: "is required (set TASKROSTER_STORE_KEY or SUPABASE_ANON_KEY)",
				Missing: true,
			})
		}
	case BackendPostgres, BackendMySQL:
		if s.DSN == "" {
			errs = append(errs, ValidationError{
				Field:   "store.dsn",
				Message: fmt.Sprintf("is required for the %s backend", s.Backend),
				Missing: true,
			})
		}
	}

	return errs
}

func (c *Config) validateTUI() []ValidationError {
	var errs []ValidationError

	if c.TUI.ThemeFile == "" && c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errs = append(errs, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	if c.TUI.NameWidth < 8 || c.TUI.NameWidth > 80 {
		errs = append(errs, ValidationError{
			Field:   "tui.name_width",
			Value:   c.TUI.NameWidth,
			Message: "must be between 8 and 80",
		})
	}

	return errs
}

func (c *Config) validateLogging() []ValidationError {
	var errs []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	const maxLogSizeMB = 1000
	if c.Logging.MaxSizeMB <= 0 || c.Logging.MaxSizeMB > maxLogSizeMB {
		errs = append(errs, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("must be between 1 and %d", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errs
}
