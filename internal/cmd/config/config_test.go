package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/Iron-Ham/taskroster/internal/config"
	"github.com/Iron-Ham/taskroster/internal/tui/styles"
)

func setupViper(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	viper.Reset()
	appconfig.SetDefaults()
	t.Cleanup(viper.Reset)
	return filepath.Join(dir, appconfig.AppName, "config.yaml")
}

func TestRegister(t *testing.T) {
	root := &cobra.Command{Use: "taskroster"}
	Register(root)

	cmd, _, err := root.Find([]string{"config", "theme", "export"})
	if err != nil || cmd.Name() != "export" {
		t.Errorf("config theme export not reachable: %v", err)
	}
	for _, name := range []string{"show", "set", "init", "path", "edit", "reset", "theme"} {
		if c, _, err := root.Find([]string{"config", name}); err != nil || c.Name() != name {
			t.Errorf("config %s not registered", name)
		}
	}
}

func TestRunConfigShow(t *testing.T) {
	setupViper(t)
	viper.Set("store.key", "eyJhbGciOiJIUzI1NiJ9.secret")

	out, err := runCmd(t, runConfigShow)
	if err != nil {
		t.Fatalf("runConfigShow() error = %v", err)
	}
	for _, want := range []string{"store:", "  table: tasks", "tui:", "  theme: default", "logging:", "  level: info"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "eyJhbGci") {
		t.Error("show must mask the access key")
	}
	if !strings.Contains(out, "store.url: is required") {
		t.Errorf("show should list the missing url:\n%s", out)
	}
}

func TestRunConfigSet(t *testing.T) {
	path := setupViper(t)

	out, err := runCmd(t, runConfigSet, "store.backend", "postgres")
	if err != nil {
		t.Fatalf("runConfigSet() error = %v", err)
	}
	if !strings.Contains(out, "Set store.backend = postgres") {
		t.Errorf("output = %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "backend: postgres") {
		t.Errorf("config file = %s", data)
	}
}

func TestRunConfigSet_Secret(t *testing.T) {
	setupViper(t)

	out, err := runCmd(t, runConfigSet, "store.key", "my-very-secret-key")
	if err != nil {
		t.Fatalf("runConfigSet() error = %v", err)
	}
	if strings.Contains(out, "my-very-secret") {
		t.Errorf("set echoed the secret: %q", out)
	}
	if viper.GetString("store.key") != "my-very-secret-key" {
		t.Error("secret not stored")
	}
}

func TestRunConfigSet_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"store.password", "x"}},
		{"bad select", []string{"store.backend", "sqlite"}},
		{"bad int", []string{"tui.name_width", "wide"}},
		{"bad bool", []string{"logging.enabled", "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupViper(t)
			if _, err := runCmd(t, runConfigSet, tt.args...); err == nil {
				t.Error("runConfigSet() should fail")
			}
		})
	}
}

func TestRunConfigInit(t *testing.T) {
	path := setupViper(t)

	if _, err := runCmd(t, runConfigInit); err != nil {
		t.Fatalf("runConfigInit() error = %v", err)
	}

	// The generated file must load and carry the defaults.
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("generated config does not parse: %v", err)
	}
	cfg := appconfig.Get()
	if *cfg != *appconfig.Default() {
		t.Errorf("generated config = %+v, want defaults", cfg)
	}

	if _, err := runCmd(t, runConfigInit); err == nil {
		t.Error("runConfigInit() should refuse to overwrite")
	}
}

func TestRunConfigPath(t *testing.T) {
	setupViper(t)
	out, err := runCmd(t, runConfigPath)
	if err != nil {
		t.Fatalf("runConfigPath() error = %v", err)
	}
	if !strings.Contains(out, "(not created)") || !strings.Contains(out, "TASKROSTER_") {
		t.Errorf("output = %q", out)
	}
}

func TestRunConfigEdit(t *testing.T) {
	path := setupViper(t)
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	var gotName string
	var gotArgs []string
	origLook, origCmd := execLookPath, execCommand
	execLookPath = func(file string) (string, error) {
		if file == "nano" {
			return "/usr/bin/nano", nil
		}
		return "", exec.ErrNotFound
	}
	execCommand = func(name string, args ...string) *exec.Cmd {
		gotName, gotArgs = name, args
		return exec.Command("true")
	}
	t.Cleanup(func() { execLookPath, execCommand = origLook, origCmd })

	if _, err := runCmd(t, runConfigEdit); err != nil {
		t.Fatalf("runConfigEdit() error = %v", err)
	}
	if gotName != "nano" || len(gotArgs) != 1 || gotArgs[0] != path {
		t.Errorf("editor = %s %v, want nano %s", gotName, gotArgs, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("edit should create the config file first")
	}
}

func TestRunConfigReset(t *testing.T) {
	setupViper(t)
	viper.Set("tui.theme", "nord")
	viper.Set("tui.name_width", 40)

	if _, err := runCmd(t, runConfigReset, "tui.theme"); err != nil {
		t.Fatalf("runConfigReset(key) error = %v", err)
	}
	if viper.GetString("tui.theme") != "default" {
		t.Error("tui.theme not reset")
	}
	if viper.GetInt("tui.name_width") != 40 {
		t.Error("reset of one key touched another")
	}

	if _, err := runCmd(t, runConfigReset); err != nil {
		t.Fatalf("runConfigReset() error = %v", err)
	}
	if viper.GetInt("tui.name_width") != 24 {
		t.Error("tui.name_width not reset")
	}

	if _, err := runCmd(t, runConfigReset, "nope"); err == nil {
		t.Error("runConfigReset() should reject unknown keys")
	}
}

func TestRunConfigInteractive(t *testing.T) {
	setupViper(t)
	viper.Set("tui.theme", "nord")

	var got *styles.ThemedStyles
	orig := runInteractive
	runInteractive = func(st *styles.ThemedStyles) error {
		got = st
		return nil
	}
	t.Cleanup(func() { runInteractive = orig })

	if _, err := runCmd(t, runConfigInteractive); err != nil {
		t.Fatalf("runConfigInteractive() error = %v", err)
	}
	if got == nil || got.Palette.Primary != styles.NordPalette().Primary {
		t.Error("interactive editor should get the configured theme")
	}
}

func TestStyles(t *testing.T) {
	cfg := appconfig.Default()
	cfg.TUI.Theme = "nord"

	st, err := Styles(cfg)
	if err != nil {
		t.Fatalf("Styles() error = %v", err)
	}
	if st.Palette.Primary != styles.NordPalette().Primary {
		t.Error("Styles() ignored tui.theme")
	}

	cfg.TUI.ThemeFile = filepath.Join(t.TempDir(), "missing.yaml")
	st, err = Styles(cfg)
	if err == nil {
		t.Error("Styles() should report an unreadable theme file")
	}
	if st == nil || st.Palette.Primary != styles.DefaultPalette().Primary {
		t.Error("Styles() should fall back to the default theme")
	}
}
