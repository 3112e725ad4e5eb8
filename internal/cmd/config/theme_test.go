package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func runCmd(t *testing.T, fn func(*cobra.Command, []string) error, args ...string) (string, error) {
	t.Helper()
	cmd := &cobra.Command{}
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	err := fn(cmd, args)
	return buf.String(), err
}

func TestRunThemeList(t *testing.T) {
	setupViper(t)

	out, err := runCmd(t, runThemeList)
	if err != nil {
		t.Fatalf("runThemeList() error = %v", err)
	}
	if !strings.Contains(out, "* default") || !strings.Contains(out, "  nord") {
		t.Errorf("output = %q, want default marked current", out)
	}
}

func TestRunThemeExport(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "exported.yaml")

	if _, err := runCmd(t, runThemeExport, "nord", outputPath); err != nil {
		t.Fatalf("runThemeExport() error = %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if !bytes.Contains(data, []byte("primary:")) {
		t.Error("Output file missing primary color")
	}

	// The export must load back as a theme file.
	out, err := runCmd(t, runThemeInfo, outputPath)
	if err != nil {
		t.Fatalf("runThemeInfo(exported) error = %v", err)
	}
	if !strings.Contains(out, "Type: File") {
		t.Errorf("info output = %q", out)
	}
}

func TestRunThemeExport_Stdout(t *testing.T) {
	out, err := runCmd(t, runThemeExport, "default")
	if err != nil {
		t.Fatalf("runThemeExport() error = %v", err)
	}
	if !strings.Contains(out, "colors:") {
		t.Errorf("stdout export = %q", out)
	}
}

func TestRunThemeExport_InvalidTheme(t *testing.T) {
	if _, err := runCmd(t, runThemeExport, "dracula"); err == nil {
		t.Error("runThemeExport() should fail for unknown theme")
	}
}

func TestRunThemeInfo(t *testing.T) {
	out, err := runCmd(t, runThemeInfo, "default")
	if err != nil {
		t.Fatalf("runThemeInfo() error = %v", err)
	}
	for _, want := range []string{"Type: Built-in", "Primary:", "Border:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunThemeInfo_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCmd(t, runThemeInfo, path); err == nil {
		t.Error("runThemeInfo() should fail for an invalid theme file")
	}
}
