package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	// Point config at an empty directory so the host's file is not picked up
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return New(io.Discard, LogInfo)
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI(t).RootCommand()

	want := []string{"print", "save", "serve", "tui", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command should have subcommand %q", name)
		}
	}
}

func TestRootCommandRendersArgument(t *testing.T) {
	root := newTestCLI(t).RootCommand()

	var out strings.Builder
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"hello"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !strings.Contains(out.String(), "\n") {
		t.Error("root with a positional argument should render a QR code")
	}
}

func TestDefaultPrintOpts(t *testing.T) {
	c := newTestCLI(t)

	opts := c.defaultPrintOpts()
	if opts.level != c.Config.Level {
		t.Errorf("level = %q, want %q", opts.level, c.Config.Level)
	}
	if opts.quietZone != c.Config.QuietZone {
		t.Errorf("quietZone = %d, want %d", opts.quietZone, c.Config.QuietZone)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}
