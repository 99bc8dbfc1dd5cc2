// Package cli implements the qrterm command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/qrterm/qrterm/internal/config"
	"github.com/qrterm/qrterm/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "qrterm"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a logger writing to w and the user's
// config file applied. A broken config file is reported and replaced with
// defaults rather than blocking the tool.
func New(w io.Writer, level log.Level) *CLI {
	logger := newLogger(w, level)

	cfg, err := config.Load("")
	if err != nil {
		logger.Warnf("Ignoring config file: %v", err)
		cfg = config.Default()
	}

	return &CLI{Logger: logger, Config: cfg}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Invoking the root with a positional argument renders it directly, so
// `qrterm "some text"` works without naming the print subcommand.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "qrterm [text]",
		Short:        "qrterm renders QR codes in the terminal",
		Long:         `qrterm encodes text as a QR code and prints it using ANSI-colored half-block characters, two module rows per terminal line. It can also save codes as PNG or text files and serve them over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return c.runPrint(cmd, args[0], c.defaultPrintOpts())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.printCommand())
	root.AddCommand(c.saveCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// defaultPrintOpts maps config file values to print options.
func (c *CLI) defaultPrintOpts() printOpts {
	return printOpts{
		level:     c.Config.Level,
		quietZone: c.Config.QuietZone,
		inverse:   c.Config.Inverse,
		plain:     c.Config.Plain,
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/qrterm/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
