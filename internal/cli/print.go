package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qrterm/qrterm/pkg/qr"
	"github.com/qrterm/qrterm/pkg/render/term"
)

// printOpts holds the command-line flags for the print command.
type printOpts struct {
	level     string // recovery level: L, M, Q, H
	quietZone int    // light-module border width
	inverse   bool   // swap dark/light for light-on-dark terminals
	plain     bool   // uncolored block glyphs instead of ANSI
	output    string // write to a file instead of stdout (forces plain)
}

// printCommand creates the print command for rendering QR codes to the
// terminal. With no argument, the text to encode is read from stdin.
func (c *CLI) printCommand() *cobra.Command {
	opts := c.defaultPrintOpts()

	cmd := &cobra.Command{
		Use:   "print [text]",
		Short: "Render a QR code to the terminal",
		Long:  `Print encodes text as a QR code and writes it to standard output using half-block characters. Reads from stdin when no argument is given, so it composes with pipes: wg show wg0 | qrterm print`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			return c.runPrint(cmd, text, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.level, "level", "l", opts.level, "error recovery level: L, M, Q, or H")
	cmd.Flags().IntVarP(&opts.quietZone, "quiet-zone", "q", opts.quietZone, "quiet zone width in modules")
	cmd.Flags().BoolVarP(&opts.inverse, "inverse", "i", opts.inverse, "swap dark and light modules (for dark terminals)")
	cmd.Flags().BoolVarP(&opts.plain, "plain", "p", opts.plain, "plain block glyphs without ANSI colors")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to a file instead of stdout (implies --plain)")

	return cmd
}

// readText returns the positional argument, or stdin with the trailing
// newline stripped when no argument is given.
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// runPrint encodes text and renders it to stdout or the --output file.
func (c *CLI) runPrint(cmd *cobra.Command, text string, opts printOpts) error {
	logger := loggerFromContext(cmd.Context())

	level, err := qr.ParseLevel(opts.level)
	if err != nil {
		return err
	}

	m, err := qr.Encode(text, level)
	if err != nil {
		return err
	}
	logger.Debugf("Encoded %d bytes as %dx%d modules (level %s)", len(text), m.Size(), m.Size(), level)

	out := cmd.OutOrStdout()
	plain := opts.plain
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
		plain = true // files get no ANSI colors
	}

	ropts := []term.Option{term.WithQuietZone(opts.quietZone)}
	if opts.inverse {
		ropts = append(ropts, term.WithInverse())
	}
	if plain {
		ropts = append(ropts, term.WithPlain())
	}

	return term.New(ropts...).Render(out, m)
}
