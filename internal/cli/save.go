package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qrterm/qrterm/pkg/qr"
	"github.com/qrterm/qrterm/pkg/render/term"
)

const (
	formatPNG = "png" // raster image via the encoder's PNG renderer
	formatTxt = "txt" // plain half-block text

	defaultPNGSize = 256 // pixels, good balance for mobile scanning
)

// saveOpts holds the command-line flags for the save command.
type saveOpts struct {
	format string // output format: png or txt
	size   int    // PNG edge length in pixels
	level  string // recovery level: L, M, Q, H
	output string // output file path (default qr.<format>)
}

// saveCommand creates the save command for writing QR artifacts to files.
func (c *CLI) saveCommand() *cobra.Command {
	opts := saveOpts{
		format: formatPNG,
		size:   defaultPNGSize,
		level:  c.Config.Level,
	}

	cmd := &cobra.Command{
		Use:   "save <text>",
		Short: "Save a QR code as a PNG or text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSave(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: png or txt")
	cmd.Flags().IntVarP(&opts.size, "size", "s", opts.size, "PNG edge length in pixels")
	cmd.Flags().StringVarP(&opts.level, "level", "l", opts.level, "error recovery level: L, M, Q, or H")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default qr.<format>)")

	return cmd
}

// runSave renders the artifact and writes it to the output file.
func (c *CLI) runSave(text string, opts saveOpts) error {
	level, err := qr.ParseLevel(opts.level)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)

	var data []byte
	switch opts.format {
	case formatPNG:
		data, err = qr.EncodePNG(text, level, opts.size)
	case formatTxt:
		data, err = renderText(text, level)
	default:
		return fmt.Errorf("invalid format: %s (must be 'png' or 'txt')", opts.format)
	}
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = "qr." + opts.format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Saved %d bytes", len(data)))
	printSuccess("Generated QR code (level %s)", level)
	printFile(output)
	return nil
}

// renderText renders the plain half-block form of the code.
func renderText(text string, level qr.RecoveryLevel) ([]byte, error) {
	m, err := qr.Encode(text, level)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := term.New(term.WithPlain()).Render(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
