// Package qrterm is the one-call facade: encode text as a QR code and print
// it to the terminal with default settings.
//
// For control over recovery level, quiet zone, or glyph mode, use pkg/qr and
// pkg/render/term directly.
package qrterm

import (
	"io"
	"os"
	"strings"

	"github.com/qrterm/qrterm/pkg/qr"
	"github.com/qrterm/qrterm/pkg/render/term"
)

// Print encodes text as a QR code and writes it to standard output using
// ANSI-colored half-block characters. It returns an error if the text cannot
// be encoded (empty, or too long for any QR version) or if writing fails.
func Print(text string) error {
	return Fprint(os.Stdout, text)
}

// Fprint is Print writing to w instead of standard output.
func Fprint(w io.Writer, text string) error {
	m, err := qr.Encode(text, qr.LevelMedium)
	if err != nil {
		return err
	}
	return term.New().Render(w, m)
}

// String returns the rendered code as a string.
func String(text string) (string, error) {
	var b strings.Builder
	if err := Fprint(&b, text); err != nil {
		return "", err
	}
	return b.String(), nil
}
