// Package term renders QR module grids as half-block characters in a
// terminal, two module rows per printed text row.
package term

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/qrterm/qrterm/pkg/qr"
)

// Half-block glyphs. Each terminal cell covers a vertical pair of modules.
const (
	glyphFull  = "█"
	glyphUpper = "▀"
	glyphLower = "▄"
	glyphBlank = " "
)

var (
	colorDark  = lipgloss.Color("0")  // terminal black
	colorLight = lipgloss.Color("15") // terminal white

	// In ANSI mode only ▄ and space are ever emitted. █ and ▀ render with a
	// gap above them on some terminal fonts, which breaks the seams between
	// lines, so the upper module of each pair is always expressed as the
	// background color and the lower one as a ▄ in the foreground color.
	styleOnDark  = lipgloss.NewStyle().Foreground(colorLight).Background(colorDark)
	styleOnLight = lipgloss.NewStyle().Foreground(colorDark).Background(colorLight)
)

// Renderer writes a module grid as terminal text.
// The zero value is not usable; construct with New.
type Renderer struct {
	quietZone int
	inverse   bool
	plain     bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithQuietZone sets the light-module border width applied before rendering.
// Zero disables the border entirely.
func WithQuietZone(width int) Option {
	return func(r *Renderer) { r.quietZone = width }
}

// WithInverse swaps dark and light modules, for terminals that show light
// text on a dark background.
func WithInverse() Option {
	return func(r *Renderer) { r.inverse = true }
}

// WithPlain disables ANSI colors and uses the full set of block glyphs
// (█ ▀ ▄ space) instead. Suitable for pipes and files.
func WithPlain() Option {
	return func(r *Renderer) { r.plain = true }
}

// New creates a Renderer with the default quiet zone.
func New(opts ...Option) *Renderer {
	r := &Renderer{quietZone: qr.DefaultQuietZone}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the matrix to w, one text row per two module rows. If the
// padded matrix has an odd side length, the final module row is paired with
// a row of light modules. Output is deterministic for identical input and
// options; the only error source is the writer.
func (r *Renderer) Render(w io.Writer, m qr.Matrix) error {
	m = m.WithQuietZone(r.quietZone)
	size := m.Size()

	var b strings.Builder
	for row := 0; row < size; row += 2 {
		for col := 0; col < size; col++ {
			b.WriteString(r.cell(r.module(m, row, col), r.module(m, row+1, col)))
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// module reads the logical module at (row, col) with inversion applied.
// Rows past the bottom edge read as light so odd-sized grids pair cleanly.
func (r *Renderer) module(m qr.Matrix, row, col int) bool {
	if row >= m.Size() {
		return r.inverse
	}
	return m.At(row, col) != r.inverse
}

// cell maps a vertical module pair to one terminal cell.
func (r *Renderer) cell(upper, lower bool) string {
	if r.plain {
		switch {
		case upper && lower:
			return glyphFull
		case upper:
			return glyphUpper
		case lower:
			return glyphLower
		default:
			return glyphBlank
		}
	}

	switch {
	case upper && lower:
		return styleOnDark.Render(glyphBlank)
	case upper:
		return styleOnDark.Render(glyphLower)
	case lower:
		return styleOnLight.Render(glyphLower)
	default:
		return styleOnLight.Render(glyphBlank)
	}
}
