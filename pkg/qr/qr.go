// Package qr wraps QR encoding behind a small module-grid API.
//
// Encoding itself (data modes, error correction, mask selection) is owned by
// github.com/skip2/go-qrcode; this package only exposes the resulting module
// grid as a Matrix plus helpers for quiet-zone padding and recovery levels.
package qr

import (
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQuietZone is the quiet-zone width in modules applied around codes.
//
// The QR spec asks for 4, but 2 keeps codes scannable while fitting small
// terminals: https://qrworld.wordpress.com/2011/08/09/the-quiet-zone/
const DefaultQuietZone = 2

// ErrEmptyInput is returned when there is no text to encode.
var ErrEmptyInput = errors.New("no data to encode")

// RecoveryLevel selects how much of the code can be damaged and still scan.
type RecoveryLevel int

// Recovery levels in increasing order of redundancy.
const (
	LevelLow      RecoveryLevel = iota // ~7% recovery
	LevelMedium                        // ~15% recovery
	LevelQuartile                      // ~25% recovery
	LevelHigh                          // ~30% recovery
)

// String returns the conventional single-letter name (L, M, Q, H).
func (l RecoveryLevel) String() string {
	switch l {
	case LevelLow:
		return "L"
	case LevelMedium:
		return "M"
	case LevelQuartile:
		return "Q"
	case LevelHigh:
		return "H"
	default:
		return fmt.Sprintf("RecoveryLevel(%d)", int(l))
	}
}

// ParseLevel parses a single-letter recovery level name, case-insensitively.
func ParseLevel(s string) (RecoveryLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return LevelLow, nil
	case "M":
		return LevelMedium, nil
	case "Q":
		return LevelQuartile, nil
	case "H":
		return LevelHigh, nil
	default:
		return 0, fmt.Errorf("invalid recovery level: %q (must be L, M, Q, or H)", s)
	}
}

// toEncoder maps a RecoveryLevel to the collaborator's enum.
func (l RecoveryLevel) toEncoder() qrcode.RecoveryLevel {
	switch l {
	case LevelLow:
		return qrcode.Low
	case LevelQuartile:
		return qrcode.High
	case LevelHigh:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// Encode encodes text as a QR code and returns its module grid without any
// quiet zone. Callers pad with Matrix.WithQuietZone before display.
//
// Empty input returns ErrEmptyInput. Input that exceeds the capacity of the
// largest QR version surfaces the encoder's error wrapped with context.
func Encode(text string, level RecoveryLevel) (Matrix, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}

	code, err := qrcode.New(text, level.toEncoder())
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	// The encoder's own border is disabled so the quiet zone stays under the
	// caller's control (terminals use a narrower zone than images).
	code.DisableBorder = true
	return Matrix(code.Bitmap()), nil
}

// EncodePNG encodes text as a QR code and renders it as a size x size pixel
// PNG image. Used by the save command and the HTTP surface; terminal output
// goes through pkg/render/term instead.
func EncodePNG(text string, level RecoveryLevel, size int) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}

	code, err := qrcode.New(text, level.toEncoder())
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	png, err := code.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return png, nil
}
