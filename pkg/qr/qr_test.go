package qr

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	m, err := Encode("https://example.com", LevelMedium)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	// QR sides are 21 + 4k modules depending on version
	size := m.Size()
	if size < 21 || (size-21)%4 != 0 {
		t.Errorf("Size() = %d, not a valid QR side length", size)
	}

	// Square grid
	for row := 0; row < size; row++ {
		if len(m[row]) != size {
			t.Fatalf("row %d has %d modules, want %d", row, len(m[row]), size)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	m1, err := Encode("determinism", LevelMedium)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	m2, err := Encode("determinism", LevelMedium)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	if !reflect.DeepEqual(m1, m2) {
		t.Error("identical input should produce identical grids")
	}
}

func TestEncodeEmpty(t *testing.T) {
	_, err := Encode("", LevelMedium)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Encode(\"\") error = %v, want ErrEmptyInput", err)
	}
}

func TestEncodeTooLong(t *testing.T) {
	// Binary capacity tops out below 3000 bytes at any recovery level
	if _, err := Encode(strings.Repeat("\x01", 8000), LevelLow); err == nil {
		t.Error("over-capacity input should return an error")
	}
}

func TestEncodeHigherLevelGrowsCode(t *testing.T) {
	// More redundancy needs more modules for the same content
	text := strings.Repeat("redundancy ", 10)

	low, err := Encode(text, LevelLow)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	high, err := Encode(text, LevelHigh)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	if high.Size() <= low.Size() {
		t.Errorf("LevelHigh side %d should exceed LevelLow side %d", high.Size(), low.Size())
	}
}

func TestEncodePNG(t *testing.T) {
	png, err := EncodePNG("https://example.com", LevelMedium, 256)
	if err != nil {
		t.Fatalf("EncodePNG error: %v", err)
	}

	magic := []byte{0x89, 'P', 'N', 'G'}
	if len(png) < len(magic) || string(png[:4]) != string(magic) {
		t.Error("EncodePNG should produce PNG bytes")
	}
}

func TestEncodePNGEmpty(t *testing.T) {
	_, err := EncodePNG("", LevelMedium, 256)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("EncodePNG(\"\") error = %v, want ErrEmptyInput", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RecoveryLevel
		wantErr bool
	}{
		{"low", "L", LevelLow, false},
		{"medium", "M", LevelMedium, false},
		{"quartile", "Q", LevelQuartile, false},
		{"high", "H", LevelHigh, false},
		{"lowercase", "m", LevelMedium, false},
		{"whitespace", " H ", LevelHigh, false},
		{"invalid", "X", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level RecoveryLevel
		want  string
	}{
		{LevelLow, "L"},
		{LevelMedium, "M"},
		{LevelQuartile, "Q"},
		{LevelHigh, "H"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}
