package qrterm

import (
	"errors"
	"strings"
	"testing"

	"github.com/qrterm/qrterm/pkg/qr"
)

func TestStringLineCount(t *testing.T) {
	out, err := String("https://example.com")
	if err != nil {
		t.Fatalf("String error: %v", err)
	}

	m, err := qr.Encode("https://example.com", qr.LevelMedium)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	padded := m.Size() + 2*qr.DefaultQuietZone
	want := (padded + 1) / 2
	if got := strings.Count(out, "\n"); got != want {
		t.Errorf("rendered %d lines, want %d", got, want)
	}
}

func TestStringDeterministic(t *testing.T) {
	first, err := String("determinism")
	if err != nil {
		t.Fatalf("String error: %v", err)
	}
	second, err := String("determinism")
	if err != nil {
		t.Fatalf("String error: %v", err)
	}

	if first != second {
		t.Error("identical input should render identically")
	}
}

func TestFprintEmpty(t *testing.T) {
	var b strings.Builder
	err := Fprint(&b, "")
	if !errors.Is(err, qr.ErrEmptyInput) {
		t.Errorf("Fprint(\"\") error = %v, want ErrEmptyInput", err)
	}
	if b.Len() != 0 {
		t.Error("failed encode should write nothing")
	}
}

func TestFprintTooLong(t *testing.T) {
	var b strings.Builder
	if err := Fprint(&b, strings.Repeat("a", 8000)); err == nil {
		t.Error("over-capacity input should return an error")
	}
	if b.Len() != 0 {
		t.Error("failed encode should write nothing")
	}
}
