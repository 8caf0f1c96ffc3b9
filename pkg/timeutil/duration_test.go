package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 7 * 24 * time.Hour
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1 week 2days 6h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24 + 2*24 + 6) * time.Hour
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w2d6h" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3m", "0d", "2d-"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestFormatWindow(t *testing.T) {
	if got := FormatWindow(10 * 24 * time.Hour); got != "1w3d" {
		t.Fatalf("expected 1w3d, got %s", got)
	}
	if got := FormatWindow(time.Minute); got != "0h" {
		t.Fatalf("expected 0h, got %s", got)
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2025, time.March, 4, 14, 30, 0, 0, time.UTC)
	got := WindowStart(now, 24*time.Hour)
	want := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := WindowStart(now, time.Hour); !got.Equal(StartOfDay(now)) {
		t.Fatalf("short window should start today, got %v", got)
	}
}
