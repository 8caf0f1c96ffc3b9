package prompt

import (
	"bytes"
	"testing"
)

func TestParseBool(t *testing.T) {
	for _, in := range []string{"y", "Yes", "true", "1"} {
		if v, err := ParseBool(in); err != nil || !v {
			t.Fatalf("expected %q to be true, got %v %v", in, v, err)
		}
	}
	for _, in := range []string{"n", "No", "false", "0"} {
		if v, err := ParseBool(in); err != nil || v {
			t.Fatalf("expected %q to be false, got %v %v", in, v, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Fatalf("expected error for maybe")
	}
}

func TestSelectMedicationEmpty(t *testing.T) {
	if _, err := SelectMedication(nil, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error with no medications")
	}
}

func TestNopCloser(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NopCloser(buf)
	if _, err := w.Write([]byte("hi")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if buf.String() != "hi" {
		t.Fatalf("unexpected content %q", buf.String())
	}
}
