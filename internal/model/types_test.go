package model

import (
	"testing"
)

func TestMetadata_ScanValue(t *testing.T) {
	original := Metadata{SizeBytes: 1024, Width: 600, Height: 400}

	val, err := original.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	raw, ok := val.([]byte)
	if !ok {
		t.Fatalf("Value() returned %T; want []byte", val)
	}

	var scanned Metadata
	if err := scanned.Scan(raw); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if scanned != original {
		t.Errorf("Scan() = %+v; want %+v", scanned, original)
	}
}

func TestMetadata_ScanNil(t *testing.T) {
	m := Metadata{SizeBytes: 99}
	if err := m.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error: %v", err)
	}
	if m != (Metadata{}) {
		t.Errorf("Scan(nil) should zero the value, got %+v", m)
	}
}

func TestStory_Terminal(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{StatusProcessing, false},
		{StatusCompleted, true},
		{StatusFailed, true},
	}
	for _, tc := range cases {
		s := &Story{ProcessingStatus: tc.status}
		if got := s.Terminal(); got != tc.want {
			t.Errorf("Terminal() with %q = %v; want %v", tc.status, got, tc.want)
		}
	}
}
