package db

import (
	"testing"
)

func TestUUID_ScanValue(t *testing.T) {
	original := NewUUID()

	val, err := original.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	raw, ok := val.([]byte)
	if !ok {
		t.Fatalf("Value() returned %T; want []byte", val)
	}
	if len(raw) != 16 {
		t.Fatalf("Value() returned %d bytes; want 16", len(raw))
	}

	var scanned UUID
	if err := scanned.Scan(raw); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if scanned != original {
		t.Errorf("Scan() = %s; want %s", scanned, original)
	}
}

func TestUUID_ScanRejectsNonBytes(t *testing.T) {
	var u UUID
	if err := u.Scan("not-bytes"); err == nil {
		t.Fatal("expected error for non-[]byte source")
	}
}

func TestUUID_TextRoundTrip(t *testing.T) {
	original := NewUUID()

	text, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error: %v", err)
	}

	var parsed UUID
	if err := parsed.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText() error: %v", err)
	}
	if parsed != original {
		t.Errorf("round trip = %s; want %s", parsed, original)
	}
}
