package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Metadata carries best-effort facts about the uploaded original.
type Metadata struct {
	SizeBytes int64 `json:"size_bytes,omitempty"`

	// image-specific
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// video-specific
	DurationSecs float64 `json:"duration_secs,omitempty"`
}

func (m Metadata) Value() (driver.Value, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal Metadata: %w", err)
	}
	return b, nil
}

func (m *Metadata) Scan(src interface{}) error {
	if src == nil {
		*m = Metadata{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("Metadata.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("unmarshal Metadata: %w", err)
	}
	return nil
}
