package validation

import (
	"encoding/json"
	"testing"
)

func TestValidateStructAndErrorsToJson(t *testing.T) {
	type Input struct {
		MemberID int64  `validate:"required,gt=0" json:"member_id"`
		Name     string `validate:"required"      json:"name"`
	}

	tests := []struct {
		name        string
		in          Input
		wantErr     bool
		wantJsonMap map[string]string
	}{
		{
			name:    "success",
			in:      Input{MemberID: 42, Name: "fest"},
			wantErr: false,
		},
		{
			name:    "missing member",
			in:      Input{MemberID: 0, Name: "fest"},
			wantErr: true,
			wantJsonMap: map[string]string{
				"member_id": "required",
			},
		},
		{
			name:    "missing both",
			in:      Input{},
			wantErr: true,
			wantJsonMap: map[string]string{
				"member_id": "required",
				"name":      "required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}

			// convert and unmarshal for comparison
			js, jerr := ErrorsToJson(err)
			if jerr != nil {
				t.Fatalf("ErrorsToJson() error = %v", jerr)
			}
			var got map[string]string
			if err := json.Unmarshal([]byte(js), &got); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			for field, tag := range tt.wantJsonMap {
				if got[field] != tag {
					t.Errorf("field %q: got %q, want %q", field, got[field], tag)
				}
			}
		})
	}
}

func TestJsonTagFallback(t *testing.T) {
	type Input struct {
		Visible *bool `validate:"required" json:"is_open"`
		Bar     int   `validate:"required"`
	}

	err := ValidateStruct(Input{})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	js, _ := ErrorsToJson(err)

	var got map[string]string
	if err := json.Unmarshal([]byte(js), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if got["is_open"] != "required" {
		t.Errorf("is_open: got %q, want %q", got["is_open"], "required")
	}
	if got["Bar"] != "required" {
		t.Errorf("Bar: got %q, want %q", got["Bar"], "required")
	}
}
