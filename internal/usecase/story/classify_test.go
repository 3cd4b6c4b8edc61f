package story

import (
	"errors"
	"testing"

	"github.com/festalab/stories-ms-go/internal/model"
)

func TestDetectMediaCategory(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		want        string
		wantErr     bool
	}{
		{"jpeg content type", "image/jpeg", "photo.jpg", model.CategoryImage, false},
		{"mp4 content type", "video/mp4", "clip.mp4", model.CategoryVideo, false},
		{"uppercase content type", "IMAGE/PNG", "photo.png", model.CategoryImage, false},
		{"quicktime", "video/quicktime", "clip.mov", model.CategoryVideo, false},
		{"unknown type falls back to extension", "application/octet-stream", "clip.mkv", model.CategoryVideo, false},
		{"empty type falls back to extension", "", "photo.webp", model.CategoryImage, false},
		{"uppercase extension", "", "PHOTO.JPEG", model.CategoryImage, false},
		{"tiff only known by extension", "", "scan.tiff", model.CategoryImage, false},
		{"wmv only known by extension", "", "old.wmv", model.CategoryVideo, false},
		{"unsupported both", "application/pdf", "doc.pdf", "", true},
		{"no extension", "", "README", "", true},
		{"dotfile", "", ".gitignore", "", true},
		{"trailing dot", "", "file.", "", true},
		{"nothing at all", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectMediaCategory(tt.contentType, tt.filename)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedMediaType) {
					t.Fatalf("expected ErrUnsupportedMediaType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectMediaCategory_ContentTypeWins(t *testing.T) {
	// a video content type on a .jpg filename is still a video
	got, err := DetectMediaCategory("video/mp4", "oddly_named.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != model.CategoryVideo {
		t.Errorf("got %q, want %q", got, model.CategoryVideo)
	}
}
