package port

import (
	"context"
	"io"
)

// Rendition is one derived, fixed-size visual asset.
type Rendition struct {
	Label     string
	Width     int
	Height    int
	Format    string
	LocalPath string
}

// DerivationResult is the outcome of a successful derivation. Renditions
// are ordered; the first one is the canonical thumbnail.
type DerivationResult struct {
	MediaCategory       string
	Renditions          []Rendition
	OriginalLocalPath   string
	AnimatedPreviewPath string
}

// AssetDeriver stages uploads to local disk and turns a staged file into
// the set of renditions the story read path serves.
type AssetDeriver interface {
	// Stage copies the uploaded content to a local temporary path named by
	// a fresh unique identifier plus the original extension.
	Stage(ctx context.Context, r io.Reader, originalFilename string) (string, error)
	// Derive compresses the staged file when oversized and produces the
	// rendition set. On failure every file the call created is removed
	// before the error propagates.
	Derive(ctx context.Context, stagedPath, mediaCategory string) (*DerivationResult, error)
}
