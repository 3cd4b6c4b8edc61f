package mock

import (
	"context"
	"io"

	"github.com/festalab/stories-ms-go/internal/port"
)

// MockDeriver implements asset derivation for tests.
type MockDeriver struct {
	StagedPath string
	StageErr   error

	DeriveOut *port.DerivationResult
	DeriveErr error

	StageCalled    bool
	StagedFilename string
	DeriveCalled   bool
	DerivedPath    string
	DerivedCat     string
}

func (d *MockDeriver) Stage(ctx context.Context, r io.Reader, originalFilename string) (string, error) {
	d.StageCalled = true
	d.StagedFilename = originalFilename
	if d.StageErr != nil {
		return "", d.StageErr
	}
	return d.StagedPath, nil
}

func (d *MockDeriver) Derive(ctx context.Context, stagedPath, mediaCategory string) (*port.DerivationResult, error) {
	d.DeriveCalled = true
	d.DerivedPath = stagedPath
	d.DerivedCat = mediaCategory
	if d.DeriveErr != nil {
		return nil, d.DeriveErr
	}
	return d.DeriveOut, nil
}
