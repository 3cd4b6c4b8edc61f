package story

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/mock"
	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func derivationResult(t *testing.T, dir string) *port.DerivationResult {
	t.Helper()
	return &port.DerivationResult{
		MediaCategory:     model.CategoryImage,
		OriginalLocalPath: writeFile(t, dir, "a_original.jpg", "original"),
		Renditions: []port.Rendition{
			{Label: "small", Width: 150, Height: 150, Format: "jpg", LocalPath: writeFile(t, dir, "a_small.jpg", "small")},
			{Label: "medium", Width: 300, Height: 300, Format: "jpg", LocalPath: writeFile(t, dir, "a_medium.jpg", "medium")},
			{Label: "large", Width: 600, Height: 600, Format: "jpg", LocalPath: writeFile(t, dir, "a_large.jpg", "large")},
		},
	}
}

func TestProcessMedia_Success(t *testing.T) {
	dir := t.TempDir()
	staged := writeFile(t, dir, "a_staged.jpg", "staged")
	result := derivationResult(t, dir)

	drv := &mock.MockDeriver{DeriveOut: result}
	strg := &mock.MockStorage{}
	disp := &mock.MockDispatcher{}
	svc := NewMediaProcessor(drv, strg, disp)

	id := db.NewUUID()
	err := svc.ProcessMedia(context.Background(), port.ProcessMediaJob{
		StoryID: id, StagedPath: staged, MediaCategory: model.CategoryImage,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(disp.Published) != 1 {
		t.Fatalf("expected exactly 1 completion signal, got %d", len(disp.Published))
	}
	sig := disp.Published[0]
	if sig.Status != model.StatusCompleted {
		t.Errorf("expected status %q, got %q", model.StatusCompleted, sig.Status)
	}
	if sig.StoryID != id {
		t.Error("signal should carry the story ID")
	}
	if sig.StoryURL == nil || sig.ThumbnailURL == nil {
		t.Error("completed signal should carry the story and thumbnail URLs")
	}
	if sig.PreviewURL != nil {
		t.Error("images have no animated preview")
	}

	// original + canonical thumbnail only
	if len(strg.Uploaded) != 2 {
		t.Errorf("expected 2 uploads, got %d", len(strg.Uploaded))
	}

	for _, f := range []string{staged, result.OriginalLocalPath, result.Renditions[0].LocalPath} {
		if _, statErr := os.Stat(f); !os.IsNotExist(statErr) {
			t.Errorf("local file %q should be removed", f)
		}
	}
}

func TestProcessMedia_WithPreview(t *testing.T) {
	dir := t.TempDir()
	staged := writeFile(t, dir, "v_staged.mp4", "staged")
	result := derivationResult(t, dir)
	result.MediaCategory = model.CategoryVideo
	result.AnimatedPreviewPath = writeFile(t, dir, "v_preview.gif", "gif")

	drv := &mock.MockDeriver{DeriveOut: result}
	strg := &mock.MockStorage{}
	disp := &mock.MockDispatcher{}
	svc := NewMediaProcessor(drv, strg, disp)

	err := svc.ProcessMedia(context.Background(), port.ProcessMediaJob{
		StoryID: db.NewUUID(), StagedPath: staged, MediaCategory: model.CategoryVideo,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sig := disp.Published[0]
	if sig.Status != model.StatusCompleted || sig.PreviewURL == nil {
		t.Errorf("expected a completed signal with a preview URL, got %+v", sig)
	}
	if len(strg.Uploaded) != 3 {
		t.Errorf("expected 3 uploads, got %d", len(strg.Uploaded))
	}
}

func TestProcessMedia_DeriveError(t *testing.T) {
	dir := t.TempDir()
	staged := writeFile(t, dir, "a_staged.jpg", "staged")

	drv := &mock.MockDeriver{DeriveErr: ErrThumbnailGeneration}
	strg := &mock.MockStorage{}
	disp := &mock.MockDispatcher{}
	svc := NewMediaProcessor(drv, strg, disp)

	err := svc.ProcessMedia(context.Background(), port.ProcessMediaJob{
		StoryID: db.NewUUID(), StagedPath: staged, MediaCategory: model.CategoryImage,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(disp.Published) != 1 || disp.Published[0].Status != model.StatusFailed {
		t.Fatalf("expected exactly 1 FAILED signal, got %+v", disp.Published)
	}
	if len(strg.Uploaded) != 0 {
		t.Error("nothing should be uploaded when derivation fails")
	}
	if _, statErr := os.Stat(staged); !os.IsNotExist(statErr) {
		t.Error("staged file should be removed even on failure")
	}
}

func TestProcessMedia_UploadOriginalError(t *testing.T) {
	dir := t.TempDir()
	staged := writeFile(t, dir, "a_staged.jpg", "staged")
	result := derivationResult(t, dir)

	drv := &mock.MockDeriver{DeriveOut: result}
	strg := &mock.MockStorage{UploadErrOn: result.OriginalLocalPath}
	disp := &mock.MockDispatcher{}
	svc := NewMediaProcessor(drv, strg, disp)

	err := svc.ProcessMedia(context.Background(), port.ProcessMediaJob{
		StoryID: db.NewUUID(), StagedPath: staged, MediaCategory: model.CategoryImage,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(disp.Published) != 1 || disp.Published[0].Status != model.StatusFailed {
		t.Fatalf("expected exactly 1 FAILED signal, got %+v", disp.Published)
	}
	for _, f := range []string{staged, result.OriginalLocalPath, result.Renditions[0].LocalPath} {
		if _, statErr := os.Stat(f); !os.IsNotExist(statErr) {
			t.Errorf("local file %q should be removed after an upload failure", f)
		}
	}
}

func TestProcessMedia_UploadThumbnailError(t *testing.T) {
	dir := t.TempDir()
	staged := writeFile(t, dir, "a_staged.jpg", "staged")
	result := derivationResult(t, dir)

	drv := &mock.MockDeriver{DeriveOut: result}
	strg := &mock.MockStorage{UploadErrOn: result.Renditions[0].LocalPath}
	disp := &mock.MockDispatcher{}
	svc := NewMediaProcessor(drv, strg, disp)

	err := svc.ProcessMedia(context.Background(), port.ProcessMediaJob{
		StoryID: db.NewUUID(), StagedPath: staged, MediaCategory: model.CategoryImage,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(disp.Published) != 1 || disp.Published[0].Status != model.StatusFailed {
		t.Fatalf("expected exactly 1 FAILED signal, got %+v", disp.Published)
	}
	if disp.Published[0].ThumbnailURL != nil {
		t.Error("a failed thumbnail upload must not report a thumbnail URL")
	}

	local := []string{staged, result.OriginalLocalPath}
	for _, r := range result.Renditions {
		local = append(local, r.LocalPath)
	}
	for _, f := range local {
		if _, statErr := os.Stat(f); !os.IsNotExist(statErr) {
			t.Errorf("local file %q should be removed after an upload failure", f)
		}
	}
}

func TestProcessMedia_PreviewUploadErrorStillCompletes(t *testing.T) {
	dir := t.TempDir()
	staged := writeFile(t, dir, "v_staged.mp4", "staged")
	result := derivationResult(t, dir)
	result.MediaCategory = model.CategoryVideo
	result.AnimatedPreviewPath = writeFile(t, dir, "v_preview.gif", "gif")

	drv := &mock.MockDeriver{DeriveOut: result}
	strg := &mock.MockStorage{UploadErrOn: result.AnimatedPreviewPath}
	disp := &mock.MockDispatcher{}
	svc := NewMediaProcessor(drv, strg, disp)

	err := svc.ProcessMedia(context.Background(), port.ProcessMediaJob{
		StoryID: db.NewUUID(), StagedPath: staged, MediaCategory: model.CategoryVideo,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sig := disp.Published[0]
	if sig.Status != model.StatusCompleted {
		t.Errorf("a lost preview must not fail the story, got %q", sig.Status)
	}
	if sig.PreviewURL != nil {
		t.Error("preview URL should be absent when its upload failed")
	}
}

func TestProcessMedia_EmptyRenditions(t *testing.T) {
	dir := t.TempDir()
	staged := writeFile(t, dir, "a_staged.jpg", "staged")

	drv := &mock.MockDeriver{DeriveOut: &port.DerivationResult{MediaCategory: model.CategoryImage}}
	strg := &mock.MockStorage{}
	disp := &mock.MockDispatcher{}
	svc := NewMediaProcessor(drv, strg, disp)

	err := svc.ProcessMedia(context.Background(), port.ProcessMediaJob{
		StoryID: db.NewUUID(), StagedPath: staged, MediaCategory: model.CategoryImage,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(disp.Published) != 1 || disp.Published[0].Status != model.StatusFailed {
		t.Fatalf("expected a FAILED signal for an empty result, got %+v", disp.Published)
	}
}

func TestProcessMedia_PublishErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	staged := writeFile(t, dir, "a_staged.jpg", "staged")

	drv := &mock.MockDeriver{DeriveErr: errors.New("boom")}
	strg := &mock.MockStorage{}
	disp := &mock.MockDispatcher{PublishErr: errors.New("redis down")}
	svc := NewMediaProcessor(drv, strg, disp)

	err := svc.ProcessMedia(context.Background(), port.ProcessMediaJob{
		StoryID: db.NewUUID(), StagedPath: staged, MediaCategory: model.CategoryImage,
	})
	if err == nil {
		t.Fatal("a failed publish must surface so the task can be retried")
	}
}
