package story

import (
	"mime"
	"os"
	"path/filepath"

	"golang.org/x/net/context"

	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
)

type mediaProcessorSrv struct {
	deriver port.AssetDeriver
	strg    port.ObjectStorage
	disp    port.TaskDispatcher
}

// compile-time check: *mediaProcessorSrv must satisfy port.MediaProcessor
var _ port.MediaProcessor = (*mediaProcessorSrv)(nil)

// NewMediaProcessor constructs the asynchronous half of the upload path.
func NewMediaProcessor(deriver port.AssetDeriver, strg port.ObjectStorage, disp port.TaskDispatcher) port.MediaProcessor {
	return &mediaProcessorSrv{deriver: deriver, strg: strg, disp: disp}
}

// ProcessMedia runs the expensive part of one ingestion on the worker
// pool. There is no caller left to observe an error, so every failure
// converges on a FAILED completion signal; local temporary files are
// removed on every exit path. Exactly one signal is published per attempt.
func (m *mediaProcessorSrv) ProcessMedia(ctx context.Context, job port.ProcessMediaJob) error {
	sig := port.CompletionSignal{StoryID: job.StoryID, Status: model.StatusFailed}

	localFiles := []string{job.StagedPath}
	defer func() {
		for _, f := range localFiles {
			if f == "" {
				continue
			}
			if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
				logger.Warnf(ctx, "failed to remove local file %q: %v", f, err)
			}
		}
	}()

	result, err := m.deriver.Derive(ctx, job.StagedPath, job.MediaCategory)
	if err != nil {
		logger.Errorf(ctx, "derivation failed for story #%s: %v", job.StoryID, err)
		return m.disp.PublishCompletion(ctx, sig)
	}
	localFiles = append(localFiles, result.OriginalLocalPath, result.AnimatedPreviewPath)
	for _, r := range result.Renditions {
		localFiles = append(localFiles, r.LocalPath)
	}

	// Trust nothing: a subprocess can exit 0 and still produce nothing
	// usable.
	if !resultUsable(ctx, job.StoryID, result) {
		return m.disp.PublishCompletion(ctx, sig)
	}

	if result.OriginalLocalPath != "" {
		url, err := m.strg.UploadFile(ctx, result.OriginalLocalPath, contentTypeForFile(result.OriginalLocalPath))
		if err != nil {
			logger.Errorf(ctx, "failed uploading original for story #%s: %v", job.StoryID, err)
			return m.disp.PublishCompletion(ctx, sig)
		}
		sig.StoryURL = &url
	}

	thumb := result.Renditions[0]
	thumbURL, err := m.strg.UploadFile(ctx, thumb.LocalPath, "image/jpeg")
	if err != nil {
		logger.Errorf(ctx, "failed uploading thumbnail for story #%s: %v", job.StoryID, err)
		return m.disp.PublishCompletion(ctx, sig)
	}
	sig.ThumbnailURL = &thumbURL

	if result.AnimatedPreviewPath != "" {
		previewURL, err := m.strg.UploadFile(ctx, result.AnimatedPreviewPath, "image/gif")
		if err != nil {
			// the preview is decoration; losing it does not fail the story
			logger.Warnf(ctx, "failed uploading animated preview for story #%s: %v", job.StoryID, err)
		} else {
			sig.PreviewURL = &previewURL
		}
	}

	sig.Status = model.StatusCompleted
	logger.Infof(ctx, "media processing completed for story #%s", job.StoryID)
	return m.disp.PublishCompletion(ctx, sig)
}

func resultUsable(ctx context.Context, id interface{ String() string }, result *port.DerivationResult) bool {
	if result == nil || len(result.Renditions) == 0 {
		logger.Errorf(ctx, "no renditions produced for story #%s", id)
		return false
	}
	first := result.Renditions[0]
	info, err := os.Stat(first.LocalPath)
	if err != nil || info.Size() == 0 {
		logger.Errorf(ctx, "canonical thumbnail missing or empty for story #%s: %q", id, first.LocalPath)
		return false
	}
	return true
}

func contentTypeForFile(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
