package story

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
)

type storyIngestorSrv struct {
	repo    port.StoryRepository
	deriver port.AssetDeriver
	disp    port.TaskDispatcher
}

// compile-time check: *storyIngestorSrv must satisfy port.StoryIngestor
var _ port.StoryIngestor = (*storyIngestorSrv)(nil)

// NewStoryIngestor constructs the synchronous half of the upload path.
func NewStoryIngestor(repo port.StoryRepository, deriver port.AssetDeriver, disp port.TaskDispatcher) port.StoryIngestor {
	return &storyIngestorSrv{repo: repo, deriver: deriver, disp: disp}
}

// IngestStory classifies the upload, stages it to local disk, persists a
// placeholder record in status "processing" and hands the heavy work to
// the worker pool. The caller gets the processing record back immediately;
// upload latency is bounded by these steps only, never by transcoding.
func (s *storyIngestorSrv) IngestStory(ctx context.Context, in port.IngestStoryInput) (*model.Story, error) {
	category, err := DetectMediaCategory(in.ContentType, in.Filename)
	if err != nil {
		// classification failures are user-visible; no record exists yet
		return nil, err
	}

	stagedPath, err := s.deriver.Stage(ctx, in.File, in.Filename)
	if err != nil {
		return nil, err
	}

	st := &model.Story{
		ID:               db.NewUUID(),
		MemberID:         in.MemberID,
		FestaID:          in.FestaID,
		FestaName:        in.FestaName,
		IsOpen:           in.IsOpen,
		MediaCategory:    category,
		ProcessingStatus: model.StatusProcessing,
		Metadata:         fillMetadata(stagedPath, category),
	}

	if err := s.repo.Create(ctx, st); err != nil {
		removeStaged(ctx, stagedPath)
		return nil, fmt.Errorf("failed creating story record: %w", err)
	}

	job := port.ProcessMediaJob{
		StoryID:       st.ID,
		StagedPath:    stagedPath,
		MediaCategory: category,
	}
	if err := s.disp.DispatchProcessMedia(ctx, job); err != nil {
		// the worker will never see this job, so fail the record here
		removeStaged(ctx, stagedPath)
		st.ProcessingStatus = model.StatusFailed
		if updErr := s.repo.Update(ctx, st); updErr != nil {
			logger.Errorf(ctx, "failed marking story #%s as failed after dispatch error: %v", st.ID, updErr)
		}
		return nil, fmt.Errorf("failed dispatching media processing for story #%s: %w", st.ID, err)
	}

	logger.Infof(ctx, "story #%s accepted as %s, processing dispatched", st.ID, category)
	return st, nil
}

// fillMetadata records what can be read cheaply at ingestion time. Best
// effort only: a file the decoder rejects still transcodes fine through
// the pipeline.
func fillMetadata(stagedPath, category string) model.Metadata {
	md := model.Metadata{}
	if info, err := os.Stat(stagedPath); err == nil {
		md.SizeBytes = info.Size()
	}
	if category != model.CategoryImage {
		return md
	}

	f, err := os.Open(stagedPath)
	if err != nil {
		return md
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return md
	}
	md.Width = cfg.Width
	md.Height = cfg.Height
	return md
}

func removeStaged(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warnf(ctx, "failed to remove staged file %q: %v", path, err)
	}
}
