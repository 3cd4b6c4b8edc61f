package worker

import (
	"context"

	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/port"
)

// ProcessMediaHandler handles a process-media task. The service reports
// every outcome through a completion signal, so an error here only means
// the signal itself could not be published.
func ProcessMediaHandler(ctx context.Context, job port.ProcessMediaJob, svc port.MediaProcessor) error {
	if err := svc.ProcessMedia(ctx, job); err != nil {
		logger.Errorf(ctx, "❌  Failed to process media for story #%s: %v", job.StoryID, err)
		return err
	}

	logger.Infof(ctx, "✅  Finished media processing for story #%s", job.StoryID)
	return nil
}
