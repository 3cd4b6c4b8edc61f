package story

import (
	"context"
	"fmt"

	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
)

type completionReconcilerSrv struct {
	repo  port.StoryRepository
	cache port.Cache
}

// compile-time check: *completionReconcilerSrv must satisfy port.CompletionReconciler
var _ port.CompletionReconciler = (*completionReconcilerSrv)(nil)

// NewCompletionReconciler constructs the single writer of terminal
// processing states.
func NewCompletionReconciler(repo port.StoryRepository, cache port.Cache) port.CompletionReconciler {
	return &completionReconcilerSrv{repo: repo, cache: cache}
}

// CompleteProcessing applies one completion signal. The repository update
// is conditional on the record still being in "processing", which makes a
// duplicate delivery a no-op: completion queues are at-least-once.
func (c *completionReconcilerSrv) CompleteProcessing(ctx context.Context, sig port.CompletionSignal) error {
	if sig.Status != model.StatusCompleted && sig.Status != model.StatusFailed {
		return fmt.Errorf("completion signal for story #%s carries non-terminal status %q", sig.StoryID, sig.Status)
	}

	transitioned, err := c.repo.CompleteProcessing(ctx, sig.StoryID, sig.Status, sig.StoryURL, sig.ThumbnailURL, sig.PreviewURL)
	if err != nil {
		return fmt.Errorf("failed reconciling story #%s: %w", sig.StoryID, err)
	}
	if !transitioned {
		logger.Infof(ctx, "story #%s already reconciled, ignoring duplicate completion", sig.StoryID)
		return nil
	}

	if err := c.cache.DeleteStoryDetails(ctx, sig.StoryID); err != nil {
		logger.Warnf(ctx, "failed deleting cache for story #%s: %v", sig.StoryID, err)
	}
	if err := c.cache.DeleteEtagStoryDetails(ctx, sig.StoryID); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for story #%s: %v", sig.StoryID, err)
	}

	logger.Infof(ctx, "story #%s reconciled to %q", sig.StoryID, sig.Status)
	return nil
}
