package worker

import (
	"context"

	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/port"
)

// CompleteProcessingHandler handles a complete-processing task.
func CompleteProcessingHandler(ctx context.Context, sig port.CompletionSignal, svc port.CompletionReconciler) error {
	if err := svc.CompleteProcessing(ctx, sig); err != nil {
		logger.Errorf(ctx, "❌  Failed to reconcile story #%s: %v", sig.StoryID, err)
		return err
	}

	logger.Infof(ctx, "✅  Successfully reconciled story #%s", sig.StoryID)
	return nil
}
