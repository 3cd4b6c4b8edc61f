package port

import (
	"context"

	"github.com/festalab/stories-ms-go/internal/db"
)

// ProcessMediaJob is the asynchronous handoff from the ingestion
// coordinator to the transcoding worker. The staged file lives on local
// disk under a per-upload unique name, so the job itself stays small.
type ProcessMediaJob struct {
	StoryID       db.UUID `json:"story_id"`
	StagedPath    string  `json:"staged_path"`
	MediaCategory string  `json:"media_category"`
}

// CompletionSignal closes the loop between the worker and the persisted
// record. It is produced once per ingestion attempt; delivery is
// at-least-once, so consumers must be idempotent.
type CompletionSignal struct {
	StoryID      db.UUID `json:"story_id"`
	StoryURL     *string `json:"story_url,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	PreviewURL   *string `json:"preview_url,omitempty"`
	Status       string  `json:"status"`
}

// TaskDispatcher enqueues asynchronous work related to story processing.
type TaskDispatcher interface {
	DispatchProcessMedia(ctx context.Context, job ProcessMediaJob) error
	PublishCompletion(ctx context.Context, sig CompletionSignal) error
}
