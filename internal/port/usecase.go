package port

import (
	"context"
	"io"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/model"
)

// StoryIngestor handles the synchronous half of an upload: classify,
// stage, persist a processing placeholder, dispatch the heavy work.
type StoryIngestor interface {
	IngestStory(ctx context.Context, in IngestStoryInput) (*model.Story, error)
}
type IngestStoryInput struct {
	File        io.Reader
	Filename    string
	ContentType string
	MemberID    int64
	FestaID     *int64
	FestaName   *string
	IsOpen      bool
}

// MediaProcessor consumes a dispatched job on the worker pool.
type MediaProcessor interface {
	ProcessMedia(ctx context.Context, job ProcessMediaJob) error
}

// CompletionReconciler consumes a completion signal exactly once per
// record; duplicate deliveries are no-ops.
type CompletionReconciler interface {
	CompleteProcessing(ctx context.Context, sig CompletionSignal) error
}

// StoryGetter retrieves one story for the read path.
type StoryGetter interface {
	GetStory(ctx context.Context, in GetStoryInput) (*model.Story, error)
}
type GetStoryInput struct {
	ID                db.UUID
	RequesterMemberID *int64
}

// StoryLister returns open, completed stories, newest first.
type StoryLister interface {
	ListStories(ctx context.Context, filter ListStoriesFilter) ([]*model.Story, error)
}

// StoryDeleter soft-deletes a story; storage objects survive until the
// purge sweep.
type StoryDeleter interface {
	DeleteStory(ctx context.Context, id db.UUID, requesterMemberID int64) error
}

// VisibilityUpdater toggles a story between open and hidden, idempotently.
type VisibilityUpdater interface {
	UpdateVisibility(ctx context.Context, id db.UUID, requesterMemberID int64, isOpen bool) (*model.Story, error)
}

// DeletedPurger hard-deletes soft-deleted stories and their stored objects.
type DeletedPurger interface {
	PurgeDeletedStories(ctx context.Context) error
}
