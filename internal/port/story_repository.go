package port

import (
	"context"
	"time"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/model"
)

// ListStoriesFilter narrows the public story listing.
type ListStoriesFilter struct {
	FestaID *int64
	Page    int
	Size    int
}

// StoryRepository defines persistence operations for stories.
type StoryRepository interface {
	Create(ctx context.Context, story *model.Story) error
	Update(ctx context.Context, story *model.Story) error
	GetByID(ctx context.Context, id db.UUID) (*model.Story, error)
	// CompleteProcessing atomically writes the asset URLs and the terminal
	// status, but only while the record is still processing. It reports
	// whether a row was actually transitioned.
	CompleteProcessing(ctx context.Context, id db.UUID, status string, storyURL, thumbnailURL, previewURL *string) (bool, error)
	List(ctx context.Context, filter ListStoriesFilter) ([]*model.Story, error)
	ListSoftDeletedBefore(ctx context.Context, before time.Time) ([]*model.Story, error)
	HardDelete(ctx context.Context, id db.UUID) error
}
