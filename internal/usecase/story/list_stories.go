package story

import (
	"context"
	"fmt"

	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type storyListerSrv struct {
	repo port.StoryRepository
}

// compile-time check: *storyListerSrv must satisfy port.StoryLister
var _ port.StoryLister = (*storyListerSrv)(nil)

func NewStoryLister(repo port.StoryRepository) port.StoryLister {
	return &storyListerSrv{repo: repo}
}

// ListStories returns open, completed, non-deleted stories, newest first.
// Page is 1-based; out-of-range sizes are clamped.
func (s *storyListerSrv) ListStories(ctx context.Context, filter port.ListStoriesFilter) ([]*model.Story, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size < 1 || filter.Size > maxPageSize {
		filter.Size = defaultPageSize
	}

	stories, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed listing stories: %w", err)
	}
	return stories, nil
}
