package story

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
)

type storyGetterSrv struct {
	repo port.StoryRepository
}

// compile-time check: *storyGetterSrv must satisfy port.StoryGetter
var _ port.StoryGetter = (*storyGetterSrv)(nil)

func NewStoryGetter(repo port.StoryRepository) port.StoryGetter {
	return &storyGetterSrv{repo: repo}
}

// GetStory returns one story. Soft-deleted records are indistinguishable
// from missing ones, and hidden stories are only visible to their owner.
func (s *storyGetterSrv) GetStory(ctx context.Context, in port.GetStoryInput) (*model.Story, error) {
	st, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed fetching story #%s: %w", in.ID, err)
	}
	if st.IsDeleted {
		return nil, ErrStoryNotFound
	}
	if !st.IsOpen && (in.RequesterMemberID == nil || *in.RequesterMemberID != st.MemberID) {
		return nil, ErrStoryNotFound
	}

	return st, nil
}
