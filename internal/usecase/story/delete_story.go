package story

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/port"
)

type storyDeleterSrv struct {
	repo  port.StoryRepository
	cache port.Cache
}

// compile-time check: *storyDeleterSrv must satisfy port.StoryDeleter
var _ port.StoryDeleter = (*storyDeleterSrv)(nil)

func NewStoryDeleter(repo port.StoryRepository, cache port.Cache) port.StoryDeleter {
	return &storyDeleterSrv{repo: repo, cache: cache}
}

// DeleteStory soft-deletes a story owned by the requester. Deleting an
// already-deleted story succeeds without touching the record. The stored
// objects stay in place for the purge sweep.
func (s *storyDeleterSrv) DeleteStory(ctx context.Context, id db.UUID, requesterMemberID int64) error {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStoryNotFound
		}
		return fmt.Errorf("failed fetching story #%s: %w", id, err)
	}
	if st.MemberID != requesterMemberID {
		return ErrForbidden
	}
	if st.IsDeleted {
		return nil
	}

	st.IsDeleted = true
	if err := s.repo.Update(ctx, st); err != nil {
		return fmt.Errorf("failed soft-deleting story #%s: %w", id, err)
	}

	if err := s.cache.DeleteStoryDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting cache for story #%s: %v", id, err)
	}
	if err := s.cache.DeleteEtagStoryDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for story #%s: %v", id, err)
	}

	logger.Infof(ctx, "story #%s soft-deleted", id)
	return nil
}
