package story

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
)

type visibilityUpdaterSrv struct {
	repo  port.StoryRepository
	cache port.Cache
}

// compile-time check: *visibilityUpdaterSrv must satisfy port.VisibilityUpdater
var _ port.VisibilityUpdater = (*visibilityUpdaterSrv)(nil)

func NewVisibilityUpdater(repo port.StoryRepository, cache port.Cache) port.VisibilityUpdater {
	return &visibilityUpdaterSrv{repo: repo, cache: cache}
}

// UpdateVisibility toggles a story between open and hidden. Setting the
// value it already has is a no-op that still returns the record.
func (s *visibilityUpdaterSrv) UpdateVisibility(ctx context.Context, id db.UUID, requesterMemberID int64, isOpen bool) (*model.Story, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed fetching story #%s: %w", id, err)
	}
	if st.IsDeleted {
		return nil, ErrStoryNotFound
	}
	if st.MemberID != requesterMemberID {
		return nil, ErrForbidden
	}
	if st.IsOpen == isOpen {
		return st, nil
	}

	st.IsOpen = isOpen
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, fmt.Errorf("failed updating visibility for story #%s: %w", id, err)
	}

	if err := s.cache.DeleteStoryDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting cache for story #%s: %v", id, err)
	}
	if err := s.cache.DeleteEtagStoryDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for story #%s: %v", id, err)
	}

	logger.Infof(ctx, "story #%s visibility set to open=%t", id, isOpen)
	return st, nil
}
