package mariadb

import (
	"context"
	"database/sql"
	"time"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
)

type StoryRepository struct {
	db *sql.DB
}

// compile-time check: *StoryRepository must satisfy port.StoryRepository
var _ port.StoryRepository = (*StoryRepository)(nil)

func NewStoryRepository(db *sql.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

func (r *StoryRepository) Create(ctx context.Context, story *model.Story) error {
	logger.Infof(ctx, "creating database record for story #%s, at status %q...", story.ID, story.ProcessingStatus)

	const query = `
      INSERT INTO stories
        (id, member_id, festa_id, festa_name, is_open, media_category, processing_status, story_url, thumbnail_url, preview_url, metadata, is_deleted)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		story.ID, story.MemberID, story.FestaID, story.FestaName,
		story.IsOpen, story.MediaCategory, story.ProcessingStatus,
		story.StoryURL, story.ThumbnailURL, story.PreviewURL,
		story.Metadata, story.IsDeleted,
	)
	return err
}

func (r *StoryRepository) Update(ctx context.Context, story *model.Story) error {
	logger.Infof(ctx, "updating database record for story #%s...", story.ID)

	const query = `
      UPDATE stories
      SET
        festa_id          = ?,
        festa_name        = ?,
        is_open           = ?,
        processing_status = ?,
        story_url         = ?,
        thumbnail_url     = ?,
        preview_url       = ?,
        metadata          = ?,
        is_deleted        = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		story.FestaID, story.FestaName, story.IsOpen,
		story.ProcessingStatus, story.StoryURL, story.ThumbnailURL,
		story.PreviewURL, story.Metadata, story.IsDeleted,
		story.ID,
	)
	return err
}

func (r *StoryRepository) GetByID(ctx context.Context, id db.UUID) (*model.Story, error) {
	logger.Infof(ctx, "fetching story #%s from the database...", id)

	const query = `
      SELECT id, member_id, festa_id, festa_name, is_open, media_category, processing_status, story_url, thumbnail_url, preview_url, metadata, is_deleted, created_at, updated_at
      FROM stories
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id)
	return scanStory(row)
}

// CompleteProcessing moves a story into a terminal status, but only while
// it is still processing. The conditional WHERE makes duplicate completion
// deliveries no-ops.
func (r *StoryRepository) CompleteProcessing(ctx context.Context, id db.UUID, status string, storyURL, thumbnailURL, previewURL *string) (bool, error) {
	logger.Infof(ctx, "reconciling story #%s to status %q...", id, status)

	const query = `
      UPDATE stories
      SET
        processing_status = ?,
        story_url         = ?,
        thumbnail_url     = ?,
        preview_url       = ?
      WHERE id = ? AND processing_status = 'processing'
    `
	res, err := r.db.ExecContext(ctx, query, status, storyURL, thumbnailURL, previewURL, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *StoryRepository) List(ctx context.Context, filter port.ListStoriesFilter) ([]*model.Story, error) {
	logger.Infof(ctx, "listing stories (page %d, size %d)...", filter.Page, filter.Size)

	query := `
      SELECT id, member_id, festa_id, festa_name, is_open, media_category, processing_status, story_url, thumbnail_url, preview_url, metadata, is_deleted, created_at, updated_at
      FROM stories
      WHERE is_deleted = FALSE AND is_open = TRUE AND processing_status = 'completed'
    `
	args := []any{}
	if filter.FestaID != nil {
		query += " AND festa_id = ?"
		args = append(args, *filter.FestaID)
	}
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Size, (filter.Page-1)*filter.Size)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStories(rows)
}

func (r *StoryRepository) ListSoftDeletedBefore(ctx context.Context, before time.Time) ([]*model.Story, error) {
	logger.Infof(ctx, "listing stories soft-deleted before %s...", before.Format(time.RFC3339))

	const query = `
      SELECT id, member_id, festa_id, festa_name, is_open, media_category, processing_status, story_url, thumbnail_url, preview_url, metadata, is_deleted, created_at, updated_at
      FROM stories
      WHERE is_deleted = TRUE AND updated_at < ?
    `
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStories(rows)
}

func (r *StoryRepository) HardDelete(ctx context.Context, id db.UUID) error {
	logger.Infof(ctx, "hard-deleting story #%s...", id)

	const query = `DELETE FROM stories WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row rowScanner) (*model.Story, error) {
	var story model.Story
	if err := row.Scan(
		&story.ID, &story.MemberID, &story.FestaID, &story.FestaName,
		&story.IsOpen, &story.MediaCategory, &story.ProcessingStatus,
		&story.StoryURL, &story.ThumbnailURL, &story.PreviewURL,
		&story.Metadata, &story.IsDeleted,
		&story.CreatedAt, &story.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &story, nil
}

func scanStories(rows *sql.Rows) ([]*model.Story, error) {
	var stories []*model.Story
	for rows.Next() {
		st, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stories, nil
}
