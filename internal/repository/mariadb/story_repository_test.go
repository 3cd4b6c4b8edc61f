package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *StoryRepository) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB, mock, NewStoryRepository(sqlDB)
}

func storyColumns() []string {
	return []string{
		"id", "member_id", "festa_id", "festa_name", "is_open",
		"media_category", "processing_status", "story_url", "thumbnail_url",
		"preview_url", "metadata", "is_deleted", "created_at", "updated_at",
	}
}

func testStoryID() db.UUID {
	return db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
}

func TestStoryRepository_Create_Success(t *testing.T) {
	_, mock, repo := newMock(t)

	st := &model.Story{
		ID:               testStoryID(),
		MemberID:         42,
		IsOpen:           true,
		MediaCategory:    model.CategoryImage,
		ProcessingStatus: model.StatusProcessing,
		Metadata:         model.Metadata{SizeBytes: 123},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stories")).
		WithArgs(
			st.ID, st.MemberID, st.FestaID, st.FestaName,
			st.IsOpen, st.MediaCategory, st.ProcessingStatus,
			st.StoryURL, st.ThumbnailURL, st.PreviewURL,
			st.Metadata, st.IsDeleted,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), st); err != nil {
		t.Errorf("Create() returned unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestStoryRepository_Create_ExecError(t *testing.T) {
	_, mock, repo := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stories")).
		WillReturnError(errors.New("exec failed"))

	st := &model.Story{ID: testStoryID(), MemberID: 42}
	if err := repo.Create(context.Background(), st); err == nil {
		t.Error("expected an error")
	}
}

func TestStoryRepository_GetByID_NotFound(t *testing.T) {
	_, mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), testStoryID())
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestStoryRepository_GetByID_Success(t *testing.T) {
	_, mock, repo := newMock(t)

	id := testStoryID()
	now := time.Now()
	rows := sqlmock.NewRows(storyColumns()).
		AddRow(id, int64(42), nil, nil, true,
			model.CategoryVideo, model.StatusCompleted, "https://cdn/a.mp4", "https://cdn/b.jpg",
			nil, []byte(`{"size_bytes":9,"width":0,"height":0,"duration_secs":1.5}`), false, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs(id).
		WillReturnRows(rows)

	st, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.ID != id || st.MemberID != 42 || st.MediaCategory != model.CategoryVideo {
		t.Errorf("unexpected record: %+v", st)
	}
	if st.StoryURL == nil || *st.StoryURL != "https://cdn/a.mp4" {
		t.Error("story URL should be scanned")
	}
	if st.Metadata.SizeBytes != 9 {
		t.Errorf("metadata should round-trip, got %+v", st.Metadata)
	}
}

func TestStoryRepository_CompleteProcessing_Transitions(t *testing.T) {
	_, mock, repo := newMock(t)

	id := testStoryID()
	storyURL := "https://cdn/a.mp4"
	thumbURL := "https://cdn/b.jpg"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE stories")).
		WithArgs(model.StatusCompleted, &storyURL, &thumbURL, nil, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	transitioned, err := repo.CompleteProcessing(context.Background(), id, model.StatusCompleted, &storyURL, &thumbURL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !transitioned {
		t.Error("expected the row to transition")
	}
}

func TestStoryRepository_CompleteProcessing_AlreadyTerminal(t *testing.T) {
	_, mock, repo := newMock(t)

	// the conditional WHERE matches no row once the status is terminal
	mock.ExpectExec(regexp.QuoteMeta("UPDATE stories")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	transitioned, err := repo.CompleteProcessing(context.Background(), testStoryID(), model.StatusFailed, nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transitioned {
		t.Error("no transition should be reported for an already-terminal row")
	}
}

func TestStoryRepository_List_FestaFilter(t *testing.T) {
	_, mock, repo := newMock(t)

	festaID := int64(7)
	now := time.Now()
	rows := sqlmock.NewRows(storyColumns()).
		AddRow(testStoryID(), int64(42), festaID, "Feast", true,
			model.CategoryImage, model.StatusCompleted, "https://cdn/a.jpg", "https://cdn/b.jpg",
			nil, nil, false, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("AND festa_id = ?")).
		WithArgs(festaID, 20, 0).
		WillReturnRows(rows)

	out, err := repo.List(context.Background(), port.ListStoriesFilter{FestaID: &festaID, Page: 1, Size: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].FestaID == nil || *out[0].FestaID != 7 {
		t.Errorf("unexpected listing: %+v", out)
	}
}

func TestStoryRepository_ListSoftDeletedBefore(t *testing.T) {
	_, mock, repo := newMock(t)

	cutoff := time.Now().Add(-24 * time.Hour)
	rows := sqlmock.NewRows(storyColumns()).
		AddRow(testStoryID(), int64(42), nil, nil, false,
			model.CategoryImage, model.StatusCompleted, nil, nil,
			nil, nil, true, cutoff.Add(-time.Hour), cutoff.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta("is_deleted = TRUE")).
		WithArgs(cutoff).
		WillReturnRows(rows)

	out, err := repo.ListSoftDeletedBefore(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || !out[0].IsDeleted {
		t.Errorf("unexpected listing: %+v", out)
	}
}

func TestStoryRepository_HardDelete(t *testing.T) {
	_, mock, repo := newMock(t)

	id := testStoryID()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stories WHERE id = ?")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.HardDelete(context.Background(), id); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
