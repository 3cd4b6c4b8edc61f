package mock

import (
	"context"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
)

// MockStoryIngestor implements port.StoryIngestor for tests.
type MockStoryIngestor struct {
	Out    *model.Story
	Err    error
	Called bool
	In     port.IngestStoryInput
}

func (m *MockStoryIngestor) IngestStory(ctx context.Context, in port.IngestStoryInput) (*model.Story, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockStoryGetter implements port.StoryGetter for tests.
type MockStoryGetter struct {
	Out    *model.Story
	Err    error
	Called bool
	In     port.GetStoryInput
}

func (m *MockStoryGetter) GetStory(ctx context.Context, in port.GetStoryInput) (*model.Story, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockStoryLister implements port.StoryLister for tests.
type MockStoryLister struct {
	Out    []*model.Story
	Err    error
	Called bool
	Filter port.ListStoriesFilter
}

func (m *MockStoryLister) ListStories(ctx context.Context, filter port.ListStoriesFilter) ([]*model.Story, error) {
	m.Called = true
	m.Filter = filter
	return m.Out, m.Err
}

// MockStoryDeleter implements port.StoryDeleter for tests.
type MockStoryDeleter struct {
	Err       error
	Called    bool
	ID        db.UUID
	Requester int64
}

func (m *MockStoryDeleter) DeleteStory(ctx context.Context, id db.UUID, requesterMemberID int64) error {
	m.Called = true
	m.ID = id
	m.Requester = requesterMemberID
	return m.Err
}

// MockVisibilityUpdater implements port.VisibilityUpdater for tests.
type MockVisibilityUpdater struct {
	Out       *model.Story
	Err       error
	Called    bool
	ID        db.UUID
	Requester int64
	IsOpen    bool
}

func (m *MockVisibilityUpdater) UpdateVisibility(ctx context.Context, id db.UUID, requesterMemberID int64, isOpen bool) (*model.Story, error) {
	m.Called = true
	m.ID = id
	m.Requester = requesterMemberID
	m.IsOpen = isOpen
	return m.Out, m.Err
}

// MockMediaProcessor implements port.MediaProcessor for tests.
type MockMediaProcessor struct {
	Err    error
	Called bool
	Job    port.ProcessMediaJob
}

func (m *MockMediaProcessor) ProcessMedia(ctx context.Context, job port.ProcessMediaJob) error {
	m.Called = true
	m.Job = job
	return m.Err
}

// MockCompletionReconciler implements port.CompletionReconciler for tests.
type MockCompletionReconciler struct {
	Err    error
	Called bool
	Sig    port.CompletionSignal
}

func (m *MockCompletionReconciler) CompleteProcessing(ctx context.Context, sig port.CompletionSignal) error {
	m.Called = true
	m.Sig = sig
	return m.Err
}
