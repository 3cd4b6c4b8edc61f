package mock

import (
	"context"

	"github.com/festalab/stories-ms-go/internal/port"
)

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	DispatchCalled bool
	DispatchedJobs []port.ProcessMediaJob
	DispatchErr    error

	PublishCalled bool
	Published     []port.CompletionSignal
	PublishErr    error
}

func (m *MockDispatcher) DispatchProcessMedia(ctx context.Context, job port.ProcessMediaJob) error {
	m.DispatchCalled = true
	if m.DispatchErr != nil {
		return m.DispatchErr
	}
	m.DispatchedJobs = append(m.DispatchedJobs, job)
	return nil
}

func (m *MockDispatcher) PublishCompletion(ctx context.Context, sig port.CompletionSignal) error {
	m.PublishCalled = true
	if m.PublishErr != nil {
		return m.PublishErr
	}
	m.Published = append(m.Published, sig)
	return nil
}
