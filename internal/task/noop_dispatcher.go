package task

import (
	"context"

	"github.com/festalab/stories-ms-go/internal/port"
	"github.com/festalab/stories-ms-go/internal/usecase/story"
)

// NoopDispatcher stands in when Redis is not configured. Process-media
// dispatch is refused outright: accepting an upload nobody will ever
// process would strand the record in "processing" with a leaked staged
// file.
type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) DispatchProcessMedia(ctx context.Context, job port.ProcessMediaJob) error {
	return story.ErrDispatchUnavailable
}

func (d *NoopDispatcher) PublishCompletion(ctx context.Context, sig port.CompletionSignal) error {
	return nil
}
