package task

import (
	"context"

	"github.com/festalab/stories-ms-go/internal/port"

	"github.com/hibiken/asynq"
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

// DispatchProcessMedia enqueues one processing job. The job gets a single
// attempt: partial reruns would duplicate uploads, and the worker already
// converts its own failures into a FAILED completion signal.
func (d *Dispatcher) DispatchProcessMedia(ctx context.Context, job port.ProcessMediaJob) error {
	t, err := NewProcessMediaTask(job)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.MaxRetry(0)); err != nil {
		return err
	}
	return nil
}

// PublishCompletion enqueues one completion signal. Deliveries are
// at-least-once; the reconciler tolerates duplicates.
func (d *Dispatcher) PublishCompletion(ctx context.Context, sig port.CompletionSignal) error {
	t, err := NewCompleteProcessingTask(sig)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t); err != nil {
		return err
	}
	return nil
}
