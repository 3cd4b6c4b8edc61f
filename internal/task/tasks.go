package task

import (
	"encoding/json"
	"fmt"

	"github.com/festalab/stories-ms-go/internal/port"

	"github.com/hibiken/asynq"
)

const (
	TypeProcessMedia       = "story:process_media"
	TypeCompleteProcessing = "story:complete_processing"
)

// NewProcessMediaTask creates an Asynq task carrying one dispatched
// processing job.
func NewProcessMediaTask(job port.ProcessMediaJob) (*asynq.Task, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("could not marshal process-media payload: %w", err)
	}
	return asynq.NewTask(TypeProcessMedia, data), nil
}

// ParseProcessMediaPayload parses the task payload to a ProcessMediaJob.
func ParseProcessMediaPayload(t *asynq.Task) (port.ProcessMediaJob, error) {
	var job port.ProcessMediaJob
	if err := json.Unmarshal(t.Payload(), &job); err != nil {
		return port.ProcessMediaJob{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return job, nil
}

// NewCompleteProcessingTask creates an Asynq task carrying one completion
// signal.
func NewCompleteProcessingTask(sig port.CompletionSignal) (*asynq.Task, error) {
	data, err := json.Marshal(sig)
	if err != nil {
		return nil, fmt.Errorf("could not marshal complete-processing payload: %w", err)
	}
	return asynq.NewTask(TypeCompleteProcessing, data), nil
}

// ParseCompleteProcessingPayload parses the task payload to a CompletionSignal.
func ParseCompleteProcessingPayload(t *asynq.Task) (port.CompletionSignal, error) {
	var sig port.CompletionSignal
	if err := json.Unmarshal(t.Payload(), &sig); err != nil {
		return port.CompletionSignal{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return sig, nil
}
