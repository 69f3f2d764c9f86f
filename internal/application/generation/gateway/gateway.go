// Package gateway defines the contract for the external video generation
// provider.
package gateway

import "context"

// TaskState is the provider-neutral task state. Implementations map their
// own vocabulary onto exactly these values.
type TaskState string

const (
	TaskQueued     TaskState = "queued"
	TaskProcessing TaskState = "processing"
	TaskCompleted  TaskState = "completed"
	TaskFailed     TaskState = "failed"
)

func (s TaskState) IsTerminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

type CreateTaskRequest struct {
	ImageURL    string
	Prompt      string
	Duration    int
	Resolution  string
	AspectRatio string
	Watermark   bool
}

type Task struct {
	ID     string
	Status TaskState
}

// TaskStatus is a point-in-time view of a task. VideoURL is set only when
// Status is completed, Error only when it is failed.
type TaskStatus struct {
	ID       string
	Status   TaskState
	Progress int
	VideoURL string
	Error    string
}

// Gateway errors are returned as upstream AppErrors.
type Gateway interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error)
	GetTaskStatus(ctx context.Context, taskID string) (*TaskStatus, error)
}
