package seedance

import (
	"context"
	"strconv"
	"time"

	"github.com/reelpop-inc/reelpop/internal/application/generation/gateway"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/kvstore"
	"github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/id"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

const (
	MockPrefix         = "mock"
	MockGenerationTime = 15 * time.Second
	MockVideoHost      = "test-videos.co.uk"
	// public domain sample clip
	MockSampleVideoURL = "https://test-videos.co.uk/vids/bigbuckbunny/mp4/h264/360/Big_Buck_Bunny_360_10s_1MB.mp4"

	mockTaskTTL       = time.Hour
	mockTaskKeyPrefix = "seedance:mock:"
)

// MockGateway simulates a provider task that completes after MockGenerationTime.
// Task start times live in the kv store so every instance sees the same progress.
type MockGateway struct {
	store  kvstore.Store
	now    func() time.Time
	logger logger.Interface
}

func NewMockGateway(store kvstore.Store, logger logger.Interface) *MockGateway {
	return &MockGateway{store: store, now: time.Now, logger: logger}
}

var _ gateway.Gateway = (*MockGateway)(nil)

func (g *MockGateway) CreateTask(ctx context.Context, _ gateway.CreateTaskRequest) (*gateway.Task, error) {
	suffix, err := id.Generate(6)
	if err != nil {
		return nil, errors.NewInternalError("failed to generate task id")
	}
	createdAt := g.now().UnixMilli()
	taskID := id.Join(MockPrefix, strconv.FormatInt(createdAt, 10), suffix)

	if err := g.store.Set(ctx, mockTaskKeyPrefix+taskID, strconv.FormatInt(createdAt, 10), mockTaskTTL); err != nil {
		return nil, errors.NewUpstreamError("mock provider unavailable")
	}

	g.logger.Infow("mock video generation task created", "task_id", taskID)
	return &gateway.Task{ID: taskID, Status: gateway.TaskQueued}, nil
}

// GetTaskStatus reports unknown or expired tasks as completed.
func (g *MockGateway) GetTaskStatus(ctx context.Context, taskID string) (*gateway.TaskStatus, error) {
	raw, ok, err := g.store.Get(ctx, mockTaskKeyPrefix+taskID)
	if err != nil {
		return nil, errors.NewUpstreamError("mock provider unavailable")
	}
	createdAt, parseErr := strconv.ParseInt(raw, 10, 64)
	if !ok || parseErr != nil {
		return completedMock(taskID), nil
	}

	elapsed := g.now().Sub(time.UnixMilli(createdAt))
	progress := int(elapsed * 100 / MockGenerationTime)
	if progress < 0 {
		progress = 0
	}

	switch {
	case progress >= 100:
		if err := g.store.Delete(ctx, mockTaskKeyPrefix+taskID); err != nil {
			g.logger.Warnw("failed to drop finished mock task", "task_id", taskID, "error", err)
		}
		return completedMock(taskID), nil
	case progress < 10:
		return &gateway.TaskStatus{ID: taskID, Status: gateway.TaskQueued, Progress: progress}, nil
	default:
		return &gateway.TaskStatus{ID: taskID, Status: gateway.TaskProcessing, Progress: progress}, nil
	}
}

func completedMock(taskID string) *gateway.TaskStatus {
	return &gateway.TaskStatus{
		ID:       taskID,
		Status:   gateway.TaskCompleted,
		Progress: 100,
		VideoURL: MockSampleVideoURL,
	}
}
