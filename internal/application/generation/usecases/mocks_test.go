package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/reelpop-inc/reelpop/internal/application/generation/gateway"
	"github.com/reelpop-inc/reelpop/internal/application/usage"
	"github.com/reelpop-inc/reelpop/internal/domain/generation"
)

type mockQuota struct {
	mock.Mock
}

func (m *mockQuota) ReserveVideo(ctx context.Context, userID string) (*usage.LimitResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usage.LimitResult), args.Error(1)
}

func (m *mockQuota) DecrementVideoCount(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockQuota) ReleaseHold(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateTask(ctx context.Context, req gateway.CreateTaskRequest) (*gateway.Task, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Task), args.Error(1)
}

func (m *mockGateway) GetTaskStatus(ctx context.Context, taskID string) (*gateway.TaskStatus, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.TaskStatus), args.Error(1)
}

type mockProjectRepository struct {
	mock.Mock
}

func (m *mockProjectRepository) Create(ctx context.Context, project *generation.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*generation.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generation.Project), args.Error(1)
}

func (m *mockProjectRepository) ListByUserID(ctx context.Context, userID string) ([]*generation.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*generation.Project), args.Error(1)
}

func (m *mockProjectRepository) UpdateStatus(ctx context.Context, project *generation.Project) error {
	return m.Called(ctx, project).Error(0)
}

type mockImageRepository struct {
	mock.Mock
}

func (m *mockImageRepository) CreateBatch(ctx context.Context, images []*generation.ProjectImage) error {
	return m.Called(ctx, images).Error(0)
}

func (m *mockImageRepository) ListByProjectIDs(ctx context.Context, projectIDs []string) ([]*generation.ProjectImage, error) {
	args := m.Called(ctx, projectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*generation.ProjectImage), args.Error(1)
}

type mockVideoRepository struct {
	mock.Mock
}

func (m *mockVideoRepository) Create(ctx context.Context, video *generation.GeneratedVideo) error {
	return m.Called(ctx, video).Error(0)
}

func (m *mockVideoRepository) GetByTaskID(ctx context.Context, taskID string) (*generation.GeneratedVideo, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generation.GeneratedVideo), args.Error(1)
}

func (m *mockVideoRepository) ListByProjectIDs(ctx context.Context, projectIDs []string) ([]*generation.GeneratedVideo, error) {
	args := m.Called(ctx, projectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*generation.GeneratedVideo), args.Error(1)
}

func (m *mockVideoRepository) Update(ctx context.Context, video *generation.GeneratedVideo) error {
	return m.Called(ctx, video).Error(0)
}

func (m *mockVideoRepository) ClaimRefund(ctx context.Context, videoID uint) (bool, error) {
	args := m.Called(ctx, videoID)
	return args.Bool(0), args.Error(1)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

// inlineTx runs the callback directly; rollback is covered by the db package tests.
type inlineTx struct{}

func (inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
