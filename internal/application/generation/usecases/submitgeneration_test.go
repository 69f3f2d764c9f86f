package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reelpop-inc/reelpop/internal/application/generation/gateway"
	"github.com/reelpop-inc/reelpop/internal/application/usage"
	"github.com/reelpop-inc/reelpop/internal/domain/generation"
	genvo "github.com/reelpop-inc/reelpop/internal/domain/generation/valueobjects"
	subvo "github.com/reelpop-inc/reelpop/internal/domain/subscription/valueobjects"
	apperrors "github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

type submitFixture struct {
	uc       *SubmitGenerationUseCase
	quota    *mockQuota
	gateway  *mockGateway
	projects *mockProjectRepository
	images   *mockImageRepository
	videos   *mockVideoRepository
}

func newSubmitFixture() *submitFixture {
	f := &submitFixture{
		quota:    new(mockQuota),
		gateway:  new(mockGateway),
		projects: new(mockProjectRepository),
		images:   new(mockImageRepository),
		videos:   new(mockVideoRepository),
	}
	f.quota.On("ReleaseHold", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.uc = NewSubmitGenerationUseCase(f.quota, f.gateway, f.projects, f.images, f.videos, logger.NewNop())
	return f
}

func validSubmit() SubmitGenerationCommand {
	return SubmitGenerationCommand{
		UserID:       "user-1",
		ImageURLs:    []string{"https://cdn.example.com/mug.png"},
		StoragePaths: []string{"user-1/a.png", "user-1/b.png"},
		Template:     "showcase",
		ProductName:  "<b>Mug</b>",
	}
}

func limitFor(plan subvo.Plan) *usage.LimitResult {
	limit := 3
	return &usage.LimitResult{Allowed: true, Plan: plan, Current: 1, Limit: &limit}
}

func TestSubmitGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("free plan submits a watermarked task", func(t *testing.T) {
		f := newSubmitFixture()
		f.quota.On("ReserveVideo", ctx, "user-1").Return(limitFor(subvo.PlanFree), nil)
		f.projects.On("Create", ctx, mock.AnythingOfType("*generation.Project")).Return(nil)
		f.images.On("CreateBatch", ctx, mock.MatchedBy(func(imgs []*generation.ProjectImage) bool {
			return len(imgs) == 2 && imgs[1].DisplayOrder() == 1
		})).Return(nil)
		f.gateway.On("CreateTask", ctx, mock.MatchedBy(func(req gateway.CreateTaskRequest) bool {
			return req.Watermark &&
				req.Duration == 8 &&
				req.Resolution == "1080p" &&
				req.AspectRatio == "9:16" &&
				req.ImageURL == "https://cdn.example.com/mug.png" &&
				strings.HasSuffix(req.Prompt, `, featuring "Mug"`)
		})).Return(&gateway.Task{ID: "task-1", Status: gateway.TaskQueued}, nil)
		f.videos.On("Create", ctx, mock.MatchedBy(func(v *generation.GeneratedVideo) bool {
			return v.TaskID() == "task-1" && v.Status() == genvo.VideoStatusPending
		})).Return(nil)

		res, err := f.uc.Execute(ctx, validSubmit())
		require.NoError(t, err)
		assert.Equal(t, "task-1", res.TaskID)
		assert.Equal(t, "queued", res.Status)
		require.NotNil(t, res.ProjectID)
		f.videos.AssertExpectations(t)
		f.images.AssertExpectations(t)
		f.quota.AssertNumberOfCalls(t, "ReleaseHold", 1)
	})

	t.Run("paid plan has no watermark", func(t *testing.T) {
		f := newSubmitFixture()
		f.quota.On("ReserveVideo", ctx, "user-1").Return(limitFor(subvo.PlanPro), nil)
		f.projects.On("Create", ctx, mock.Anything).Return(nil)
		f.images.On("CreateBatch", ctx, mock.Anything).Return(nil)
		f.gateway.On("CreateTask", ctx, mock.MatchedBy(func(req gateway.CreateTaskRequest) bool {
			return !req.Watermark
		})).Return(&gateway.Task{ID: "task-2", Status: gateway.TaskQueued}, nil)
		f.videos.On("Create", ctx, mock.Anything).Return(nil)

		_, err := f.uc.Execute(ctx, validSubmit())
		require.NoError(t, err)
		f.gateway.AssertExpectations(t)
		f.quota.AssertNotCalled(t, "ReleaseHold", mock.Anything, mock.Anything)
	})

	t.Run("quota exhausted stops before the provider", func(t *testing.T) {
		f := newSubmitFixture()
		limit := 3
		f.quota.On("ReserveVideo", ctx, "user-1").
			Return(nil, apperrors.NewQuotaExceededError("free", 3, &limit))

		_, err := f.uc.Execute(ctx, validSubmit())
		assert.True(t, apperrors.IsQuotaExceededError(err))
		f.gateway.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
		f.projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("provider rejection releases the reservation", func(t *testing.T) {
		f := newSubmitFixture()
		f.quota.On("ReserveVideo", ctx, "user-1").Return(limitFor(subvo.PlanFree), nil)
		f.quota.On("DecrementVideoCount", ctx, "user-1").Return(nil)
		f.projects.On("Create", ctx, mock.Anything).Return(nil)
		f.projects.On("UpdateStatus", ctx, mock.MatchedBy(func(p *generation.Project) bool {
			return p.Status() == genvo.ProjectStatusFailed
		})).Return(nil)
		f.images.On("CreateBatch", ctx, mock.Anything).Return(nil)
		f.gateway.On("CreateTask", ctx, mock.Anything).Return(nil, errors.New("connection reset"))

		_, err := f.uc.Execute(ctx, validSubmit())
		assert.True(t, apperrors.IsUpstreamError(err))
		f.quota.AssertCalled(t, "DecrementVideoCount", ctx, "user-1")
		f.quota.AssertCalled(t, "ReleaseHold", ctx, "user-1")
		f.projects.AssertExpectations(t)
		f.videos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("project persistence failure still submits", func(t *testing.T) {
		f := newSubmitFixture()
		f.quota.On("ReserveVideo", ctx, "user-1").Return(limitFor(subvo.PlanFree), nil)
		f.projects.On("Create", ctx, mock.Anything).Return(errors.New("db down"))
		f.gateway.On("CreateTask", ctx, mock.Anything).Return(&gateway.Task{ID: "task-3", Status: gateway.TaskQueued}, nil)

		res, err := f.uc.Execute(ctx, validSubmit())
		require.NoError(t, err)
		assert.Equal(t, "task-3", res.TaskID)
		assert.Nil(t, res.ProjectID)
		f.quota.AssertCalled(t, "ReleaseHold", ctx, "user-1")
		f.quota.AssertNotCalled(t, "DecrementVideoCount", mock.Anything, mock.Anything)
		f.images.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
		f.videos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("image and video record failures are tolerated", func(t *testing.T) {
		f := newSubmitFixture()
		f.quota.On("ReserveVideo", ctx, "user-1").Return(limitFor(subvo.PlanFree), nil)
		f.projects.On("Create", ctx, mock.Anything).Return(nil)
		f.images.On("CreateBatch", ctx, mock.Anything).Return(errors.New("db down"))
		f.gateway.On("CreateTask", ctx, mock.Anything).Return(&gateway.Task{ID: "task-4", Status: gateway.TaskQueued}, nil)
		f.videos.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

		res, err := f.uc.Execute(ctx, validSubmit())
		require.NoError(t, err)
		assert.NotNil(t, res.ProjectID)
	})
}

func TestSubmitGenerationValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*SubmitGenerationCommand)
		check  func(error) bool
	}{
		{"missing user", func(c *SubmitGenerationCommand) { c.UserID = "" }, func(err error) bool {
			return apperrors.GetAppError(err).Type == apperrors.ErrorTypeUnauthorized
		}},
		{"no image", func(c *SubmitGenerationCommand) { c.ImageURLs = nil }, apperrors.IsValidationError},
		{"two images", func(c *SubmitGenerationCommand) {
			c.ImageURLs = append(c.ImageURLs, "https://cdn.example.com/b.png")
		}, apperrors.IsValidationError},
		{"not a url", func(c *SubmitGenerationCommand) { c.ImageURLs = []string{"mug.png"} }, apperrors.IsValidationError},
		{"unknown template", func(c *SubmitGenerationCommand) { c.Template = "zoom" }, apperrors.IsValidationError},
		{"long product name", func(c *SubmitGenerationCommand) {
			c.ProductName = strings.Repeat("x", 101)
		}, apperrors.IsValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSubmitFixture()
			cmd := validSubmit()
			tt.mutate(&cmd)

			_, err := f.uc.Execute(ctx, cmd)
			require.Error(t, err)
			assert.True(t, tt.check(err))
			f.quota.AssertNotCalled(t, "ReserveVideo", mock.Anything, mock.Anything)
		})
	}
}

func TestCleanProductCopy(t *testing.T) {
	uc := NewSubmitGenerationUseCase(nil, nil, nil, nil, nil, logger.NewNop())

	assert.Equal(t, "Mug", uc.clean("  <script>alert(1)</script>Mug "))
	assert.Equal(t, "Tom & Jerry", uc.clean("Tom &amp; Jerry"))
	assert.Equal(t, "$19.99", uc.clean("<i>$19.99</i>"))
}
