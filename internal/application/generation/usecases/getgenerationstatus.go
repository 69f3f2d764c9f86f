package usecases

import (
	"context"

	"github.com/reelpop-inc/reelpop/internal/application/generation/dto"
	"github.com/reelpop-inc/reelpop/internal/application/generation/gateway"
	"github.com/reelpop-inc/reelpop/internal/domain/generation"
	genvo "github.com/reelpop-inc/reelpop/internal/domain/generation/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/shared/constants"
	"github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

// ErrMsgAssetRejected is reported when a completed task points outside the asset allow-list.
const ErrMsgAssetRejected = "video URL validation failed"

type GetGenerationStatusQuery struct {
	UserID string
	TaskID string
}

// GetGenerationStatusUseCase polls the provider and settles the task locally
// once the provider reports a terminal state. Calls are idempotent.
type GetGenerationStatusUseCase struct {
	gateway     gateway.Gateway
	videoRepo   generation.GeneratedVideoRepository
	projectRepo generation.ProjectRepository
	quota       QuotaLedger
	assets      *generation.AssetPolicy
	fetcher     AssetFetcher
	storage     VideoStorage
	txManager   TransactionRunner
	logger      logger.Interface
}

func NewGetGenerationStatusUseCase(
	gw gateway.Gateway,
	videoRepo generation.GeneratedVideoRepository,
	projectRepo generation.ProjectRepository,
	quota QuotaLedger,
	assets *generation.AssetPolicy,
	fetcher AssetFetcher,
	storage VideoStorage,
	txManager TransactionRunner,
	logger logger.Interface,
) *GetGenerationStatusUseCase {
	return &GetGenerationStatusUseCase{
		gateway:     gw,
		videoRepo:   videoRepo,
		projectRepo: projectRepo,
		quota:       quota,
		assets:      assets,
		fetcher:     fetcher,
		storage:     storage,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *GetGenerationStatusUseCase) Execute(ctx context.Context, query GetGenerationStatusQuery) (*dto.GenerationStatusResult, error) {
	if query.UserID == "" {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	if query.TaskID == "" {
		return nil, errors.NewValidationError("task ID is required")
	}

	video, err := uc.videoRepo.GetByTaskID(ctx, query.TaskID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load generation task")
	}
	if video == nil {
		return nil, errors.NewNotFoundError("generation task not found", query.TaskID)
	}

	project, err := uc.projectRepo.GetByID(ctx, video.ProjectID())
	if err != nil {
		return nil, errors.NewInternalError("failed to load project")
	}
	if project == nil {
		return nil, errors.NewNotFoundError("generation task not found", query.TaskID)
	}
	if !project.IsOwnedBy(query.UserID) {
		uc.logger.Warnw("generation status requested by non-owner",
			"task_id", query.TaskID,
			"user_id", query.UserID,
		)
		return nil, errors.NewForbiddenError("not allowed to access this task")
	}

	status, err := uc.gateway.GetTaskStatus(ctx, query.TaskID)
	if err != nil {
		uc.logger.Errorw("failed to query generation task", "task_id", query.TaskID, "error", err)
		if errors.GetAppError(err) != nil {
			return nil, err
		}
		return nil, errors.NewUpstreamError("failed to query generation status")
	}

	result := &dto.GenerationStatusResult{
		TaskID:   query.TaskID,
		Status:   string(status.Status),
		Progress: status.Progress,
	}

	switch status.Status {
	case gateway.TaskCompleted:
		if !uc.assets.Allows(status.VideoURL) {
			uc.logger.Warnw("rejected video asset outside allowed hosts",
				"task_id", query.TaskID,
				"video_url", status.VideoURL,
			)
			msg := ErrMsgAssetRejected
			result.Error = &msg
			return result, nil
		}
		if err := uc.settleCompleted(ctx, project, video, status); err != nil {
			return nil, err
		}
		url := status.VideoURL
		result.VideoURL = &url

	case gateway.TaskFailed:
		if err := uc.settleFailed(ctx, project, video, status); err != nil {
			return nil, err
		}
		msg := status.Error
		if msg == "" {
			msg = generation.DefaultFailureMessage
		}
		result.Error = &msg

	default:
		if err := uc.recordProgress(ctx, video, status); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (uc *GetGenerationStatusUseCase) settleCompleted(ctx context.Context, project *generation.Project, video *generation.GeneratedVideo, status *gateway.TaskStatus) error {
	if video.Status().IsTerminal() {
		return nil
	}

	storagePath := uc.copyAsset(ctx, project, status)

	video.Complete(status.VideoURL, storagePath)
	video.RecordSnapshot(string(status.Status), status.Progress, "")
	project.MarkCompleted()

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.videoRepo.Update(ctx, video); err != nil {
			return err
		}
		return uc.projectRepo.UpdateStatus(ctx, project)
	})
	if err != nil {
		uc.logger.Errorw("failed to settle completed video", "task_id", status.ID, "error", err)
		return errors.NewInternalError("failed to save generation result")
	}

	uc.logger.Infow("video generation completed",
		"project_id", project.ID(),
		"task_id", video.TaskID(),
		"stored", storagePath != "",
	)
	return nil
}

// copyAsset stores the provider asset in object storage and returns its key,
// or "" when the copy did not succeed.
func (uc *GetGenerationStatusUseCase) copyAsset(ctx context.Context, project *generation.Project, status *gateway.TaskStatus) string {
	data, err := uc.fetcher.Fetch(ctx, status.VideoURL)
	if err != nil {
		uc.logger.Warnw("failed to download generated video", "task_id", status.ID, "error", err)
		return ""
	}

	key := generation.StoragePath(project.UserID(), project.ID(), status.ID)
	if err := uc.storage.Upload(ctx, key, data, constants.VideoContentType); err != nil {
		uc.logger.Warnw("failed to store generated video", "task_id", status.ID, "key", key, "error", err)
		return ""
	}
	return key
}

// settleFailed records the failure and refunds the reserved slot. The refund
// is claimed on the row so concurrent pollers decrement at most once.
func (uc *GetGenerationStatusUseCase) settleFailed(ctx context.Context, project *generation.Project, video *generation.GeneratedVideo, status *gateway.TaskStatus) error {
	switch {
	case video.Status() == genvo.VideoStatusCompleted:
		return nil
	case video.Status() == genvo.VideoStatusFailed && video.CountAdjusted():
		return nil
	}

	video.Fail(status.Error)
	video.RecordSnapshot(string(status.Status), status.Progress, status.Error)
	project.MarkFailed()

	refunded := false
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.videoRepo.Update(ctx, video); err != nil {
			return err
		}
		if err := uc.projectRepo.UpdateStatus(ctx, project); err != nil {
			return err
		}
		claimed, err := uc.videoRepo.ClaimRefund(ctx, video.ID())
		if err != nil {
			return err
		}
		if !claimed {
			return nil
		}
		refunded = true
		return uc.quota.DecrementVideoCount(ctx, project.UserID())
	})
	if err != nil {
		uc.logger.Errorw("failed to settle failed video", "task_id", status.ID, "error", err)
		return errors.NewInternalError("failed to save generation result")
	}

	if refunded {
		uc.logger.Infow("refunded quota for failed generation",
			"user_id", project.UserID(),
			"project_id", project.ID(),
			"task_id", video.TaskID(),
		)
	}
	return nil
}

func (uc *GetGenerationStatusUseCase) recordProgress(ctx context.Context, video *generation.GeneratedVideo, status *gateway.TaskStatus) error {
	if video.Status().IsTerminal() {
		return nil
	}
	video.MarkProcessing()
	video.RecordSnapshot(string(status.Status), status.Progress, "")
	if err := uc.videoRepo.Update(ctx, video); err != nil {
		uc.logger.Errorw("failed to record generation progress", "task_id", status.ID, "error", err)
		return errors.NewInternalError("failed to save generation progress")
	}
	return nil
}
