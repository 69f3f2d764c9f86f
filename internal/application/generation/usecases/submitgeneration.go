// Package usecases drives the generation task lifecycle: submit, poll and
// settle, with quota compensation on failure.
package usecases

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/reelpop-inc/reelpop/internal/application/generation/dto"
	"github.com/reelpop-inc/reelpop/internal/application/generation/gateway"
	"github.com/reelpop-inc/reelpop/internal/domain/generation"
	genvo "github.com/reelpop-inc/reelpop/internal/domain/generation/valueobjects"
	subvo "github.com/reelpop-inc/reelpop/internal/domain/subscription/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/shared/constants"
	"github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
	"github.com/reelpop-inc/reelpop/internal/shared/utils"
)

type SubmitGenerationCommand struct {
	UserID       string   `json:"-"`
	ImageURLs    []string `json:"image_urls" validate:"len=1,dive,required,url"`
	StoragePaths []string `json:"storage_paths" validate:"max=10,dive,required,max=500"`
	Template     string   `json:"template" validate:"required"`
	ProductName  string   `json:"product_name" validate:"max=100"`
	ProductPrice string   `json:"product_price" validate:"max=50"`
	Catchphrase  string   `json:"catchphrase" validate:"max=100"`
}

type SubmitGenerationUseCase struct {
	quota       QuotaLedger
	gateway     gateway.Gateway
	projectRepo generation.ProjectRepository
	imageRepo   generation.ProjectImageRepository
	videoRepo   generation.GeneratedVideoRepository
	sanitizer   *bluemonday.Policy
	logger      logger.Interface
}

func NewSubmitGenerationUseCase(
	quota QuotaLedger,
	gw gateway.Gateway,
	projectRepo generation.ProjectRepository,
	imageRepo generation.ProjectImageRepository,
	videoRepo generation.GeneratedVideoRepository,
	logger logger.Interface,
) *SubmitGenerationUseCase {
	return &SubmitGenerationUseCase{
		quota:       quota,
		gateway:     gw,
		projectRepo: projectRepo,
		imageRepo:   imageRepo,
		videoRepo:   videoRepo,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger,
	}
}

func (uc *SubmitGenerationUseCase) Execute(ctx context.Context, cmd SubmitGenerationCommand) (*dto.SubmitGenerationResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	template, ok := genvo.ParseTemplate(cmd.Template)
	if !ok {
		return nil, errors.NewValidationError("invalid template", cmd.Template)
	}

	product := generation.ProductDetails{
		Name:        uc.clean(cmd.ProductName),
		Price:       uc.clean(cmd.ProductPrice),
		Catchphrase: uc.clean(cmd.Catchphrase),
	}

	limit, err := uc.quota.ReserveVideo(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if limit.Plan == subvo.PlanFree {
		// by the time Execute returns the video row either exists or never will
		defer uc.releaseHold(ctx, cmd.UserID)
	}

	project, err := generation.NewProject(cmd.UserID, template, product)
	if err != nil {
		uc.release(ctx, cmd.UserID)
		return nil, errors.NewValidationError(err.Error())
	}

	projectSaved := true
	if err := uc.projectRepo.Create(ctx, project); err != nil {
		projectSaved = false
		uc.logger.Errorw("project not persisted, submitting task anyway",
			"user_id", cmd.UserID,
			"project_id", project.ID(),
			"error", err,
		)
	}
	if projectSaved {
		uc.saveImages(ctx, project.ID(), cmd.StoragePaths)
	}

	spec := generation.VideoSpec{
		Resolution:      constants.VideoResolution,
		AspectRatio:     constants.VideoAspectRatio,
		DurationSeconds: constants.VideoDurationSeconds,
	}
	task, err := uc.gateway.CreateTask(ctx, gateway.CreateTaskRequest{
		ImageURL:    cmd.ImageURLs[0],
		Prompt:      project.Prompt(),
		Duration:    spec.DurationSeconds,
		Resolution:  spec.Resolution,
		AspectRatio: spec.AspectRatio,
		Watermark:   limit.Plan == subvo.PlanFree,
	})
	if err != nil {
		uc.logger.Errorw("video provider rejected task", "user_id", cmd.UserID, "project_id", project.ID(), "error", err)
		uc.release(ctx, cmd.UserID)
		if projectSaved {
			project.MarkFailed()
			if uerr := uc.projectRepo.UpdateStatus(ctx, project); uerr != nil {
				uc.logger.Warnw("failed to mark project failed", "project_id", project.ID(), "error", uerr)
			}
		}
		if errors.GetAppError(err) != nil {
			return nil, err
		}
		return nil, errors.NewUpstreamError("video generation could not be started")
	}

	result := &dto.SubmitGenerationResult{TaskID: task.ID, Status: string(task.Status)}
	if !projectSaved {
		uc.logger.Errorw("task submitted without a project record",
			"user_id", cmd.UserID,
			"task_id", task.ID,
		)
		return result, nil
	}

	projectID := project.ID()
	result.ProjectID = &projectID

	video, err := generation.NewGeneratedVideo(projectID, task.ID, spec)
	if err == nil {
		err = uc.videoRepo.Create(ctx, video)
	}
	if err != nil {
		uc.logger.Errorw("generated video record not persisted",
			"user_id", cmd.UserID,
			"project_id", projectID,
			"task_id", task.ID,
			"error", err,
		)
	}

	uc.logger.Infow("video generation submitted",
		"user_id", cmd.UserID,
		"project_id", projectID,
		"task_id", task.ID,
		"plan", limit.Plan,
	)
	return result, nil
}

func (uc *SubmitGenerationUseCase) saveImages(ctx context.Context, projectID string, paths []string) {
	if len(paths) == 0 {
		return
	}
	images := make([]*generation.ProjectImage, 0, len(paths))
	for i, p := range paths {
		images = append(images, generation.NewProjectImage(projectID, p, i))
	}
	if err := uc.imageRepo.CreateBatch(ctx, images); err != nil {
		uc.logger.Warnw("failed to save project images", "project_id", projectID, "error", err)
	}
}

func (uc *SubmitGenerationUseCase) release(ctx context.Context, userID string) {
	if err := uc.quota.DecrementVideoCount(ctx, userID); err != nil {
		uc.logger.Errorw("failed to release video reservation", "user_id", userID, "error", err)
	}
}

func (uc *SubmitGenerationUseCase) releaseHold(ctx context.Context, userID string) {
	if err := uc.quota.ReleaseHold(ctx, userID); err != nil {
		uc.logger.Warnw("failed to release free plan hold", "user_id", userID, "error", err)
	}
}

// clean strips markup from user-supplied copy. The result is plain text, so
// entities escaped by the sanitizer are decoded again.
func (uc *SubmitGenerationUseCase) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(uc.sanitizer.Sanitize(s)))
}
