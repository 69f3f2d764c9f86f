package usecases

import (
	"context"

	"github.com/reelpop-inc/reelpop/internal/application/generation/dto"
	"github.com/reelpop-inc/reelpop/internal/domain/generation"
	"github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

type GetProjectQuery struct {
	UserID    string
	ProjectID string
}

type GetProjectUseCase struct {
	projectRepo generation.ProjectRepository
	imageRepo   generation.ProjectImageRepository
	videoRepo   generation.GeneratedVideoRepository
	logger      logger.Interface
}

func NewGetProjectUseCase(
	projectRepo generation.ProjectRepository,
	imageRepo generation.ProjectImageRepository,
	videoRepo generation.GeneratedVideoRepository,
	logger logger.Interface,
) *GetProjectUseCase {
	return &GetProjectUseCase{
		projectRepo: projectRepo,
		imageRepo:   imageRepo,
		videoRepo:   videoRepo,
		logger:      logger,
	}
}

// Execute reports projects owned by someone else as not found.
func (uc *GetProjectUseCase) Execute(ctx context.Context, query GetProjectQuery) (*dto.ProjectDTO, error) {
	if query.UserID == "" {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	project, err := uc.projectRepo.GetByID(ctx, query.ProjectID)
	if err != nil {
		uc.logger.Errorw("failed to get project", "project_id", query.ProjectID, "error", err)
		return nil, errors.NewInternalError("failed to get project")
	}
	if project == nil || !project.IsOwnedBy(query.UserID) {
		return nil, errors.NewNotFoundError("project not found", query.ProjectID)
	}

	out, err := assembleProjects(ctx, uc.imageRepo, uc.videoRepo, []*generation.Project{project})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}
