package usecases

import (
	"context"

	"github.com/reelpop-inc/reelpop/internal/application/generation/dto"
	"github.com/reelpop-inc/reelpop/internal/domain/generation"
	"github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

type ListProjectsUseCase struct {
	projectRepo generation.ProjectRepository
	imageRepo   generation.ProjectImageRepository
	videoRepo   generation.GeneratedVideoRepository
	logger      logger.Interface
}

func NewListProjectsUseCase(
	projectRepo generation.ProjectRepository,
	imageRepo generation.ProjectImageRepository,
	videoRepo generation.GeneratedVideoRepository,
	logger logger.Interface,
) *ListProjectsUseCase {
	return &ListProjectsUseCase{
		projectRepo: projectRepo,
		imageRepo:   imageRepo,
		videoRepo:   videoRepo,
		logger:      logger,
	}
}

// Execute returns the caller's projects, newest first.
func (uc *ListProjectsUseCase) Execute(ctx context.Context, userID string) ([]*dto.ProjectDTO, error) {
	if userID == "" {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	projects, err := uc.projectRepo.ListByUserID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list projects", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to list projects")
	}

	return assembleProjects(ctx, uc.imageRepo, uc.videoRepo, projects)
}

// assembleProjects attaches images and videos to projects with one query per
// child table.
func assembleProjects(
	ctx context.Context,
	imageRepo generation.ProjectImageRepository,
	videoRepo generation.GeneratedVideoRepository,
	projects []*generation.Project,
) ([]*dto.ProjectDTO, error) {
	out := make([]*dto.ProjectDTO, 0, len(projects))
	if len(projects) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID())
	}

	images, err := imageRepo.ListByProjectIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewInternalError("failed to load project images")
	}
	videos, err := videoRepo.ListByProjectIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewInternalError("failed to load project videos")
	}

	imagesByProject := make(map[string][]*generation.ProjectImage, len(projects))
	for _, img := range images {
		imagesByProject[img.ProjectID()] = append(imagesByProject[img.ProjectID()], img)
	}
	videosByProject := make(map[string][]*generation.GeneratedVideo, len(projects))
	for _, v := range videos {
		videosByProject[v.ProjectID()] = append(videosByProject[v.ProjectID()], v)
	}

	for _, p := range projects {
		out = append(out, dto.ToProjectDTO(p, imagesByProject[p.ID()], videosByProject[p.ID()]))
	}
	return out, nil
}
