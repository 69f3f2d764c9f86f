package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/reelpop-inc/reelpop/internal/domain/generation"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/mappers"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/models"
	"github.com/reelpop-inc/reelpop/internal/shared/db"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

type ProjectRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ProjectMapper
	logger logger.Interface
}

func NewProjectRepository(db *gorm.DB, logger logger.Interface) generation.ProjectRepository {
	return &ProjectRepositoryImpl{
		db:     db,
		mapper: mappers.NewProjectMapper(),
		logger: logger,
	}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *generation.Project) error {
	model := r.mapper.ToModel(project)
	if err := db.Conn(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create project", "project_id", project.ID(), "user_id", project.UserID(), "error", err)
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id string) (*generation.Project, error) {
	var model models.ProjectModel
	if err := db.Conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get project", "project_id", id, "error", err)
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map project model to entity", "project_id", id, "error", err)
		return nil, fmt.Errorf("failed to map project: %w", err)
	}
	return project, nil
}

func (r *ProjectRepositoryImpl) ListByUserID(ctx context.Context, userID string) ([]*generation.Project, error) {
	var rows []models.ProjectModel
	err := db.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list projects", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*generation.Project, 0, len(rows))
	for i := range rows {
		p, err := r.mapper.ToEntity(&rows[i])
		if err != nil {
			r.logger.Warnw("skipping unreadable project", "project_id", rows[i].ID, "error", err)
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *ProjectRepositoryImpl) UpdateStatus(ctx context.Context, project *generation.Project) error {
	result := db.Conn(ctx, r.db).
		Model(&models.ProjectModel{ID: project.ID()}).
		Updates(map[string]any{
			"status":     project.Status().String(),
			"updated_at": project.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update project status", "project_id", project.ID(), "error", result.Error)
		return fmt.Errorf("failed to update project status: %w", result.Error)
	}
	return nil
}

type ProjectImageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ProjectMapper
	logger logger.Interface
}

func NewProjectImageRepository(db *gorm.DB, logger logger.Interface) generation.ProjectImageRepository {
	return &ProjectImageRepositoryImpl{
		db:     db,
		mapper: mappers.NewProjectMapper(),
		logger: logger,
	}
}

func (r *ProjectImageRepositoryImpl) CreateBatch(ctx context.Context, images []*generation.ProjectImage) error {
	if len(images) == 0 {
		return nil
	}

	rows := make([]*models.ProjectImageModel, 0, len(images))
	for _, img := range images {
		rows = append(rows, r.mapper.ImageToModel(img))
	}
	if err := db.Conn(ctx, r.db).Create(&rows).Error; err != nil {
		r.logger.Errorw("failed to create project images", "project_id", images[0].ProjectID(), "count", len(images), "error", err)
		return fmt.Errorf("failed to create project images: %w", err)
	}

	for i, row := range rows {
		images[i].SetID(row.ID)
	}
	return nil
}

func (r *ProjectImageRepositoryImpl) ListByProjectIDs(ctx context.Context, projectIDs []string) ([]*generation.ProjectImage, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	var rows []models.ProjectImageModel
	err := db.Conn(ctx, r.db).
		Where("project_id IN ?", projectIDs).
		Order("display_order ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list project images", "count", len(projectIDs), "error", err)
		return nil, fmt.Errorf("failed to list project images: %w", err)
	}

	images := make([]*generation.ProjectImage, 0, len(rows))
	for i := range rows {
		images = append(images, r.mapper.ImageToEntity(&rows[i]))
	}
	return images, nil
}
