package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/reelpop-inc/reelpop/internal/domain/generation"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/mappers"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/models"
	"github.com/reelpop-inc/reelpop/internal/shared/biztime"
	"github.com/reelpop-inc/reelpop/internal/shared/db"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

type GeneratedVideoRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.GeneratedVideoMapper
	logger logger.Interface
}

func NewGeneratedVideoRepository(db *gorm.DB, logger logger.Interface) generation.GeneratedVideoRepository {
	return &GeneratedVideoRepositoryImpl{
		db:     db,
		mapper: mappers.NewGeneratedVideoMapper(),
		logger: logger,
	}
}

func (r *GeneratedVideoRepositoryImpl) Create(ctx context.Context, video *generation.GeneratedVideo) error {
	model, err := r.mapper.ToModel(video)
	if err != nil {
		return fmt.Errorf("failed to map generated video: %w", err)
	}
	if err := db.Conn(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create generated video", "task_id", video.TaskID(), "project_id", video.ProjectID(), "error", err)
		return fmt.Errorf("failed to create generated video: %w", err)
	}
	video.SetID(model.ID)
	return nil
}

func (r *GeneratedVideoRepositoryImpl) GetByTaskID(ctx context.Context, taskID string) (*generation.GeneratedVideo, error) {
	var model models.GeneratedVideoModel
	if err := db.Conn(ctx, r.db).Where("task_id = ?", taskID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get generated video", "task_id", taskID, "error", err)
		return nil, fmt.Errorf("failed to get generated video: %w", err)
	}

	video, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map generated video", "task_id", taskID, "error", err)
		return nil, fmt.Errorf("failed to map generated video: %w", err)
	}
	return video, nil
}

func (r *GeneratedVideoRepositoryImpl) ListByProjectIDs(ctx context.Context, projectIDs []string) ([]*generation.GeneratedVideo, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	var rows []models.GeneratedVideoModel
	err := db.Conn(ctx, r.db).
		Where("project_id IN ?", projectIDs).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list generated videos", "count", len(projectIDs), "error", err)
		return nil, fmt.Errorf("failed to list generated videos: %w", err)
	}

	videos := make([]*generation.GeneratedVideo, 0, len(rows))
	for i := range rows {
		v, err := r.mapper.ToEntity(&rows[i])
		if err != nil {
			r.logger.Warnw("skipping unreadable generated video", "id", rows[i].ID, "error", err)
			continue
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// Update leaves count_adjusted alone; that column only moves through ClaimRefund.
func (r *GeneratedVideoRepositoryImpl) Update(ctx context.Context, video *generation.GeneratedVideo) error {
	if video.ID() == 0 {
		return fmt.Errorf("generated video ID is required for update")
	}
	model, err := r.mapper.ToModel(video)
	if err != nil {
		return fmt.Errorf("failed to map generated video: %w", err)
	}

	result := db.Conn(ctx, r.db).
		Model(&models.GeneratedVideoModel{ID: model.ID}).
		Select("status", "video_url", "storage_path", "error_message", "completed_at", "provider_payload", "updated_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update generated video", "id", model.ID, "task_id", model.TaskID, "error", result.Error)
		return fmt.Errorf("failed to update generated video: %w", result.Error)
	}
	return nil
}

func (r *GeneratedVideoRepositoryImpl) ClaimRefund(ctx context.Context, videoID uint) (bool, error) {
	result := db.Conn(ctx, r.db).
		Model(&models.GeneratedVideoModel{}).
		Where("id = ? AND count_adjusted = ?", videoID, false).
		Updates(map[string]any{
			"count_adjusted": true,
			"updated_at":     biztime.NowUTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to claim refund", "id", videoID, "error", result.Error)
		return false, fmt.Errorf("failed to claim refund: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
