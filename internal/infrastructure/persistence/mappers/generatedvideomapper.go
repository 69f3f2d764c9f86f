package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/reelpop-inc/reelpop/internal/domain/generation"
	vo "github.com/reelpop-inc/reelpop/internal/domain/generation/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/models"
)

type GeneratedVideoMapper interface {
	ToEntity(model *models.GeneratedVideoModel) (*generation.GeneratedVideo, error)
	ToModel(entity *generation.GeneratedVideo) (*models.GeneratedVideoModel, error)
}

type GeneratedVideoMapperImpl struct{}

func NewGeneratedVideoMapper() GeneratedVideoMapper {
	return &GeneratedVideoMapperImpl{}
}

func (m *GeneratedVideoMapperImpl) ToEntity(model *models.GeneratedVideoModel) (*generation.GeneratedVideo, error) {
	if model == nil {
		return nil, nil
	}

	var snapshot *generation.ProviderSnapshot
	if len(model.ProviderPayload) > 0 {
		snapshot = &generation.ProviderSnapshot{}
		if err := json.Unmarshal(model.ProviderPayload, snapshot); err != nil {
			return nil, fmt.Errorf("failed to unmarshal provider payload: %w", err)
		}
	}

	return generation.ReconstructGeneratedVideo(
		model.ID,
		model.ProjectID,
		model.TaskID,
		vo.VideoStatus(model.Status),
		deref(model.VideoURL),
		deref(model.StoragePath),
		deref(model.ErrorMessage),
		generation.VideoSpec{
			Resolution:      model.Resolution,
			AspectRatio:     model.AspectRatio,
			DurationSeconds: model.DurationSeconds,
		},
		model.CountAdjusted,
		snapshot,
		model.CreatedAt,
		model.CompletedAt,
		model.UpdatedAt,
	), nil
}

func (m *GeneratedVideoMapperImpl) ToModel(entity *generation.GeneratedVideo) (*models.GeneratedVideoModel, error) {
	if entity == nil {
		return nil, nil
	}

	var payload datatypes.JSON
	if s := entity.Snapshot(); s != nil {
		raw, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal provider payload: %w", err)
		}
		payload = datatypes.JSON(raw)
	}

	spec := entity.Spec()
	return &models.GeneratedVideoModel{
		ID:              entity.ID(),
		ProjectID:       entity.ProjectID(),
		TaskID:          entity.TaskID(),
		Status:          entity.Status().String(),
		VideoURL:        nullable(entity.VideoURL()),
		StoragePath:     nullable(entity.StoragePath()),
		ErrorMessage:    nullable(entity.ErrorMessage()),
		Resolution:      spec.Resolution,
		AspectRatio:     spec.AspectRatio,
		DurationSeconds: spec.DurationSeconds,
		CountAdjusted:   entity.CountAdjusted(),
		ProviderPayload: payload,
		CreatedAt:       entity.CreatedAt(),
		CompletedAt:     entity.CompletedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}
