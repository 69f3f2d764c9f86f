package mappers

import (
	"github.com/reelpop-inc/reelpop/internal/domain/generation"
	vo "github.com/reelpop-inc/reelpop/internal/domain/generation/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/models"
)

type ProjectMapper interface {
	ToEntity(model *models.ProjectModel) (*generation.Project, error)
	ToModel(entity *generation.Project) *models.ProjectModel
	ImageToEntity(model *models.ProjectImageModel) *generation.ProjectImage
	ImageToModel(entity *generation.ProjectImage) *models.ProjectImageModel
}

type ProjectMapperImpl struct{}

func NewProjectMapper() ProjectMapper {
	return &ProjectMapperImpl{}
}

func (m *ProjectMapperImpl) ToEntity(model *models.ProjectModel) (*generation.Project, error) {
	if model == nil {
		return nil, nil
	}
	return generation.ReconstructProject(
		model.ID,
		model.UserID,
		vo.Template(model.Template),
		vo.ProjectStatus(model.Status),
		generation.ProductDetails{
			Name:        deref(model.ProductName),
			Price:       deref(model.ProductPrice),
			Catchphrase: deref(model.Catchphrase),
		},
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ProjectMapperImpl) ToModel(entity *generation.Project) *models.ProjectModel {
	if entity == nil {
		return nil
	}
	product := entity.Product()
	return &models.ProjectModel{
		ID:           entity.ID(),
		UserID:       entity.UserID(),
		Template:     entity.Template().String(),
		Status:       entity.Status().String(),
		ProductName:  nullable(product.Name),
		ProductPrice: nullable(product.Price),
		Catchphrase:  nullable(product.Catchphrase),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (m *ProjectMapperImpl) ImageToEntity(model *models.ProjectImageModel) *generation.ProjectImage {
	if model == nil {
		return nil
	}
	return generation.ReconstructProjectImage(model.ID, model.ProjectID, model.StoragePath, model.DisplayOrder, model.CreatedAt)
}

func (m *ProjectMapperImpl) ImageToModel(entity *generation.ProjectImage) *models.ProjectImageModel {
	if entity == nil {
		return nil
	}
	return &models.ProjectImageModel{
		ID:           entity.ID(),
		ProjectID:    entity.ProjectID(),
		StoragePath:  entity.StoragePath(),
		DisplayOrder: entity.DisplayOrder(),
		CreatedAt:    entity.CreatedAt(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
