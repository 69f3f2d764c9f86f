package dto

import (
	"time"

	"github.com/reelpop-inc/reelpop/internal/domain/generation"
)

type SubmitGenerationResult struct {
	TaskID    string  `json:"task_id"`
	ProjectID *string `json:"project_id"`
	Status    string  `json:"status"`
}

// GenerationStatusResult mirrors the provider status. VideoURL and Error are
// null unless the task completed or failed.
type GenerationStatusResult struct {
	TaskID   string  `json:"task_id"`
	Status   string  `json:"status"`
	Progress int     `json:"progress"`
	VideoURL *string `json:"video_url"`
	Error    *string `json:"error"`
}

type ProjectImageDTO struct {
	StoragePath  string `json:"storage_path"`
	DisplayOrder int    `json:"display_order"`
}

type GeneratedVideoDTO struct {
	TaskID          string     `json:"task_id"`
	Status          string     `json:"status"`
	VideoURL        string     `json:"video_url,omitempty"`
	StoragePath     string     `json:"storage_path,omitempty"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	Resolution      string     `json:"resolution,omitempty"`
	AspectRatio     string     `json:"aspect_ratio,omitempty"`
	DurationSeconds int        `json:"duration_seconds,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

type ProjectDTO struct {
	ID           string              `json:"id"`
	Template     string              `json:"template"`
	Status       string              `json:"status"`
	ProductName  string              `json:"product_name,omitempty"`
	ProductPrice string              `json:"product_price,omitempty"`
	Catchphrase  string              `json:"catchphrase,omitempty"`
	Images       []ProjectImageDTO   `json:"images"`
	Videos       []GeneratedVideoDTO `json:"videos"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func ToProjectDTO(p *generation.Project, images []*generation.ProjectImage, videos []*generation.GeneratedVideo) *ProjectDTO {
	product := p.Product()
	out := &ProjectDTO{
		ID:           p.ID(),
		Template:     p.Template().String(),
		Status:       p.Status().String(),
		ProductName:  product.Name,
		ProductPrice: product.Price,
		Catchphrase:  product.Catchphrase,
		Images:       make([]ProjectImageDTO, 0, len(images)),
		Videos:       make([]GeneratedVideoDTO, 0, len(videos)),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
	for _, img := range images {
		out.Images = append(out.Images, ProjectImageDTO{
			StoragePath:  img.StoragePath(),
			DisplayOrder: img.DisplayOrder(),
		})
	}
	for _, v := range videos {
		spec := v.Spec()
		out.Videos = append(out.Videos, GeneratedVideoDTO{
			TaskID:          v.TaskID(),
			Status:          v.Status().String(),
			VideoURL:        v.VideoURL(),
			StoragePath:     v.StoragePath(),
			ErrorMessage:    v.ErrorMessage(),
			Resolution:      spec.Resolution,
			AspectRatio:     spec.AspectRatio,
			DurationSeconds: spec.DurationSeconds,
			CreatedAt:       v.CreatedAt(),
			CompletedAt:     v.CompletedAt(),
		})
	}
	return out
}
