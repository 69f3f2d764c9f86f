package generation

import "context"

// ProjectRepository returns nil, nil for missing projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	ListByUserID(ctx context.Context, userID string) ([]*Project, error)
	UpdateStatus(ctx context.Context, project *Project) error
}

type ProjectImageRepository interface {
	CreateBatch(ctx context.Context, images []*ProjectImage) error
	ListByProjectIDs(ctx context.Context, projectIDs []string) ([]*ProjectImage, error)
}

// GeneratedVideoRepository returns nil, nil for missing videos.
type GeneratedVideoRepository interface {
	Create(ctx context.Context, video *GeneratedVideo) error
	GetByTaskID(ctx context.Context, taskID string) (*GeneratedVideo, error)
	ListByProjectIDs(ctx context.Context, projectIDs []string) ([]*GeneratedVideo, error)
	// Update persists the status, asset and error fields.
	Update(ctx context.Context, video *GeneratedVideo) error
	// ClaimRefund flips count_adjusted from false to true and reports whether
	// this call performed the flip.
	ClaimRefund(ctx context.Context, videoID uint) (bool, error)
}
