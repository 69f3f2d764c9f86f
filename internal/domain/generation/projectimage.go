package generation

import "time"

// ProjectImage records an uploaded source photo of a project.
type ProjectImage struct {
	id           uint
	projectID    string
	storagePath  string
	displayOrder int
	createdAt    time.Time
}

func NewProjectImage(projectID, storagePath string, displayOrder int) *ProjectImage {
	return &ProjectImage{
		projectID:    projectID,
		storagePath:  storagePath,
		displayOrder: displayOrder,
		createdAt:    time.Now().UTC(),
	}
}

func ReconstructProjectImage(id uint, projectID, storagePath string, displayOrder int, createdAt time.Time) *ProjectImage {
	return &ProjectImage{
		id:           id,
		projectID:    projectID,
		storagePath:  storagePath,
		displayOrder: displayOrder,
		createdAt:    createdAt,
	}
}

func (i *ProjectImage) ID() uint { return i.id }
func (i *ProjectImage) ProjectID() string { return i.projectID }
func (i *ProjectImage) StoragePath() string { return i.storagePath }
func (i *ProjectImage) DisplayOrder() int { return i.displayOrder }
func (i *ProjectImage) CreatedAt() time.Time { return i.createdAt }

func (i *ProjectImage) SetID(id uint) {
	i.id = id
}
