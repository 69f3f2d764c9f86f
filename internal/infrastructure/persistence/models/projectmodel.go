package models

import (
	"time"

	"github.com/reelpop-inc/reelpop/internal/shared/constants"
)

type ProjectModel struct {
	ID           string    `gorm:"primarykey;size:36"`
	UserID       string    `gorm:"not null;size:64;index:idx_project_user_created,priority:1"`
	Template     string    `gorm:"not null;size:32"`
	Status       string    `gorm:"not null;size:20;default:draft"`
	ProductName  *string   `gorm:"size:200"`
	ProductPrice *string   `gorm:"size:50"`
	Catchphrase  *string   `gorm:"size:200"`
	CreatedAt    time.Time `gorm:"index:idx_project_user_created,priority:2"`
	UpdatedAt    time.Time
}

func (ProjectModel) TableName() string {
	return constants.TableProjects
}

type ProjectImageModel struct {
	ID           uint   `gorm:"primarykey"`
	ProjectID    string `gorm:"not null;size:36;index"`
	StoragePath  string `gorm:"not null;size:500"`
	DisplayOrder int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

func (ProjectImageModel) TableName() string {
	return constants.TableProjectImages
}
