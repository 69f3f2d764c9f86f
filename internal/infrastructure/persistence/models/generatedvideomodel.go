package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/reelpop-inc/reelpop/internal/shared/constants"
)

// GeneratedVideoModel tracks one provider task. ProviderPayload keeps the last
// status snapshot reported by the provider for support investigations.
type GeneratedVideoModel struct {
	ID              uint    `gorm:"primarykey"`
	ProjectID       string  `gorm:"not null;size:36;index"`
	TaskID          string  `gorm:"uniqueIndex;not null;size:128"`
	Status          string  `gorm:"not null;size:20;default:pending;index"`
	VideoURL        *string `gorm:"size:2048"`
	StoragePath     *string `gorm:"size:500"`
	ErrorMessage    *string `gorm:"size:1000"`
	Resolution      string  `gorm:"size:20"`
	AspectRatio     string  `gorm:"size:20"`
	DurationSeconds int
	CountAdjusted   bool `gorm:"not null;default:false"`
	ProviderPayload datatypes.JSON
	CreatedAt       time.Time
	CompletedAt     *time.Time
	UpdatedAt       time.Time
}

func (GeneratedVideoModel) TableName() string {
	return constants.TableGeneratedVideos
}
