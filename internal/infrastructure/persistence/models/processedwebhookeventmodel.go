package models

import (
	"time"

	"github.com/reelpop-inc/reelpop/internal/shared/constants"
)

type ProcessedWebhookEventModel struct {
	EventID     string    `gorm:"primarykey;size:255"`
	EventType   string    `gorm:"not null;size:100"`
	ProcessedAt time.Time `gorm:"not null"`
}

func (ProcessedWebhookEventModel) TableName() string {
	return constants.TableProcessedWebhookEvents
}
