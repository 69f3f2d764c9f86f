package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reelpop-inc/reelpop/internal/domain/billing"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/models"
	"github.com/reelpop-inc/reelpop/internal/shared/db"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

type ProcessedEventRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewProcessedEventRepository(db *gorm.DB, logger logger.Interface) billing.ProcessedEventRepository {
	return &ProcessedEventRepositoryImpl{db: db, logger: logger}
}

func (r *ProcessedEventRepositoryImpl) Exists(ctx context.Context, eventID string) (bool, error) {
	var count int64
	err := db.Conn(ctx, r.db).
		Model(&models.ProcessedWebhookEventModel{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to check processed event", "event_id", eventID, "error", err)
		return false, fmt.Errorf("failed to check processed event: %w", err)
	}
	return count > 0, nil
}

func (r *ProcessedEventRepositoryImpl) Record(ctx context.Context, event *billing.ProcessedEvent) error {
	model := &models.ProcessedWebhookEventModel{
		EventID:     event.EventID(),
		EventType:   event.EventType(),
		ProcessedAt: event.ProcessedAt(),
	}
	err := db.Conn(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to record processed event", "event_id", event.EventID(), "error", err)
		return fmt.Errorf("failed to record processed event: %w", err)
	}
	return nil
}
