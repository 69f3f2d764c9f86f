package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reelpop-inc/reelpop/internal/domain/subscription"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/mappers"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/models"
	"github.com/reelpop-inc/reelpop/internal/shared/biztime"
	"github.com/reelpop-inc/reelpop/internal/shared/db"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*subscription.Subscription, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *SubscriptionRepositoryImpl) GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*subscription.Subscription, error) {
	return r.findOne(ctx, "stripe_subscription_id = ?", stripeSubscriptionID)
}

func (r *SubscriptionRepositoryImpl) findOne(ctx context.Context, query string, arg any) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := db.Conn(ctx, r.db).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "query", query, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}
	return entity, nil
}

// CreateIfAbsent relies on the unique user_id index so concurrent first
// requests for one user create exactly one row.
func (r *SubscriptionRepositoryImpl) CreateIfAbsent(ctx context.Context, sub *subscription.Subscription) error {
	model := r.mapper.ToModel(sub)
	result := db.Conn(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to create subscription", "user_id", sub.UserID(), "error", result.Error)
		return fmt.Errorf("failed to create subscription: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		sub.SetID(model.ID)
		r.logger.Infow("free subscription provisioned", "user_id", sub.UserID())
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) UpsertByUserID(ctx context.Context, sub *subscription.Subscription) error {
	model := r.mapper.ToModel(sub)
	model.ID = 0

	result := db.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"plan":                   model.Plan,
				"status":                 model.Status,
				"stripe_customer_id":     model.StripeCustomerID,
				"stripe_subscription_id": model.StripeSubscriptionID,
				"current_period_start":   model.CurrentPeriodStart,
				"current_period_end":     model.CurrentPeriodEnd,
				"monthly_video_count":    0,
				"cancel_at_period_end":   model.CancelAtPeriodEnd,
				"updated_at":             biztime.NowUTC(),
			}),
		}).
		Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to upsert subscription", "user_id", sub.UserID(), "error", result.Error)
		return fmt.Errorf("failed to upsert subscription: %w", result.Error)
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdateBilling(ctx context.Context, sub *subscription.Subscription) error {
	if sub.ID() == 0 {
		return fmt.Errorf("subscription ID is required for update")
	}
	model := r.mapper.ToModel(sub)

	result := db.Conn(ctx, r.db).
		Model(&models.SubscriptionModel{ID: model.ID}).
		Select("plan", "status", "stripe_subscription_id", "current_period_start",
			"current_period_end", "cancel_at_period_end", "updated_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription billing", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	return nil
}
