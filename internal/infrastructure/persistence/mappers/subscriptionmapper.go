package mappers

import (
	"github.com/reelpop-inc/reelpop/internal/domain/subscription"
	vo "github.com/reelpop-inc/reelpop/internal/domain/subscription/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) *models.SubscriptionModel
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}
	return subscription.ReconstructSubscription(
		model.ID,
		model.UserID,
		vo.Plan(model.Plan),
		vo.Status(model.Status),
		model.StripeCustomerID,
		model.StripeSubscriptionID,
		model.CurrentPeriodStart,
		model.CurrentPeriodEnd,
		model.MonthlyVideoCount,
		model.CancelAtPeriodEnd,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) *models.SubscriptionModel {
	if entity == nil {
		return nil
	}
	return &models.SubscriptionModel{
		ID:                   entity.ID(),
		UserID:               entity.UserID(),
		Plan:                 entity.Plan().String(),
		Status:               entity.Status().String(),
		StripeCustomerID:     entity.StripeCustomerID(),
		StripeSubscriptionID: entity.StripeSubscriptionID(),
		CurrentPeriodStart:   entity.CurrentPeriodStart(),
		CurrentPeriodEnd:     entity.CurrentPeriodEnd(),
		MonthlyVideoCount:    entity.MonthlyVideoCount(),
		CancelAtPeriodEnd:    entity.CancelAtPeriodEnd(),
		CreatedAt:            entity.CreatedAt(),
		UpdatedAt:            entity.UpdatedAt(),
	}
}
