package usage

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/reelpop-inc/reelpop/internal/domain/subscription"
)

type mockSubscriptionRepository struct {
	mock.Mock
}

func (m *mockSubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) GetByStripeSubscriptionID(ctx context.Context, id string) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) CreateIfAbsent(ctx context.Context, sub *subscription.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *mockSubscriptionRepository) UpsertByUserID(ctx context.Context, sub *subscription.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *mockSubscriptionRepository) UpdateBilling(ctx context.Context, sub *subscription.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

type mockUsageRepository struct {
	mock.Mock
}

func (m *mockUsageRepository) IncrementVideoCount(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUsageRepository) DecrementVideoCount(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUsageRepository) TryIncrementVideoCount(ctx context.Context, userID string, plan string, limit int) (bool, error) {
	args := m.Called(ctx, userID, plan, limit)
	return args.Bool(0), args.Error(1)
}

func (m *mockUsageRepository) TryReserveFreeVideo(ctx context.Context, userID string, limit int, hold time.Duration) (bool, error) {
	args := m.Called(ctx, userID, limit, hold)
	return args.Bool(0), args.Error(1)
}

func (m *mockUsageRepository) ReleaseFreeHold(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUsageRepository) CountActiveVideos(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockUsageRepository) ResetVideoCount(ctx context.Context, stripeSubscriptionID string) error {
	return m.Called(ctx, stripeSubscriptionID).Error(0)
}

func (m *mockUsageRepository) SyncVideoCountFromVideos(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
