package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/reelpop-inc/reelpop/internal/application/billing/provider"
	"github.com/reelpop-inc/reelpop/internal/domain/billing"
	"github.com/reelpop-inc/reelpop/internal/domain/subscription"
)

type mockDecoder struct {
	mock.Mock
}

func (m *mockDecoder) Verify(payload []byte, signature string) (*billing.Envelope, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Envelope), args.Error(1)
}

func (m *mockDecoder) Decode(envelope *billing.Envelope) (*billing.Event, error) {
	args := m.Called(envelope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Event), args.Error(1)
}

type mockStripe struct {
	mock.Mock
}

func (m *mockStripe) GetSubscriptionPeriod(ctx context.Context, subscriptionID string) (*provider.SubscriptionPeriod, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.SubscriptionPeriod), args.Error(1)
}

func (m *mockStripe) CreateCheckoutSession(ctx context.Context, req provider.CheckoutRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockStripe) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	args := m.Called(ctx, customerID, returnURL)
	return args.String(0), args.Error(1)
}

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

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) Exists(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *mockEventRepository) Record(ctx context.Context, event *billing.ProcessedEvent) error {
	return m.Called(ctx, event).Error(0)
}

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) GetSubscription(ctx context.Context, userID string) (*subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockLedger) ResetBillingCycle(ctx context.Context, stripeSubscriptionID string) error {
	return m.Called(ctx, stripeSubscriptionID).Error(0)
}

func (m *mockLedger) ResyncCounter(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// chanNotifier hands every notified invoice to the test.
type chanNotifier struct {
	sent chan *billing.Invoice
}

func (n *chanNotifier) NotifyPaymentFailed(_ context.Context, invoice *billing.Invoice) error {
	n.sent <- invoice
	return nil
}

type inlineTx struct{}

func (inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
