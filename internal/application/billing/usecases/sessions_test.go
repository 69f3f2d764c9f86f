package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reelpop-inc/reelpop/internal/application/billing/provider"
	"github.com/reelpop-inc/reelpop/internal/domain/subscription"
	vo "github.com/reelpop-inc/reelpop/internal/domain/subscription/valueobjects"
	apperrors "github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

func freeSub(t *testing.T, userID string) *subscription.Subscription {
	t.Helper()
	now := time.Now().UTC()
	sub, err := subscription.ReconstructSubscription(2, userID, vo.PlanFree, vo.StatusActive, nil, nil,
		nil, nil, 1, false, now, now)
	require.NoError(t, err)
	return sub
}

func TestCreateCheckoutSession(t *testing.T) {
	ctx := context.Background()

	newUC := func() (*CreateCheckoutSessionUseCase, *mockStripe, *mockLedger) {
		stripe, ledger := new(mockStripe), new(mockLedger)
		return NewCreateCheckoutSessionUseCase(stripe, ledger, testPolicy(), "https://app.example.com/", logger.NewNop()), stripe, ledger
	}

	t.Run("new customer checks out by email", func(t *testing.T) {
		uc, stripe, ledger := newUC()
		ledger.On("GetSubscription", ctx, "user-1").Return(freeSub(t, "user-1"), nil)
		stripe.On("CreateCheckoutSession", ctx, provider.CheckoutRequest{
			PriceID:       "price_pro",
			CustomerEmail: "a@example.com",
			UserID:        "user-1",
			Plan:          "pro",
			SuccessURL:    "https://app.example.com/checkout/success?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:     "https://app.example.com/checkout/cancel",
		}).Return("https://checkout.stripe.com/c/1", nil)

		res, err := uc.Execute(ctx, CreateCheckoutSessionCommand{UserID: "user-1", Email: "a@example.com", Plan: "business"})
		require.NoError(t, err)
		assert.Equal(t, "https://checkout.stripe.com/c/1", res.URL)
	})

	t.Run("returning customer reuses the customer id", func(t *testing.T) {
		uc, stripe, ledger := newUC()
		ledger.On("GetSubscription", ctx, "user-1").Return(paidSub(t, "user-1", vo.PlanBasic), nil)
		stripe.On("CreateCheckoutSession", ctx, mock.MatchedBy(func(req provider.CheckoutRequest) bool {
			return req.CustomerID == "cus_1" && req.CustomerEmail == "" && req.PriceID == "price_basic"
		})).Return("https://checkout.stripe.com/c/2", nil)

		_, err := uc.Execute(ctx, CreateCheckoutSessionCommand{UserID: "user-1", Email: "a@example.com", Plan: "basic"})
		require.NoError(t, err)
		stripe.AssertExpectations(t)
	})

	t.Run("free and unknown plans are rejected", func(t *testing.T) {
		uc, stripe, _ := newUC()
		for _, plan := range []string{"free", "enterprise", ""} {
			_, err := uc.Execute(ctx, CreateCheckoutSessionCommand{UserID: "user-1", Plan: plan})
			assert.True(t, apperrors.IsValidationError(err), plan)
		}
		stripe.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	})

	t.Run("provider failure is upstream", func(t *testing.T) {
		uc, stripe, ledger := newUC()
		ledger.On("GetSubscription", ctx, "user-1").Return(nil, nil)
		stripe.On("CreateCheckoutSession", ctx, mock.Anything).Return("", errors.New("rate limited"))

		_, err := uc.Execute(ctx, CreateCheckoutSessionCommand{UserID: "user-1", Plan: "pro"})
		assert.True(t, apperrors.IsUpstreamError(err))
	})
}

func TestCreatePortalSession(t *testing.T) {
	ctx := context.Background()
	stripe, ledger := new(mockStripe), new(mockLedger)
	uc := NewCreatePortalSessionUseCase(stripe, ledger, "https://app.example.com", logger.NewNop())

	ledger.On("GetSubscription", ctx, "paid").Return(paidSub(t, "paid", vo.PlanPro), nil)
	ledger.On("GetSubscription", ctx, "free").Return(freeSub(t, "free"), nil)
	stripe.On("CreatePortalSession", ctx, "cus_1", "https://app.example.com/dashboard").
		Return("https://billing.stripe.com/p/1", nil)

	res, err := uc.Execute(ctx, "paid")
	require.NoError(t, err)
	assert.Equal(t, "https://billing.stripe.com/p/1", res.URL)

	_, err = uc.Execute(ctx, "free")
	assert.True(t, apperrors.IsNotFoundError(err))
}
