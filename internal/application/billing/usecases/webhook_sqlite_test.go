package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81/webhook"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reelpop-inc/reelpop/internal/application/billing/provider"
	"github.com/reelpop-inc/reelpop/internal/application/usage"
	"github.com/reelpop-inc/reelpop/internal/domain/subscription"
	vo "github.com/reelpop-inc/reelpop/internal/domain/subscription/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/payment"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/models"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/repository"
	"github.com/reelpop-inc/reelpop/internal/shared/db"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

const whsec = "whsec_integration"

type billingEnv struct {
	uc     *HandleStripeWebhookUseCase
	stripe *mockStripe
	subs   subscription.Repository
	usage  *usage.Service
}

func newBillingEnv(t *testing.T) *billingEnv {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(
		&models.SubscriptionModel{},
		&models.ProjectModel{},
		&models.GeneratedVideoModel{},
		&models.ProcessedWebhookEventModel{},
	))

	log := logger.NewNop()
	subs := repository.NewSubscriptionRepository(gdb, log)
	policy := testPolicy()
	svc := usage.NewService(subs, repository.NewUsageRepository(gdb, log), policy, log)

	env := &billingEnv{stripe: new(mockStripe), subs: subs, usage: svc}
	env.uc = NewHandleStripeWebhookUseCase(payment.NewWebhookDecoder(whsec), env.stripe, subs,
		repository.NewProcessedEventRepository(gdb, log), svc, policy, nil, db.NewTransactionManager(gdb), log)
	return env
}

// send delivers a signed event the way the provider does.
func (e *billingEnv) send(t *testing.T, id, eventType, object string) *WebhookResult {
	t.Helper()
	body := fmt.Sprintf(`{"id":%q,"object":"event","api_version":"2024-06-20","type":%q,"data":{"object":%s}}`,
		id, eventType, object)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(body),
		Secret:    whsec,
		Timestamp: time.Now(),
	})
	res, err := e.uc.Execute(context.Background(), HandleStripeWebhookCommand{Payload: signed.Payload, Signature: signed.Header})
	require.NoError(t, err)
	return res
}

func (e *billingEnv) subscription(t *testing.T) *subscription.Subscription {
	t.Helper()
	sub, err := e.subs.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	return sub
}

const (
	checkoutObject = `{"id":"cs_1","object":"checkout.session","customer":"cus_1","subscription":"sub_1",
		"metadata":{"user_id":"user-1","plan":"basic"}}`
	renewalObject = `{"id":"in_1","object":"invoice","subscription":"sub_1","billing_reason":"subscription_cycle",
		"amount_due":980,"currency":"usd"}`
)

func TestWebhookAgainstDatabase_CheckoutThenRenewal(t *testing.T) {
	ctx := context.Background()
	env := newBillingEnv(t)
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	env.stripe.On("GetSubscriptionPeriod", mock.Anything, "sub_1").
		Return(&provider.SubscriptionPeriod{Start: &start, End: &end}, nil).Once()

	require.NoError(t, env.usage.EnsureFreeSubscription(ctx, "user-1"))

	res := env.send(t, "evt_checkout", "checkout.session.completed", checkoutObject)
	assert.False(t, res.Deduplicated)

	sub := env.subscription(t)
	assert.Equal(t, vo.PlanBasic, sub.Plan())
	assert.Equal(t, vo.StatusActive, sub.Status())
	require.NotNil(t, sub.StripeSubscriptionID())
	assert.Equal(t, "sub_1", *sub.StripeSubscriptionID())
	require.NotNil(t, sub.CurrentPeriodEnd())
	assert.True(t, end.Equal(*sub.CurrentPeriodEnd()))

	for i := 0; i < 2; i++ {
		limit, err := env.usage.ReserveVideo(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, limit.Allowed)
	}
	assert.Equal(t, 2, env.subscription(t).MonthlyVideoCount())

	res = env.send(t, "evt_renewal", "invoice.payment_succeeded", renewalObject)
	assert.False(t, res.Deduplicated)
	assert.Zero(t, env.subscription(t).MonthlyVideoCount())

	_, err := env.usage.ReserveVideo(ctx, "user-1")
	require.NoError(t, err)

	// a redelivered renewal must not wipe usage from the new cycle
	res = env.send(t, "evt_renewal", "invoice.payment_succeeded", renewalObject)
	assert.True(t, res.Deduplicated)
	assert.Equal(t, 1, env.subscription(t).MonthlyVideoCount())
	env.stripe.AssertExpectations(t)
}

func TestWebhookAgainstDatabase_ReplayMutatesOnce(t *testing.T) {
	ctx := context.Background()
	env := newBillingEnv(t)
	env.stripe.On("GetSubscriptionPeriod", mock.Anything, "sub_1").
		Return(&provider.SubscriptionPeriod{}, nil).Once()

	deduplicated := 0
	for i := 0; i < 5; i++ {
		if env.send(t, "evt_checkout", "checkout.session.completed", checkoutObject).Deduplicated {
			deduplicated++
		}
		if i == 0 {
			_, err := env.usage.ReserveVideo(ctx, "user-1")
			require.NoError(t, err)
		}
	}

	assert.Equal(t, 4, deduplicated)
	// a second upsert would have zeroed the counter again
	assert.Equal(t, 1, env.subscription(t).MonthlyVideoCount())
	env.stripe.AssertNumberOfCalls(t, "GetSubscriptionPeriod", 1)
}
