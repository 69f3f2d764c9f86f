// Package usecases applies payment-provider events to subscription records
// and opens checkout and billing portal sessions.
package usecases

import (
	"context"
	"time"

	"github.com/reelpop-inc/reelpop/internal/application/billing/provider"
	"github.com/reelpop-inc/reelpop/internal/application/usage"
	"github.com/reelpop-inc/reelpop/internal/domain/billing"
	"github.com/reelpop-inc/reelpop/internal/domain/subscription"
	vo "github.com/reelpop-inc/reelpop/internal/domain/subscription/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/goroutine"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
	"github.com/reelpop-inc/reelpop/internal/shared/utils"
)

const dunningTimeout = 30 * time.Second

type HandleStripeWebhookCommand struct {
	Payload   []byte
	Signature string
}

type WebhookResult struct {
	Received     bool `json:"received"`
	Deduplicated bool `json:"deduplicated"`
}

// HandleStripeWebhookUseCase verifies, deduplicates and applies billing
// events. An event is recorded as processed only after it was applied, so a
// failed delivery is retried by the provider.
type HandleStripeWebhookUseCase struct {
	decoder          provider.WebhookDecoder
	stripe           provider.StripeClient
	subscriptionRepo subscription.Repository
	eventRepo        billing.ProcessedEventRepository
	ledger           UsageLedger
	policy           *usage.PlanPolicy
	notifier         provider.DunningNotifier
	txManager        TransactionRunner
	logger           logger.Interface
}

func NewHandleStripeWebhookUseCase(
	decoder provider.WebhookDecoder,
	stripe provider.StripeClient,
	subscriptionRepo subscription.Repository,
	eventRepo billing.ProcessedEventRepository,
	ledger UsageLedger,
	policy *usage.PlanPolicy,
	notifier provider.DunningNotifier,
	txManager TransactionRunner,
	logger logger.Interface,
) *HandleStripeWebhookUseCase {
	return &HandleStripeWebhookUseCase{
		decoder:          decoder,
		stripe:           stripe,
		subscriptionRepo: subscriptionRepo,
		eventRepo:        eventRepo,
		ledger:           ledger,
		policy:           policy,
		notifier:         notifier,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *HandleStripeWebhookUseCase) Execute(ctx context.Context, cmd HandleStripeWebhookCommand) (*WebhookResult, error) {
	if cmd.Signature == "" {
		return nil, errors.NewValidationError("missing webhook signature")
	}
	envelope, err := uc.decoder.Verify(cmd.Payload, cmd.Signature)
	if err != nil {
		uc.logger.Warnw("webhook signature verification failed", "error", err)
		return nil, errors.NewValidationError("invalid webhook signature")
	}

	seen, err := uc.eventRepo.Exists(ctx, envelope.ID)
	if err != nil {
		uc.logger.Errorw("failed to check processed events", "event_id", envelope.ID, "error", err)
		return nil, errors.NewInternalError("failed to process webhook")
	}
	if seen {
		uc.logger.Infow("duplicate webhook event skipped", "event_id", envelope.ID, "event_type", envelope.Type)
		return &WebhookResult{Received: true, Deduplicated: true}, nil
	}

	event, err := uc.decoder.Decode(envelope)
	if err != nil {
		// signed by the provider, so a retry after a fix can still apply it
		uc.logger.Errorw("failed to decode webhook event",
			"event_id", envelope.ID,
			"event_type", envelope.Type,
			"error", err,
		)
		return nil, errors.NewInternalError("failed to decode webhook event")
	}

	if err := uc.dispatch(ctx, event); err != nil {
		uc.logger.Errorw("failed to apply webhook event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err,
		)
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Type == errors.ErrorTypeInternal {
			return nil, appErr
		}
		return nil, errors.NewInternalError("failed to process webhook")
	}

	processed, err := billing.NewProcessedEvent(event.ID, event.Type)
	if err != nil {
		uc.logger.Errorw("failed to build processed event", "event_id", event.ID, "error", err)
		return nil, errors.NewInternalError("failed to process webhook")
	}
	if err := uc.eventRepo.Record(ctx, processed); err != nil {
		uc.logger.Errorw("failed to record processed event", "event_id", event.ID, "error", err)
		return nil, errors.NewInternalError("failed to process webhook")
	}

	uc.logger.Infow("webhook event processed", "event_id", event.ID, "kind", event.Kind)
	return &WebhookResult{Received: true}, nil
}

func (uc *HandleStripeWebhookUseCase) dispatch(ctx context.Context, event *billing.Event) error {
	switch event.Kind {
	case billing.EventCheckoutCompleted:
		return uc.onCheckoutCompleted(ctx, event.Checkout)
	case billing.EventSubscriptionUpdated:
		return uc.onSubscriptionUpdated(ctx, event.Subscription)
	case billing.EventSubscriptionDeleted:
		return uc.onSubscriptionDeleted(ctx, event.Subscription)
	case billing.EventInvoicePaymentSucceeded:
		return uc.onInvoicePaid(ctx, event.Invoice)
	case billing.EventInvoicePaymentFailed:
		return uc.onInvoiceFailed(ctx, event.Invoice)
	default:
		uc.logger.Debugw("ignoring webhook event", "event_id", event.ID, "event_type", event.Type)
		return nil
	}
}

func (uc *HandleStripeWebhookUseCase) onCheckoutCompleted(ctx context.Context, checkout *billing.CheckoutCompleted) error {
	plan, ok := vo.ParsePlan(checkout.Plan)
	if checkout.UserID == "" || !ok || !plan.IsPaid() {
		uc.logger.Warnw("checkout without user or paid plan ignored",
			"user_id", checkout.UserID,
			"plan", checkout.Plan,
		)
		return nil
	}

	var period provider.SubscriptionPeriod
	if checkout.SubscriptionID != "" {
		p, err := uc.stripe.GetSubscriptionPeriod(ctx, checkout.SubscriptionID)
		if err != nil {
			return err
		}
		period = *p
	}

	sub, err := uc.ledger.GetSubscription(ctx, checkout.UserID)
	if err != nil {
		return err
	}
	if sub == nil {
		if sub, err = subscription.NewFreeSubscription(checkout.UserID); err != nil {
			return err
		}
	}
	if err := sub.StartPaidPeriod(plan, checkout.CustomerID, checkout.SubscriptionID, period.Start, period.End); err != nil {
		return err
	}
	if err := uc.subscriptionRepo.UpsertByUserID(ctx, sub); err != nil {
		return err
	}

	uc.logger.Infow("paid subscription started",
		"user_id", checkout.UserID,
		"plan", plan,
		"stripe_subscription_id", checkout.SubscriptionID,
	)
	return nil
}

func (uc *HandleStripeWebhookUseCase) onSubscriptionUpdated(ctx context.Context, change *billing.SubscriptionChange) error {
	sub, err := uc.bySubscriptionID(ctx, change.SubscriptionID)
	if err != nil || sub == nil {
		return err
	}

	previous := sub.Plan()
	plan := uc.policy.PlanForPrice(change.PriceID)
	sub.SyncFromProvider(plan, vo.StatusFromProvider(change.Status), change.PeriodStart, change.PeriodEnd, change.CancelAtPeriodEnd)

	return uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.subscriptionRepo.UpdateBilling(ctx, sub); err != nil {
			return err
		}
		if plan == vo.PlanFree && previous != vo.PlanFree {
			return uc.ledger.ResyncCounter(ctx, sub.UserID())
		}
		return nil
	})
}

func (uc *HandleStripeWebhookUseCase) onSubscriptionDeleted(ctx context.Context, change *billing.SubscriptionChange) error {
	sub, err := uc.bySubscriptionID(ctx, change.SubscriptionID)
	if err != nil || sub == nil {
		return err
	}

	sub.Downgrade()
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.subscriptionRepo.UpdateBilling(ctx, sub); err != nil {
			return err
		}
		return uc.ledger.ResyncCounter(ctx, sub.UserID())
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("subscription ended, user moved to free plan",
		"user_id", sub.UserID(),
		"stripe_subscription_id", change.SubscriptionID,
	)
	return nil
}

func (uc *HandleStripeWebhookUseCase) onInvoicePaid(ctx context.Context, invoice *billing.Invoice) error {
	if !invoice.IsRenewal() || invoice.SubscriptionID == "" {
		return nil
	}
	return uc.ledger.ResetBillingCycle(ctx, invoice.SubscriptionID)
}

func (uc *HandleStripeWebhookUseCase) onInvoiceFailed(ctx context.Context, invoice *billing.Invoice) error {
	if invoice.SubscriptionID == "" {
		return nil
	}
	sub, err := uc.bySubscriptionID(ctx, invoice.SubscriptionID)
	if err != nil || sub == nil {
		return err
	}

	sub.MarkPastDue()
	if err := uc.subscriptionRepo.UpdateBilling(ctx, sub); err != nil {
		return err
	}

	uc.logger.Warnw("subscription payment failed",
		"user_id", sub.UserID(),
		"stripe_subscription_id", invoice.SubscriptionID,
	)
	uc.sendDunning(invoice)
	return nil
}

// sendDunning mails the customer in the background. Delivery failures are
// logged only; the event is already applied.
func (uc *HandleStripeWebhookUseCase) sendDunning(invoice *billing.Invoice) {
	if uc.notifier == nil || invoice.CustomerEmail == "" {
		return
	}
	goroutine.SafeGo(uc.logger, "dunning-email", func() {
		ctx, cancel := context.WithTimeout(context.Background(), dunningTimeout)
		defer cancel()
		if err := uc.notifier.NotifyPaymentFailed(ctx, invoice); err != nil {
			uc.logger.Warnw("failed to send dunning email",
				"invoice_id", invoice.ID,
				"to", utils.MaskEmail(invoice.CustomerEmail),
				"error", err)
			return
		}
		uc.logger.Infow("dunning email sent", "invoice_id", invoice.ID, "to", utils.MaskEmail(invoice.CustomerEmail))
	})
}

// bySubscriptionID returns nil, nil for subscriptions this service never saw.
func (uc *HandleStripeWebhookUseCase) bySubscriptionID(ctx context.Context, id string) (*subscription.Subscription, error) {
	if id == "" {
		return nil, nil
	}
	sub, err := uc.subscriptionRepo.GetByStripeSubscriptionID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		uc.logger.Warnw("webhook for unknown subscription ignored", "stripe_subscription_id", id)
	}
	return sub, nil
}
