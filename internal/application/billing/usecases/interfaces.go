package usecases

import (
	"context"

	"github.com/reelpop-inc/reelpop/internal/domain/subscription"
)

// UsageLedger is the part of the usage service billing events drive.
type UsageLedger interface {
	GetSubscription(ctx context.Context, userID string) (*subscription.Subscription, error)
	ResetBillingCycle(ctx context.Context, stripeSubscriptionID string) error
	ResyncCounter(ctx context.Context, userID string) error
}

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
