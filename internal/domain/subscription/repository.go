package subscription

import (
	"context"
	"time"
)

// Repository persists subscription records. Lookups return nil, nil when the
// row does not exist.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Subscription, error)
	GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*Subscription, error)

	// CreateIfAbsent inserts the row unless one already exists for the user.
	CreateIfAbsent(ctx context.Context, sub *Subscription) error
	// UpsertByUserID writes every billing column and resets the video counter.
	UpsertByUserID(ctx context.Context, sub *Subscription) error
	// UpdateBilling writes plan, status, period and provider references only.
	UpdateBilling(ctx context.Context, sub *Subscription) error
}

// UsageRepository holds the atomic counter operations backing quota checks.
type UsageRepository interface {
	IncrementVideoCount(ctx context.Context, userID string) error
	// DecrementVideoCount never takes the counter below zero.
	DecrementVideoCount(ctx context.Context, userID string) error
	// TryIncrementVideoCount increments only while the user is still on plan
	// and below limit. It reports whether a row was updated.
	TryIncrementVideoCount(ctx context.Context, userID string, plan string, limit int) (bool, error)
	// TryReserveFreeVideo takes a hold on a free-plan slot while the active
	// video count plus unexpired holds is below limit. The counter is set to
	// the active count plus one.
	TryReserveFreeVideo(ctx context.Context, userID string, limit int, hold time.Duration) (bool, error)
	// ReleaseFreeHold drops one hold. It never goes below zero.
	ReleaseFreeHold(ctx context.Context, userID string) error
	// CountActiveVideos counts the user's pending, processing and completed videos.
	CountActiveVideos(ctx context.Context, userID string) (int, error)
	ResetVideoCount(ctx context.Context, stripeSubscriptionID string) error
	// SyncVideoCountFromVideos sets the counter to CountActiveVideos.
	SyncVideoCountFromVideos(ctx context.Context, userID string) error
}
