package usage

import (
	"context"
	"time"
)

// SubscriptionOverview is the client-facing view of a subscription with its
// current quota usage. VideoLimit is nil on unlimited plans.
type SubscriptionOverview struct {
	Plan               string     `json:"plan"`
	Status             string     `json:"status"`
	HasCustomer        bool       `json:"has_customer"`
	CurrentPeriodStart *time.Time `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
	VideosUsed         int        `json:"videos_used"`
	VideoLimit         *int       `json:"video_limit"`
}

// Overview returns nil, nil for users without a subscription record.
func (s *Service) Overview(ctx context.Context, userID string) (*SubscriptionOverview, error) {
	sub, err := s.GetSubscription(ctx, userID)
	if err != nil || sub == nil {
		return nil, err
	}

	usage, err := s.usageFor(ctx, userID, sub.Plan(), sub)
	if err != nil {
		return nil, err
	}

	return &SubscriptionOverview{
		Plan:               sub.Plan().String(),
		Status:             sub.Status().String(),
		HasCustomer:        sub.HasCustomer(),
		CurrentPeriodStart: sub.CurrentPeriodStart(),
		CurrentPeriodEnd:   sub.CurrentPeriodEnd(),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd(),
		VideosUsed:         usage.Current,
		VideoLimit:         usage.Limit,
	}, nil
}
