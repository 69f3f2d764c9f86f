package subscription

import (
	"fmt"
	"time"

	vo "github.com/reelpop-inc/reelpop/internal/domain/subscription/valueobjects"
)

// Subscription is the per-user billing record. Plan, status and period
// fields change only through payment events; the video counter is owned by
// the usage ledger and is never written back from this entity after creation.
type Subscription struct {
	id                   uint
	userID               string
	plan                 vo.Plan
	status               vo.Status
	stripeCustomerID     *string
	stripeSubscriptionID *string
	currentPeriodStart   *time.Time
	currentPeriodEnd     *time.Time
	monthlyVideoCount    int
	cancelAtPeriodEnd    bool
	createdAt            time.Time
	updatedAt            time.Time
}

// NewFreeSubscription creates the bootstrap record every user starts with.
func NewFreeSubscription(userID string) (*Subscription, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	now := time.Now().UTC()
	return &Subscription{
		userID:    userID,
		plan:      vo.PlanFree,
		status:    vo.StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(
	id uint,
	userID string,
	plan vo.Plan,
	status vo.Status,
	stripeCustomerID, stripeSubscriptionID *string,
	currentPeriodStart, currentPeriodEnd *time.Time,
	monthlyVideoCount int,
	cancelAtPeriodEnd bool,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlan, plan)
	}
	if monthlyVideoCount < 0 {
		monthlyVideoCount = 0
	}
	return &Subscription{
		id:                   id,
		userID:               userID,
		plan:                 plan,
		status:               status,
		stripeCustomerID:     stripeCustomerID,
		stripeSubscriptionID: stripeSubscriptionID,
		currentPeriodStart:   currentPeriodStart,
		currentPeriodEnd:     currentPeriodEnd,
		monthlyVideoCount:    monthlyVideoCount,
		cancelAtPeriodEnd:    cancelAtPeriodEnd,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}, nil
}

func (s *Subscription) ID() uint { return s.id }
func (s *Subscription) UserID() string { return s.userID }
func (s *Subscription) Plan() vo.Plan { return s.plan }
func (s *Subscription) Status() vo.Status { return s.status }
func (s *Subscription) StripeCustomerID() *string { return s.stripeCustomerID }
func (s *Subscription) StripeSubscriptionID() *string { return s.stripeSubscriptionID }
func (s *Subscription) CurrentPeriodStart() *time.Time { return s.currentPeriodStart }
func (s *Subscription) CurrentPeriodEnd() *time.Time { return s.currentPeriodEnd }
func (s *Subscription) MonthlyVideoCount() int { return s.monthlyVideoCount }
func (s *Subscription) CancelAtPeriodEnd() bool { return s.cancelAtPeriodEnd }
func (s *Subscription) CreatedAt() time.Time { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time { return s.updatedAt }

func (s *Subscription) SetID(id uint) {
	s.id = id
}

// HasCustomer reports whether checkout has linked a payment-provider customer.
func (s *Subscription) HasCustomer() bool {
	return s.stripeCustomerID != nil && *s.stripeCustomerID != ""
}

// StartPaidPeriod records a completed checkout: a new paid plan with a fresh
// billing cycle and an empty usage counter.
func (s *Subscription) StartPaidPeriod(plan vo.Plan, customerID, subscriptionID string, periodStart, periodEnd *time.Time) error {
	if !plan.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPlan, plan)
	}
	s.plan = plan
	s.status = vo.StatusActive
	s.stripeCustomerID = optional(customerID)
	s.stripeSubscriptionID = optional(subscriptionID)
	s.currentPeriodStart = periodStart
	s.currentPeriodEnd = periodEnd
	s.monthlyVideoCount = 0
	s.cancelAtPeriodEnd = false
	s.touch()
	return nil
}

// SyncFromProvider applies a provider-side subscription change.
func (s *Subscription) SyncFromProvider(plan vo.Plan, status vo.Status, periodStart, periodEnd *time.Time, cancelAtPeriodEnd bool) {
	s.plan = plan
	s.status = status
	s.currentPeriodStart = periodStart
	s.currentPeriodEnd = periodEnd
	s.cancelAtPeriodEnd = cancelAtPeriodEnd
	s.touch()
}

// Downgrade returns the user to the free plan after the paid subscription ends.
// The customer reference is kept so a later checkout reuses it.
func (s *Subscription) Downgrade() {
	s.plan = vo.PlanFree
	s.status = vo.StatusActive
	s.stripeSubscriptionID = nil
	s.currentPeriodStart = nil
	s.currentPeriodEnd = nil
	s.cancelAtPeriodEnd = false
	s.touch()
}

func (s *Subscription) MarkPastDue() {
	s.status = vo.StatusPastDue
	s.touch()
}

func (s *Subscription) touch() {
	s.updatedAt = time.Now().UTC()
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
