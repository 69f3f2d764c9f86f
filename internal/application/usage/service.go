// Package usage owns the per-user subscription record and video counters
// that back quota enforcement.
package usage

import (
	"context"
	"time"

	"github.com/reelpop-inc/reelpop/internal/domain/subscription"
	vo "github.com/reelpop-inc/reelpop/internal/domain/subscription/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

// freeHoldTTL bounds how long a free-plan reservation counts against the
// quota before its video row is written. It outlasts a provider round trip.
const freeHoldTTL = 5 * time.Minute

// LimitResult reports quota usage for one user. A nil Limit means unlimited.
type LimitResult struct {
	Allowed bool
	Plan    vo.Plan
	Current int
	Limit   *int
}

type Service struct {
	subscriptionRepo subscription.Repository
	usageRepo        subscription.UsageRepository
	policy           *PlanPolicy
	logger           logger.Interface
}

func NewService(
	subscriptionRepo subscription.Repository,
	usageRepo subscription.UsageRepository,
	policy *PlanPolicy,
	logger logger.Interface,
) *Service {
	return &Service{
		subscriptionRepo: subscriptionRepo,
		usageRepo:        usageRepo,
		policy:           policy,
		logger:           logger,
	}
}

// GetSubscription returns nil, nil for users that were never provisioned.
func (s *Service) GetSubscription(ctx context.Context, userID string) (*subscription.Subscription, error) {
	sub, err := s.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Errorw("failed to load subscription", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to load subscription")
	}
	return sub, nil
}

func (s *Service) EnsureFreeSubscription(ctx context.Context, userID string) error {
	sub, err := subscription.NewFreeSubscription(userID)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := s.subscriptionRepo.CreateIfAbsent(ctx, sub); err != nil {
		s.logger.Errorw("failed to provision free subscription", "user_id", userID, "error", err)
		return errors.NewInternalError("failed to provision subscription")
	}
	return nil
}

// CheckVideoLimit is a read-only quota check. Enforcement happens in
// ReserveVideo; callers must not treat Allowed as a reservation.
func (s *Service) CheckVideoLimit(ctx context.Context, userID string) (*LimitResult, error) {
	sub, err := s.GetSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan := vo.PlanFree
	if sub != nil {
		plan = sub.Plan()
	}
	return s.usageFor(ctx, userID, plan, sub)
}

// ReserveVideo atomically checks the quota and takes one slot. It returns a
// quota_exceeded AppError when no slot is available.
func (s *Service) ReserveVideo(ctx context.Context, userID string) (*LimitResult, error) {
	if err := s.EnsureFreeSubscription(ctx, userID); err != nil {
		return nil, err
	}

	sub, err := s.requireSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	// the conditional update is keyed on plan, so a plan change landing
	// between read and update gets one retry against the fresh plan
	for attempt := 0; ; attempt++ {
		plan := sub.Plan()
		reserved, err := s.tryReserve(ctx, userID, plan)
		if err != nil {
			return nil, err
		}
		if reserved {
			result, err := s.usageFor(ctx, userID, plan, sub)
			if err != nil {
				return nil, err
			}
			result.Current++
			result.Allowed = true
			return result, nil
		}

		fresh, err := s.requireSubscription(ctx, userID)
		if err != nil {
			return nil, err
		}
		if fresh.Plan() == plan || attempt > 0 {
			result, err := s.usageFor(ctx, userID, fresh.Plan(), fresh)
			if err != nil {
				return nil, err
			}
			s.logger.Infow("video quota exhausted",
				"user_id", userID,
				"plan", result.Plan,
				"current", result.Current,
			)
			return nil, errors.NewQuotaExceededError(result.Plan.String(), result.Current, result.Limit)
		}
		sub = fresh
	}
}

func (s *Service) tryReserve(ctx context.Context, userID string, plan vo.Plan) (bool, error) {
	limit := s.policy.Limit(plan)
	if limit == nil {
		if err := s.IncrementVideoCount(ctx, userID); err != nil {
			return false, err
		}
		return true, nil
	}

	var (
		ok  bool
		err error
	)
	if plan == vo.PlanFree {
		ok, err = s.usageRepo.TryReserveFreeVideo(ctx, userID, *limit, freeHoldTTL)
	} else {
		ok, err = s.usageRepo.TryIncrementVideoCount(ctx, userID, plan.String(), *limit)
	}
	if err != nil {
		return false, errors.NewInternalError("failed to reserve video")
	}
	return ok, nil
}

func (s *Service) requireSubscription(ctx context.Context, userID string) (*subscription.Subscription, error) {
	sub, err := s.GetSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errors.NewInternalError("subscription missing after provisioning")
	}
	return sub, nil
}

func (s *Service) IncrementVideoCount(ctx context.Context, userID string) error {
	if err := s.usageRepo.IncrementVideoCount(ctx, userID); err != nil {
		return errors.NewInternalError("failed to increment video count")
	}
	return nil
}

// ReleaseHold ends a free-plan reservation once its video row is written or
// the submission is abandoned. From then on the derived count alone decides.
func (s *Service) ReleaseHold(ctx context.Context, userID string) error {
	if err := s.usageRepo.ReleaseFreeHold(ctx, userID); err != nil {
		return errors.NewInternalError("failed to release video reservation")
	}
	return nil
}

func (s *Service) DecrementVideoCount(ctx context.Context, userID string) error {
	if err := s.usageRepo.DecrementVideoCount(ctx, userID); err != nil {
		return errors.NewInternalError("failed to decrement video count")
	}
	return nil
}

// usageFor computes current usage: the derived lifetime count on the free
// plan, the running counter on paid plans.
func (s *Service) usageFor(ctx context.Context, userID string, plan vo.Plan, sub *subscription.Subscription) (*LimitResult, error) {
	limit := s.policy.Limit(plan)

	var current int
	if plan == vo.PlanFree {
		n, err := s.usageRepo.CountActiveVideos(ctx, userID)
		if err != nil {
			return nil, errors.NewInternalError("failed to count videos")
		}
		current = n
	} else if sub != nil {
		current = sub.MonthlyVideoCount()
	}

	allowed := limit == nil || current < *limit
	return &LimitResult{Allowed: allowed, Plan: plan, Current: current, Limit: limit}, nil
}

// ResyncCounter re-seeds the counter from the derived video count. Used when
// a user falls back to the free plan so both measures agree.
func (s *Service) ResyncCounter(ctx context.Context, userID string) error {
	if err := s.usageRepo.SyncVideoCountFromVideos(ctx, userID); err != nil {
		return errors.NewInternalError("failed to resync video count")
	}
	return nil
}

// ResetBillingCycle zeroes the counter of the subscription that just renewed.
func (s *Service) ResetBillingCycle(ctx context.Context, stripeSubscriptionID string) error {
	if stripeSubscriptionID == "" {
		return nil
	}
	if err := s.usageRepo.ResetVideoCount(ctx, stripeSubscriptionID); err != nil {
		return errors.NewInternalError("failed to reset video count")
	}
	return nil
}
