package usage

import (
	vo "github.com/reelpop-inc/reelpop/internal/domain/subscription/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/shared/config"
)

// PlanPolicy maps plans to video quotas and to payment-provider price ids.
// It is built once at startup and is safe for concurrent use.
type PlanPolicy struct {
	limits      map[vo.Plan]*int
	planToPrice map[vo.Plan]string
	priceToPlan map[string]vo.Plan
}

func NewPlanPolicy(plans config.PlansConfig, stripe config.StripeConfig) *PlanPolicy {
	p := &PlanPolicy{
		limits: map[vo.Plan]*int{
			vo.PlanFree:  limitOf(plans.FreeLimit),
			vo.PlanBasic: limitOf(plans.BasicLimit),
			vo.PlanPro:   limitOf(plans.ProLimit),
		},
		planToPrice: make(map[vo.Plan]string),
		priceToPlan: make(map[string]vo.Plan),
	}
	p.bindPrice(vo.PlanBasic, stripe.PriceBasic)
	p.bindPrice(vo.PlanPro, stripe.PricePro)
	return p
}

func (p *PlanPolicy) bindPrice(plan vo.Plan, priceID string) {
	if priceID == "" {
		return
	}
	p.planToPrice[plan] = priceID
	p.priceToPlan[priceID] = plan
}

// Limit returns the video quota for plan; nil means unlimited. Unknown plans
// get the free quota.
func (p *PlanPolicy) Limit(plan vo.Plan) *int {
	limit, ok := p.limits[plan]
	if !ok {
		limit = p.limits[vo.PlanFree]
	}
	if limit == nil {
		return nil
	}
	v := *limit
	return &v
}

// PlanForPrice resolves a price id. Unknown ids map to the free plan.
func (p *PlanPolicy) PlanForPrice(priceID string) vo.Plan {
	if plan, ok := p.priceToPlan[priceID]; ok {
		return plan
	}
	return vo.PlanFree
}

func (p *PlanPolicy) PriceForPlan(plan vo.Plan) (string, bool) {
	price, ok := p.planToPrice[plan]
	return price, ok
}

func limitOf(n int) *int {
	if n < 0 {
		return nil
	}
	return &n
}
