package valueobjects

import "strings"

type Plan string

const (
	PlanFree  Plan = "free"
	PlanBasic Plan = "basic"
	PlanPro   Plan = "pro"
)

var ValidPlans = map[Plan]bool{
	PlanFree:  true,
	PlanBasic: true,
	PlanPro:   true,
}

// ParsePlan accepts the canonical plan names plus the legacy marketing names
// "starter" and "business".
func ParsePlan(s string) (Plan, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free":
		return PlanFree, true
	case "basic", "starter":
		return PlanBasic, true
	case "pro", "business":
		return PlanPro, true
	default:
		return "", false
	}
}

func (p Plan) String() string {
	return string(p)
}

func (p Plan) IsValid() bool {
	return ValidPlans[p]
}

func (p Plan) IsPaid() bool {
	return p == PlanBasic || p == PlanPro
}
