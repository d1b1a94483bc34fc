package domain

// PlanType is a salon's subscription tier.
type PlanType string

const (
	PlanBasic   PlanType = "basic"
	PlanPremium PlanType = "premium"
)

// Plans lists the tiers in the order the forms cycle through them.
var Plans = []PlanType{PlanBasic, PlanPremium}

// ValidPlanType returns true if p is a known tier.
func ValidPlanType(p PlanType) bool {
	for _, known := range Plans {
		if p == known {
			return true
		}
	}
	return false
}

// Label renders the tier the way list and detail screens show it.
// Anything that is not premium is shown as basic.
func (p PlanType) Label() string {
	if p == PlanPremium {
		return "Premium"
	}
	return "Basic"
}
