package valueobjects

import "fmt"

// Tier is one of the three purchasable packages for a plan, each unlocking a
// different bundle of deliverable files.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

func (t Tier) IsValid() bool {
	switch t {
	case TierBasic, TierStandard, TierPremium:
		return true
	default:
		return false
	}
}

func (t Tier) String() string {
	return string(t)
}

// Label returns the human-readable package label shown at checkout.
func (t Tier) Label() string {
	switch t {
	case TierBasic:
		return "Basic Package"
	case TierStandard:
		return "Standard Package"
	case TierPremium:
		return "Premium Package"
	default:
		return string(t)
	}
}

func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid tier: %s", s)
	}
	return t, nil
}
