package valueobjects

// PlanStatus is the catalog lifecycle status of a plan.
type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
	PlanStatusDraft    PlanStatus = "draft"
)

func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanStatusActive, PlanStatusInactive, PlanStatusDraft:
		return true
	default:
		return false
	}
}

// IsPurchasable reports whether plans in this status can be sold.
func (s PlanStatus) IsPurchasable() bool {
	return s == PlanStatusActive
}

func (s PlanStatus) String() string {
	return string(s)
}
