// Package checkout holds the ephemeral purchase-selection state between plan
// selection and payment initiation.
package checkout

import (
	"fmt"
	"time"

	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/biztime"
	"github.com/planhaus/planhaus/internal/shared/id"
)

// Intent is a single-use record of a pending purchase selection. It captures
// the plan's price for the chosen tier at selection time and lives in a
// TTL'd store until payment is confirmed or it expires. If it is lost the
// purchase flow restarts from the catalog.
type Intent struct {
	ID        string          `json:"id"`
	PlanID    uint            `json:"plan_id"`
	PlanSID   string          `json:"plan_sid"`
	PlanTitle string          `json:"plan_title"`
	Tier      catalogVO.Tier  `json:"tier"`
	TierLabel string          `json:"tier_label"`
	Amount    int64           `json:"amount"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewIntent captures a purchase selection. The amount is the plan's
// authoritative price for the tier at selection time, in minor units.
func NewIntent(planID uint, planSID, planTitle string, tier catalogVO.Tier, amount int64, currency string) (*Intent, error) {
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !tier.IsValid() {
		return nil, fmt.Errorf("invalid tier: %s", tier)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	return &Intent{
		ID:        id.NewCheckoutIntentID(),
		PlanID:    planID,
		PlanSID:   planSID,
		PlanTitle: planTitle,
		Tier:      tier,
		TierLabel: tier.Label(),
		Amount:    amount,
		Currency:  currency,
		CreatedAt: biztime.NowUTC(),
	}, nil
}
