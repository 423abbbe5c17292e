package handlers

import (
	"time"

	"github.com/planhaus/planhaus/internal/domain/order"
)

// OrderResponse is a customer's view of one purchase.
type OrderResponse struct {
	ID                string     `json:"id"`
	PlanID            uint       `json:"-"`
	Tier              string     `json:"tier"`
	TierLabel         string     `json:"tier_label"`
	Amount            int64      `json:"amount"`
	Currency          string     `json:"currency"`
	Status            string     `json:"status"`
	ProviderReference string     `json:"provider_reference,omitempty"`
	PayerEmail        string     `json:"payer_email"`
	FailureReason     string     `json:"failure_reason,omitempty"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:         o.SID(),
		PlanID:     o.PlanID(),
		Tier:       o.Tier().String(),
		TierLabel:  o.Tier().Label(),
		Amount:     o.Amount().AmountMinor(),
		Currency:   o.Amount().Currency(),
		Status:     o.Status().String(),
		PayerEmail: o.PayerEmail(),
		PaidAt:     o.PaidAt(),
		CreatedAt:  o.CreatedAt(),
	}

	if ref := o.ProviderReference(); ref != nil {
		resp.ProviderReference = *ref
	}
	if reason := o.FailureReason(); reason != nil {
		resp.FailureReason = *reason
	}

	return resp
}

func toOrderResponses(orders []*order.Order) []OrderResponse {
	items := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderResponse(o))
	}
	return items
}

// DownloadLinkResponse carries a short-lived signed token granting access to
// the purchased tier's document bundle.
type DownloadLinkResponse struct {
	OrderID     string    `json:"order_id"`
	PlanID      string    `json:"plan_id"`
	PlanTitle   string    `json:"plan_title"`
	Tier        string    `json:"tier"`
	Token       string    `json:"token"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}
