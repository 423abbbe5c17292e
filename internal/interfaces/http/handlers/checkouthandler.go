package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	checkoutUsecases "github.com/planhaus/planhaus/internal/application/checkout/usecases"
	"github.com/planhaus/planhaus/internal/domain/checkout"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// CheckoutHandler starts the purchase flow. The created intent is anonymous;
// the customer signs in (or registers) before payment without losing it.
type CheckoutHandler struct {
	beginCheckoutUC *checkoutUsecases.BeginCheckoutUseCase
	logger          logger.Interface
}

func NewCheckoutHandler(beginCheckoutUC *checkoutUsecases.BeginCheckoutUseCase, logger logger.Interface) *CheckoutHandler {
	return &CheckoutHandler{
		beginCheckoutUC: beginCheckoutUC,
		logger:          logger,
	}
}

type beginCheckoutRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
	Tier   string `json:"tier" binding:"required,plantier"`
}

type checkoutIntentResponse struct {
	IntentID  string    `json:"intent_id"`
	PlanID    string    `json:"plan_id"`
	PlanTitle string    `json:"plan_title"`
	Tier      string    `json:"tier"`
	TierLabel string    `json:"tier_label"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toCheckoutIntentResponse(intent *checkout.Intent, expiresAt time.Time) checkoutIntentResponse {
	return checkoutIntentResponse{
		IntentID:  intent.ID,
		PlanID:    intent.PlanSID,
		PlanTitle: intent.PlanTitle,
		Tier:      intent.Tier.String(),
		TierLabel: intent.TierLabel,
		Amount:    intent.Amount,
		Currency:  intent.Currency,
		ExpiresAt: expiresAt,
	}
}

// BeginCheckout captures a plan and tier selection as a single-use intent.
// POST /api/v1/checkout
func (h *CheckoutHandler) BeginCheckout(c *gin.Context) {
	var req beginCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.beginCheckoutUC.Execute(c.Request.Context(), checkoutUsecases.BeginCheckoutCommand{
		PlanSID: req.PlanID,
		Tier:    req.Tier,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toCheckoutIntentResponse(result.Intent, result.ExpiresAt), "checkout started")
}
