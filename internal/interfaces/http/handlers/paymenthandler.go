package handlers

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	paymentUsecases "github.com/planhaus/planhaus/internal/application/payment/usecases"
	"github.com/planhaus/planhaus/internal/shared/constants"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// PaymentHandler drives the hosted-checkout payment flow: initiation from a
// checkout intent, the browser callback after the customer pays, and the
// gateway's server-to-server webhook. Callback and webhook both settle
// through the same verification, so either can arrive first.
type PaymentHandler struct {
	initiatePaymentUC *paymentUsecases.InitiatePaymentUseCase
	confirmPaymentUC  *paymentUsecases.ConfirmPaymentUseCase
	webhookSecret     string
	storefrontURL     string
	logger            logger.Interface
}

func NewPaymentHandler(
	initiatePaymentUC *paymentUsecases.InitiatePaymentUseCase,
	confirmPaymentUC *paymentUsecases.ConfirmPaymentUseCase,
	webhookSecret string,
	storefrontURL string,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		initiatePaymentUC: initiatePaymentUC,
		confirmPaymentUC:  confirmPaymentUC,
		webhookSecret:     webhookSecret,
		storefrontURL:     storefrontURL,
		logger:            logger,
	}
}

type initiatePaymentRequest struct {
	IntentID string `json:"intent_id" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type initiatePaymentResponse struct {
	OrderID          string `json:"order_id"`
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
}

// webhookEvent is the gateway's event envelope. Only the reference is used;
// settlement state always comes from a fresh verify call, never from the
// webhook payload.
type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// InitiatePayment converts a checkout intent into a pending order and
// returns the gateway redirect URL.
// POST /api/v1/payments
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var req initiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	payerEmail := req.Email
	if payerEmail == "" {
		payerEmail = c.GetString(constants.ContextKeyUserEmail)
	}

	result, err := h.initiatePaymentUC.Execute(c.Request.Context(), paymentUsecases.InitiatePaymentCommand{
		IntentID:   req.IntentID,
		UserID:     c.GetUint(constants.ContextKeyUserID),
		PayerEmail: payerEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, initiatePaymentResponse{
		OrderID:          result.Order.SID(),
		Reference:        result.Reference,
		AuthorizationURL: result.AuthorizationURL,
		Amount:           result.Order.Amount().AmountMinor(),
		Currency:         result.Order.Amount().Currency(),
	}, "payment initiated")
}

// Callback handles the browser redirect back from the hosted checkout page.
// It verifies the transaction with the gateway and sends the customer to the
// storefront order page with the outcome.
// GET /api/v1/payments/callback?reference=...
func (h *PaymentHandler) Callback(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref")
	}
	if reference == "" {
		c.Redirect(http.StatusFound, h.storefrontRedirect("", "missing_reference"))
		return
	}

	result, err := h.confirmPaymentUC.Execute(c.Request.Context(), paymentUsecases.ConfirmPaymentCommand{
		Reference: reference,
	})
	if err != nil {
		h.logger.Errorw("payment callback confirmation failed", "error", err, "reference", reference)
		c.Redirect(http.StatusFound, h.storefrontRedirect("", "verification_failed"))
		return
	}

	c.Redirect(http.StatusFound, h.storefrontRedirect(result.Order.SID(), result.Order.Status().String()))
}

// Webhook handles the gateway's signed server-to-server notification. The
// signature is an HMAC-SHA512 of the raw body with the secret key. A webhook
// for an unknown reference is acknowledged with 200 so the gateway stops
// retrying; anything else would retry forever.
// POST /api/v1/payments/webhook
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	signature := c.GetHeader("X-Paystack-Signature")
	if !h.verifySignature(body, signature) {
		h.logger.Warnw("webhook signature mismatch", "client_ip", c.ClientIP())
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid signature")
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid event payload")
		return
	}

	if event.Data.Reference == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "event has no reference")
		return
	}

	if _, err := h.confirmPaymentUC.Execute(c.Request.Context(), paymentUsecases.ConfirmPaymentCommand{
		Reference: event.Data.Reference,
	}); err != nil {
		h.logger.Warnw("webhook confirmation did not settle",
			"error", err,
			"event", event.Event,
			"reference", event.Data.Reference,
		)
	}

	c.Status(http.StatusOK)
}

func (h *PaymentHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(h.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (h *PaymentHandler) storefrontRedirect(orderSID, status string) string {
	q := url.Values{}
	q.Set("status", status)
	if orderSID != "" {
		q.Set("order_id", orderSID)
	}
	return fmt.Sprintf("%s/checkout/result?%s", h.storefrontURL, q.Encode())
}
