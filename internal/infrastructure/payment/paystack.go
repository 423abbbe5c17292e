// Package payment provides the hosted-checkout gateway client.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/planhaus/planhaus/internal/application/payment/paymentgateway"
	"github.com/planhaus/planhaus/internal/shared/config"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

const (
	requestTimeout = 15 * time.Second
	// Maximum response body size for gateway API responses (256KB)
	maxResponseSize = 256 << 10
)

// PaystackGateway implements the payment gateway against the Paystack REST
// API. All amounts cross the wire in the smallest currency unit, matching
// Paystack's kobo convention.
type PaystackGateway struct {
	httpClient *http.Client
	secretKey  string
	baseURL    string
	logger     logger.Interface
}

func NewPaystackGateway(cfg *config.PaymentConfig, logger logger.Interface) *PaystackGateway {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &PaystackGateway{
		httpClient: &http.Client{Timeout: requestTimeout},
		secretKey:  cfg.SecretKey,
		baseURL:    baseURL,
		logger:     logger,
	}
}

var _ paymentgateway.PaymentGateway = (*PaystackGateway)(nil)

type initializePayload struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Reference       string `json:"reference"`
	Status          string `json:"status"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	PaidAt          string `json:"paid_at"`
	Channel         string `json:"channel"`
	GatewayResponse string `json:"gateway_response"`
}

func (g *PaystackGateway) Initialize(ctx context.Context, req paymentgateway.InitializeRequest) (*paymentgateway.InitializeResponse, error) {
	payload := initializePayload{
		Email:       req.Email,
		Amount:      req.Amount,
		Currency:    req.Currency,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	}

	var data initializeData
	if err := g.post(ctx, "/transaction/initialize", payload, &data); err != nil {
		return nil, fmt.Errorf("failed to initialize transaction: %w", err)
	}

	g.logger.Infow("initialized gateway transaction",
		"order_sid", req.OrderSID,
		"reference", data.Reference,
		"amount", req.Amount,
		"currency", req.Currency,
	)

	return &paymentgateway.InitializeResponse{
		Reference:        data.Reference,
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
	}, nil
}

func (g *PaystackGateway) Verify(ctx context.Context, reference string) (*paymentgateway.VerifyResponse, error) {
	if reference == "" {
		return nil, fmt.Errorf("reference is required")
	}

	var data verifyData
	if err := g.get(ctx, "/transaction/verify/"+reference, &data); err != nil {
		return nil, fmt.Errorf("failed to verify transaction: %w", err)
	}

	paidAt := time.Time{}
	if data.PaidAt != "" {
		if t, err := time.Parse(time.RFC3339, data.PaidAt); err == nil {
			paidAt = t
		} else {
			g.logger.Warnw("unparseable paid_at in verify response", "reference", reference, "paid_at", data.PaidAt)
		}
	}

	return &paymentgateway.VerifyResponse{
		Reference:       data.Reference,
		Status:          mapTransactionStatus(data.Status),
		Amount:          data.Amount,
		Currency:        data.Currency,
		PaidAt:          paidAt,
		Channel:         data.Channel,
		GatewayResponse: data.GatewayResponse,
	}, nil
}

func mapTransactionStatus(s string) paymentgateway.TransactionStatus {
	switch s {
	case "success":
		return paymentgateway.TransactionSuccess
	case "failed", "reversed":
		return paymentgateway.TransactionFailed
	case "abandoned":
		return paymentgateway.TransactionAbandoned
	default:
		return paymentgateway.TransactionPending
	}
}

func (g *PaystackGateway) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return g.do(req, out)
}

func (g *PaystackGateway) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return g.do(req, out)
}

func (g *PaystackGateway) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope paystackEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("unexpected response (HTTP %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.Status {
		return fmt.Errorf("gateway error (HTTP %d): %s", resp.StatusCode, envelope.Message)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
