// Package paymentgateway defines the contract with the hosted payment
// provider and its implementations.
package paymentgateway

import (
	"context"
	"time"
)

// PaymentGateway integrates with a hosted-checkout payment provider. The
// provider issues a reference and a redirect URL at initialization; the
// reference is the handle for all later verification.
type PaymentGateway interface {
	// Initialize registers a transaction with the provider and returns the
	// provider reference plus the URL the customer is redirected to.
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error)
	// Verify fetches the authoritative transaction state by provider
	// reference. The returned Amount is in the smallest currency unit.
	Verify(ctx context.Context, reference string) (*VerifyResponse, error)
}

// InitializeRequest contains the data needed to open a transaction.
type InitializeRequest struct {
	OrderSID    string
	Email       string
	Amount      int64 // smallest currency unit (kobo: 100 = 1 NGN)
	Currency    string
	CallbackURL string
	Metadata    map[string]string
}

type InitializeResponse struct {
	Reference        string
	AuthorizationURL string
	AccessCode       string
}

// TransactionStatus is the provider's view of a transaction.
type TransactionStatus string

const (
	TransactionSuccess   TransactionStatus = "success"
	TransactionFailed    TransactionStatus = "failed"
	TransactionAbandoned TransactionStatus = "abandoned"
	TransactionPending   TransactionStatus = "pending"
)

// VerifyResponse contains the verified transaction state. Amount must be in
// the smallest currency unit to match the order amount stored in the
// database.
type VerifyResponse struct {
	Reference string
	Status    TransactionStatus
	Amount    int64 // smallest currency unit
	Currency  string
	PaidAt    time.Time
	Channel   string
	GatewayResponse string
}
