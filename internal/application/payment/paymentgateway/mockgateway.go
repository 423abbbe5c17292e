package paymentgateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/planhaus/planhaus/internal/shared/biztime"
)

// MockGateway is an in-memory gateway for tests and local development. It
// records every initialized transaction and reports the configured status on
// verification.
type MockGateway struct {
	mu           sync.Mutex
	verifyStatus TransactionStatus
	transactions map[string]InitializeRequest
	seq          int
}

func NewMockGateway(verifyStatus TransactionStatus) *MockGateway {
	return &MockGateway{
		verifyStatus: verifyStatus,
		transactions: map[string]InitializeRequest{},
	}
}

var _ PaymentGateway = (*MockGateway)(nil)

func (m *MockGateway) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	reference := fmt.Sprintf("MOCK_%s_%d", req.OrderSID, m.seq)
	m.transactions[reference] = req

	return &InitializeResponse{
		Reference:        reference,
		AuthorizationURL: fmt.Sprintf("https://mock-checkout.example.com/pay/%s", reference),
		AccessCode:       fmt.Sprintf("ac_%d", m.seq),
	}, nil
}

func (m *MockGateway) Verify(ctx context.Context, reference string) (*VerifyResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	req, ok := m.transactions[reference]
	if !ok {
		return nil, fmt.Errorf("transaction not found: %s", reference)
	}

	return &VerifyResponse{
		Reference:       reference,
		Status:          m.verifyStatus,
		Amount:          req.Amount,
		Currency:        req.Currency,
		PaidAt:          biztime.NowUTC(),
		Channel:         "card",
		GatewayResponse: "mock",
	}, nil
}

// SetVerifyStatus changes the status reported by Verify.
func (m *MockGateway) SetVerifyStatus(status TransactionStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifyStatus = status
}
