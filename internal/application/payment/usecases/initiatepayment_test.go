package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/planhaus/planhaus/internal/application/payment/paymentgateway"
	"github.com/planhaus/planhaus/internal/domain/catalog"
	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/domain/checkout"
	"github.com/planhaus/planhaus/internal/domain/order"
	vo "github.com/planhaus/planhaus/internal/domain/order/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/errors"
)

func activePlan(t *testing.T) *catalog.Plan {
	t.Helper()
	plan, err := catalog.ReconstructPlan(catalog.ReconstructPlanParams{
		ID:            1,
		SID:           "plan_abc",
		Title:         "Lakeside Villa",
		Category:      "villa",
		Bedrooms:      4,
		Bathrooms:     3,
		FloorAreaSqm:  280,
		BasicPrice:    150000,
		StandardPrice: 320000,
		PremiumPrice:  550000,
		Currency:      "NGN",
		Status:        "active",
		Version:       1,
	})
	require.NoError(t, err)
	return plan
}

func standardIntent(t *testing.T, plan *catalog.Plan) *checkout.Intent {
	t.Helper()
	price, err := plan.PriceFor(catalogVO.TierStandard)
	require.NoError(t, err)
	intent, err := checkout.NewIntent(plan.ID(), plan.SID(), plan.Title(), catalogVO.TierStandard, int64(price), plan.Currency())
	require.NoError(t, err)
	return intent
}

func newInitiateUseCase(orderRepo *mockOrderRepo, planRepo *mockPlanRepo, store *mockIntentStore, gateway *mockGateway) *InitiatePaymentUseCase {
	return NewInitiatePaymentUseCase(orderRepo, planRepo, store, gateway, newNopLogger(), PaymentConfig{
		CallbackURL: "https://storefront.example.com/payments/callback",
		Currency:    "NGN",
	})
}

// ============================================================================
// Initiate Payment Tests
// ============================================================================

func TestInitiatePaymentUseCase_Execute_Success(t *testing.T) {
	plan := activePlan(t)
	intent := standardIntent(t, plan)

	orderRepo := new(mockOrderRepo)
	planRepo := new(mockPlanRepo)
	store := new(mockIntentStore)
	gateway := new(mockGateway)

	store.On("Get", mock.Anything, intent.ID).Return(intent, nil)
	planRepo.On("GetByID", mock.Anything, plan.ID()).Return(plan, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
		require.NoError(t, args.Get(1).(*order.Order).SetID(10))
	}).Return(nil)
	gateway.On("Initialize", mock.Anything, mock.MatchedBy(func(req paymentgateway.InitializeRequest) bool {
		return req.Amount == 320000 && req.Currency == "NGN" && req.Email == "jane@example.com"
	})).Return(&paymentgateway.InitializeResponse{
		Reference:        "REF123",
		AuthorizationURL: "https://checkout.example.com/REF123",
	}, nil)
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	store.On("Delete", mock.Anything, intent.ID).Return(nil)

	uc := newInitiateUseCase(orderRepo, planRepo, store, gateway)
	result, err := uc.Execute(context.Background(), InitiatePaymentCommand{
		IntentID:   intent.ID,
		UserID:     7,
		PayerEmail: "jane@example.com",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "REF123", result.Reference)
	assert.Equal(t, "https://checkout.example.com/REF123", result.AuthorizationURL)
	assert.Equal(t, vo.OrderStatusProcessing, result.Order.Status())
	require.NotNil(t, result.Order.ProviderReference())
	assert.Equal(t, "REF123", *result.Order.ProviderReference())
	assert.Equal(t, int64(320000), result.Order.Amount().AmountMinor())

	store.AssertCalled(t, "Delete", mock.Anything, intent.ID)
	orderRepo.AssertExpectations(t)
}

func TestInitiatePaymentUseCase_Execute_ExpiredIntent(t *testing.T) {
	orderRepo := new(mockOrderRepo)
	planRepo := new(mockPlanRepo)
	store := new(mockIntentStore)
	gateway := new(mockGateway)

	store.On("Get", mock.Anything, "ci_gone").Return(nil, nil)

	uc := newInitiateUseCase(orderRepo, planRepo, store, gateway)
	result, err := uc.Execute(context.Background(), InitiatePaymentCommand{
		IntentID:   "ci_gone",
		UserID:     7,
		PayerEmail: "jane@example.com",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInitiatePaymentUseCase_Execute_ChargesCurrentPlanPrice(t *testing.T) {
	plan := activePlan(t)
	intent := standardIntent(t, plan)
	// Intent captured before an admin price change.
	intent.Amount = 250000

	orderRepo := new(mockOrderRepo)
	planRepo := new(mockPlanRepo)
	store := new(mockIntentStore)
	gateway := new(mockGateway)

	store.On("Get", mock.Anything, intent.ID).Return(intent, nil)
	planRepo.On("GetByID", mock.Anything, plan.ID()).Return(plan, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
		require.NoError(t, args.Get(1).(*order.Order).SetID(11))
	}).Return(nil)
	gateway.On("Initialize", mock.Anything, mock.Anything).Return(&paymentgateway.InitializeResponse{
		Reference:        "REF777",
		AuthorizationURL: "https://checkout.example.com/REF777",
	}, nil)
	orderRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	store.On("Delete", mock.Anything, intent.ID).Return(nil)

	uc := newInitiateUseCase(orderRepo, planRepo, store, gateway)
	result, err := uc.Execute(context.Background(), InitiatePaymentCommand{
		IntentID:   intent.ID,
		UserID:     7,
		PayerEmail: "jane@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(320000), result.Order.Amount().AmountMinor())

	gateway.AssertCalled(t, "Initialize", mock.Anything, mock.MatchedBy(func(req paymentgateway.InitializeRequest) bool {
		return req.Amount == 320000
	}))
}

func TestInitiatePaymentUseCase_Execute_GatewayFailureKeepsIntent(t *testing.T) {
	plan := activePlan(t)
	intent := standardIntent(t, plan)

	orderRepo := new(mockOrderRepo)
	planRepo := new(mockPlanRepo)
	store := new(mockIntentStore)
	gateway := new(mockGateway)

	store.On("Get", mock.Anything, intent.ID).Return(intent, nil)
	planRepo.On("GetByID", mock.Anything, plan.ID()).Return(plan, nil)
	orderRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		require.NoError(t, args.Get(1).(*order.Order).SetID(12))
	}).Return(nil)
	gateway.On("Initialize", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("connection refused"))
	orderRepo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == vo.OrderStatusCancelled
	})).Return(nil)

	uc := newInitiateUseCase(orderRepo, planRepo, store, gateway)
	result, err := uc.Execute(context.Background(), InitiatePaymentCommand{
		IntentID:   intent.ID,
		UserID:     7,
		PayerEmail: "jane@example.com",
	})

	require.Error(t, err)
	assert.Nil(t, result)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypePaymentInit, appErr.Type)

	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestInitiatePaymentUseCase_Execute_ValidationErrors(t *testing.T) {
	plan := activePlan(t)

	inactive, err := catalog.ReconstructPlan(catalog.ReconstructPlanParams{
		ID:            2,
		SID:           "plan_off",
		Title:         "Retired Bungalow",
		Category:      "bungalow",
		BasicPrice:    100000,
		StandardPrice: 200000,
		PremiumPrice:  300000,
		Currency:      "NGN",
		Status:        "inactive",
		Version:       1,
	})
	require.NoError(t, err)

	inactiveIntent := standardIntent(t, plan)

	tests := []struct {
		name  string
		cmd   InitiatePaymentCommand
		setup func(store *mockIntentStore, planRepo *mockPlanRepo)
	}{
		{
			name: "anonymous caller",
			cmd:  InitiatePaymentCommand{IntentID: "ci_abc", PayerEmail: "jane@example.com"},
		},
		{
			name: "missing payer email",
			cmd:  InitiatePaymentCommand{IntentID: "ci_abc", UserID: 7},
		},
		{
			name: "plan deactivated after selection",
			cmd:  InitiatePaymentCommand{IntentID: inactiveIntent.ID, UserID: 7, PayerEmail: "jane@example.com"},
			setup: func(store *mockIntentStore, planRepo *mockPlanRepo) {
				inactiveIntent.PlanID = inactive.ID()
				store.On("Get", mock.Anything, inactiveIntent.ID).Return(inactiveIntent, nil)
				planRepo.On("GetByID", mock.Anything, inactive.ID()).Return(inactive, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := new(mockOrderRepo)
			planRepo := new(mockPlanRepo)
			store := new(mockIntentStore)
			gateway := new(mockGateway)
			if tt.setup != nil {
				tt.setup(store, planRepo)
			}

			uc := newInitiateUseCase(orderRepo, planRepo, store, gateway)
			result, err := uc.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.Nil(t, result)
			orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestInitiatePaymentUseCase_Execute_CurrencyFallback(t *testing.T) {
	orderRepo := new(mockOrderRepo)
	planRepo := new(mockPlanRepo)
	store := new(mockIntentStore)
	gateway := new(mockGateway)

	// Legacy rows can carry an empty currency; the order falls back to the
	// configured storefront currency.
	plan, err := catalog.ReconstructPlan(catalog.ReconstructPlanParams{
		ID:            2,
		SID:           "plan_legacy",
		Title:         "Courtyard Duplex",
		Category:      "duplex",
		Bedrooms:      3,
		Bathrooms:     2,
		FloorAreaSqm:  190,
		BasicPrice:    90000,
		StandardPrice: 180000,
		PremiumPrice:  310000,
		Status:        "active",
		Version:       1,
	})
	require.NoError(t, err)
	intent, err := checkout.NewIntent(plan.ID(), plan.SID(), plan.Title(), catalogVO.TierStandard, 180000, plan.Currency())
	require.NoError(t, err)

	store.On("Get", mock.Anything, intent.ID).Return(intent, nil)
	planRepo.On("GetByID", mock.Anything, plan.ID()).Return(plan, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
		require.NoError(t, args.Get(1).(*order.Order).SetID(13))
	}).Return(nil)
	gateway.On("Initialize", mock.Anything, mock.MatchedBy(func(req paymentgateway.InitializeRequest) bool {
		return req.Amount == 180000 && req.Currency == "NGN"
	})).Return(&paymentgateway.InitializeResponse{
		Reference:        "REF456",
		AuthorizationURL: "https://checkout.example.com/REF456",
	}, nil)
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	store.On("Delete", mock.Anything, intent.ID).Return(nil)

	uc := newInitiateUseCase(orderRepo, planRepo, store, gateway)
	result, err := uc.Execute(context.Background(), InitiatePaymentCommand{
		IntentID:   intent.ID,
		UserID:     7,
		PayerEmail: "jane@example.com",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "NGN", result.Order.Amount().Currency())
	gateway.AssertExpectations(t)
}
