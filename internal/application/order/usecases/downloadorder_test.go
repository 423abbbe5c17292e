package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	"github.com/planhaus/planhaus/internal/domain/order"
	vo "github.com/planhaus/planhaus/internal/domain/order/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/authorization"
	"github.com/planhaus/planhaus/internal/shared/errors"
)

func reconstructOrder(t *testing.T, status string) *order.Order {
	t.Helper()
	ref := "REF123"
	paidAt := time.Date(2026, 8, 12, 9, 30, 0, 0, time.UTC)
	params := order.ReconstructOrderParams{
		ID:                10,
		SID:               "ord_abc",
		UserID:            7,
		PlanID:            1,
		Tier:              "standard",
		Amount:            vo.NewMoney(320000, "NGN"),
		Status:            status,
		ProviderReference: &ref,
		PayerEmail:        "jane@example.com",
		Version:           3,
	}
	if status == "completed" {
		params.PaidAt = &paidAt
	}
	ord, err := order.ReconstructOrder(params)
	require.NoError(t, err)
	return ord
}

func reconstructPlan(t *testing.T) *catalog.Plan {
	t.Helper()
	plan, err := catalog.ReconstructPlan(catalog.ReconstructPlanParams{
		ID:            1,
		SID:           "plan_abc",
		Title:         "Lakeside Villa",
		Category:      "villa",
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

// ============================================================================
// Download Order Tests
// ============================================================================

func TestDownloadOrderUseCase_Execute_BuyerGetsToken(t *testing.T) {
	ord := reconstructOrder(t, "completed")
	plan := reconstructPlan(t)
	linkTTL := 10 * time.Minute

	orderRepo := new(mockOrderRepo)
	planRepo := new(mockPlanRepo)
	signer := new(mockDownloadSigner)

	orderRepo.On("GetBySID", mock.Anything, "ord_abc").Return(ord, nil)
	planRepo.On("GetByID", mock.Anything, uint(1)).Return(plan, nil)
	signer.On("SignDownload", "ord_abc", "plan_abc", "standard", linkTTL).Return("signed-token", nil)

	uc := NewDownloadOrderUseCase(orderRepo, planRepo, signer, linkTTL, newNopLogger())
	result, err := uc.Execute(context.Background(), DownloadOrderCommand{
		OrderSID:      "ord_abc",
		RequesterID:   7,
		RequesterRole: authorization.RoleUser,
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, plan, result.Plan)
	signer.AssertExpectations(t)
}

func TestDownloadOrderUseCase_Execute_AccessMatrix(t *testing.T) {
	tests := []struct {
		name          string
		orderStatus   string
		requesterID   uint
		requesterRole authorization.UserRole
		wantErr       bool
		wantNotFound  bool
		wantForbidden bool
	}{
		{
			name:          "stranger cannot see the order",
			orderStatus:   "completed",
			requesterID:   99,
			requesterRole: authorization.RoleUser,
			wantErr:       true,
			wantNotFound:  true,
		},
		{
			name:          "buyer blocked until payment completes",
			orderStatus:   "processing",
			requesterID:   7,
			requesterRole: authorization.RoleUser,
			wantErr:       true,
			wantForbidden: true,
		},
		{
			name:          "failed order never downloads",
			orderStatus:   "failed",
			requesterID:   7,
			requesterRole: authorization.RoleUser,
			wantErr:       true,
			wantForbidden: true,
		},
		{
			name:          "admin downloads any completed order",
			orderStatus:   "completed",
			requesterID:   99,
			requesterRole: authorization.RoleAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ord := reconstructOrder(t, tt.orderStatus)
			plan := reconstructPlan(t)
			linkTTL := 10 * time.Minute

			orderRepo := new(mockOrderRepo)
			planRepo := new(mockPlanRepo)
			signer := new(mockDownloadSigner)

			orderRepo.On("GetBySID", mock.Anything, "ord_abc").Return(ord, nil)
			planRepo.On("GetByID", mock.Anything, uint(1)).Return(plan, nil)
			signer.On("SignDownload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("signed-token", nil)

			uc := NewDownloadOrderUseCase(orderRepo, planRepo, signer, linkTTL, newNopLogger())
			result, err := uc.Execute(context.Background(), DownloadOrderCommand{
				OrderSID:      "ord_abc",
				RequesterID:   tt.requesterID,
				RequesterRole: tt.requesterRole,
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, result)
				if tt.wantNotFound {
					assert.True(t, errors.IsNotFoundError(err))
				}
				if tt.wantForbidden {
					appErr, ok := err.(*errors.AppError)
					require.True(t, ok)
					assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
				}
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.Token)
		})
	}
}

func TestDownloadOrderUseCase_Execute_DeletedPlan(t *testing.T) {
	ord := reconstructOrder(t, "completed")

	orderRepo := new(mockOrderRepo)
	planRepo := new(mockPlanRepo)
	signer := new(mockDownloadSigner)

	orderRepo.On("GetBySID", mock.Anything, "ord_abc").Return(ord, nil)
	planRepo.On("GetByID", mock.Anything, uint(1)).Return(nil, nil)

	uc := NewDownloadOrderUseCase(orderRepo, planRepo, signer, 10*time.Minute, newNopLogger())
	result, err := uc.Execute(context.Background(), DownloadOrderCommand{
		OrderSID:      "ord_abc",
		RequesterID:   7,
		RequesterRole: authorization.RoleUser,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
}

// ============================================================================
// Get Order Tests
// ============================================================================

func TestGetOrderUseCase_Execute_Ownership(t *testing.T) {
	ord := reconstructOrder(t, "processing")

	tests := []struct {
		name          string
		requesterID   uint
		requesterRole authorization.UserRole
		wantErr       bool
	}{
		{name: "owner sees own order", requesterID: 7, requesterRole: authorization.RoleUser},
		{name: "stranger gets not found", requesterID: 8, requesterRole: authorization.RoleUser, wantErr: true},
		{name: "admin sees any order", requesterID: 8, requesterRole: authorization.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := new(mockOrderRepo)
			orderRepo.On("GetBySID", mock.Anything, "ord_abc").Return(ord, nil)

			uc := NewGetOrderUseCase(orderRepo, newNopLogger())
			result, err := uc.Execute(context.Background(), GetOrderCommand{
				OrderSID:      "ord_abc",
				RequesterID:   tt.requesterID,
				RequesterRole: tt.requesterRole,
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsNotFoundError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ord, result.Order)
		})
	}
}

func TestListOrdersUseCase_Execute(t *testing.T) {
	ord := reconstructOrder(t, "completed")

	orderRepo := new(mockOrderRepo)
	orderRepo.On("ListByUserID", mock.Anything, uint(7), 0, 20).Return([]*order.Order{ord}, int64(1), nil)

	uc := NewListOrdersUseCase(orderRepo, newNopLogger())
	result, err := uc.Execute(context.Background(), ListOrdersCommand{UserID: 7})

	require.NoError(t, err)
	assert.Len(t, result.Orders, 1)
	assert.Equal(t, int64(1), result.Total)

	_, err = uc.Execute(context.Background(), ListOrdersCommand{})
	require.Error(t, err)
}
