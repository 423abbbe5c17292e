package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/domain/checkout"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

// nopLogger is a no-op logger for testing.
type nopLogger struct{}

func newNopLogger() logger.Interface { return &nopLogger{} }

func (l *nopLogger) Debug(msg string, args ...any)                   {}
func (l *nopLogger) Info(msg string, args ...any)                    {}
func (l *nopLogger) Warn(msg string, args ...any)                    {}
func (l *nopLogger) Error(msg string, args ...any)                   {}
func (l *nopLogger) With(args ...any) logger.Interface               { return l }
func (l *nopLogger) Named(name string) logger.Interface              { return l }
func (l *nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (l *nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}

type mockPlanRepo struct {
	mock.Mock
}

func (m *mockPlanRepo) Create(ctx context.Context, p *catalog.Plan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPlanRepo) GetByID(ctx context.Context, planID uint) (*catalog.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Plan), args.Error(1)
}

func (m *mockPlanRepo) GetBySID(ctx context.Context, sid string) (*catalog.Plan, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Plan), args.Error(1)
}

func (m *mockPlanRepo) Update(ctx context.Context, p *catalog.Plan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPlanRepo) Delete(ctx context.Context, planID uint) error {
	args := m.Called(ctx, planID)
	return args.Error(0)
}

func (m *mockPlanRepo) List(ctx context.Context, filters catalog.ListFilters, sort catalog.SortKey, offset, limit int) ([]*catalog.Plan, int64, error) {
	args := m.Called(ctx, filters, sort, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*catalog.Plan), args.Get(1).(int64), args.Error(2)
}

type mockIntentStore struct {
	mock.Mock
}

func (m *mockIntentStore) Save(ctx context.Context, intent *checkout.Intent, ttl time.Duration) error {
	args := m.Called(ctx, intent, ttl)
	return args.Error(0)
}

func (m *mockIntentStore) Get(ctx context.Context, intentID string) (*checkout.Intent, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Intent), args.Error(1)
}

func (m *mockIntentStore) Delete(ctx context.Context, intentID string) error {
	args := m.Called(ctx, intentID)
	return args.Error(0)
}

func testPlan(t *testing.T, status string) *catalog.Plan {
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
		Status:        status,
		Version:       1,
	})
	require.NoError(t, err)
	return plan
}

// ============================================================================
// Begin Checkout Tests
// ============================================================================

func TestBeginCheckoutUseCase_Execute_Success(t *testing.T) {
	plan := testPlan(t, "active")
	ttl := 30 * time.Minute

	planRepo := new(mockPlanRepo)
	store := new(mockIntentStore)
	planRepo.On("GetBySID", mock.Anything, "plan_abc").Return(plan, nil)
	store.On("Save", mock.Anything, mock.AnythingOfType("*checkout.Intent"), ttl).Return(nil)

	uc := NewBeginCheckoutUseCase(planRepo, store, ttl, newNopLogger())
	result, err := uc.Execute(context.Background(), BeginCheckoutCommand{
		PlanSID: "plan_abc",
		Tier:    "standard",
	})

	require.NoError(t, err)
	intent := result.Intent
	assert.Equal(t, plan.ID(), intent.PlanID)
	assert.Equal(t, "plan_abc", intent.PlanSID)
	assert.Equal(t, catalogVO.TierStandard, intent.Tier)
	assert.Equal(t, int64(320000), intent.Amount)
	assert.Equal(t, "NGN", intent.Currency)
	assert.Equal(t, intent.CreatedAt.Add(ttl), result.ExpiresAt)
	store.AssertExpectations(t)
}

func TestBeginCheckoutUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name       string
		cmd        BeginCheckoutCommand
		setup      func(planRepo *mockPlanRepo)
		isNotFound bool
	}{
		{
			name: "invalid tier",
			cmd:  BeginCheckoutCommand{PlanSID: "plan_abc", Tier: "platinum"},
		},
		{
			name:       "plan not found",
			cmd:        BeginCheckoutCommand{PlanSID: "plan_gone", Tier: "basic"},
			setup:      func(planRepo *mockPlanRepo) { planRepo.On("GetBySID", mock.Anything, "plan_gone").Return(nil, nil) },
			isNotFound: true,
		},
		{
			name: "draft plan not purchasable",
			cmd:  BeginCheckoutCommand{PlanSID: "plan_abc", Tier: "basic"},
			setup: func(planRepo *mockPlanRepo) {
				planRepo.On("GetBySID", mock.Anything, "plan_abc").Return(testPlan(t, "draft"), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planRepo := new(mockPlanRepo)
			store := new(mockIntentStore)
			if tt.setup != nil {
				tt.setup(planRepo)
			}

			uc := NewBeginCheckoutUseCase(planRepo, store, 30*time.Minute, newNopLogger())
			result, err := uc.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.Nil(t, result)
			if tt.isNotFound {
				assert.True(t, errors.IsNotFoundError(err))
			}
			store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
