package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	"github.com/planhaus/planhaus/internal/domain/order"
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

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, orderID uint) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepo) GetBySID(ctx context.Context, sid string) (*order.Order, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepo) GetByProviderReference(ctx context.Context, reference string) (*order.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepo) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepo) ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]*order.Order, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderRepo) List(ctx context.Context, filters order.ListFilters, offset, limit int) ([]*order.Order, int64, error) {
	args := m.Called(ctx, filters, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderRepo) ListStaleProcessing(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *mockOrderRepo) TotalsByStatus(ctx context.Context, from, to time.Time) ([]order.StatusTotals, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusTotals), args.Error(1)
}
