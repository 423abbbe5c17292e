package order

import (
	"context"
	"time"

	vo "github.com/planhaus/planhaus/internal/domain/order/valueobjects"
)

// ListFilters narrows admin order listings. Zero values mean "no filter".
type ListFilters struct {
	UserID uint
	PlanID uint
	Status string
}

// StatusTotals aggregates order counts and amounts per status.
type StatusTotals struct {
	Status      vo.OrderStatus
	Count       int64
	AmountMinor int64
}

// OrderRepository persists purchase records. Orders are never deleted;
// status changes are the only mutation path.
// GetByID, GetBySID and GetByProviderReference return (nil, nil) when no
// order exists.
type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID uint) (*Order, error)
	GetBySID(ctx context.Context, sid string) (*Order, error)
	GetByProviderReference(ctx context.Context, reference string) (*Order, error)
	Update(ctx context.Context, o *Order) error
	ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]*Order, int64, error)
	List(ctx context.Context, filters ListFilters, offset, limit int) ([]*Order, int64, error)

	// ListStaleProcessing returns processing orders last updated before the
	// cutoff, for payment reconciliation.
	ListStaleProcessing(ctx context.Context, cutoff time.Time, limit int) ([]*Order, error)

	// TotalsByStatus aggregates counts and amounts between from and to.
	TotalsByStatus(ctx context.Context, from, to time.Time) ([]StatusTotals, error)
}
