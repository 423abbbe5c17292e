package valueobjects

// OrderStatus tracks an order through payment and fulfillment.
// Transitions are monotonic forward: pending → processing → completed,
// with failed/cancelled as terminal exits. Nothing leaves completed.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted,
		OrderStatusFailed, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

func (s OrderStatus) IsCompleted() bool {
	return s == OrderStatusCompleted
}

func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusCompleted || s == OrderStatusFailed || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the forward transition to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCompleted ||
			next == OrderStatusFailed || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusCompleted || next == OrderStatusFailed ||
			next == OrderStatusCancelled
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	return string(s)
}
