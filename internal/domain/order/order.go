package order

import (
	"fmt"
	"time"

	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	vo "github.com/planhaus/planhaus/internal/domain/order/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/authorization"
	"github.com/planhaus/planhaus/internal/shared/biztime"
	"github.com/planhaus/planhaus/internal/shared/id"
)

// Order is the durable purchase record. The amount always equals the plan's
// price for the recorded tier at initiation time, re-derived server-side.
type Order struct {
	orderID uint
	sid     string
	userID  uint
	planID  uint
	tier    catalogVO.Tier
	amount  vo.Money
	status  vo.OrderStatus

	// providerReference is the gateway transaction identifier. It is unique
	// per order; the database enforces this, which closes the double-confirm
	// race at the persistence layer.
	providerReference *string
	payerEmail        string
	failureReason     *string
	paidAt            *time.Time

	metadata map[string]interface{}

	version   int
	createdAt time.Time
	updatedAt time.Time
}

func NewOrder(userID, planID uint, tier catalogVO.Tier, amount vo.Money, payerEmail string) (*Order, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !tier.IsValid() {
		return nil, fmt.Errorf("invalid tier: %s", tier)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if payerEmail == "" {
		return nil, fmt.Errorf("payer email is required")
	}

	now := biztime.NowUTC()
	return &Order{
		sid:        id.NewOrderSID(),
		userID:     userID,
		planID:     planID,
		tier:       tier,
		amount:     amount,
		status:     vo.OrderStatusPending,
		payerEmail: payerEmail,
		metadata:   make(map[string]interface{}),
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructOrderParams carries persisted state for rebuilding an order.
type ReconstructOrderParams struct {
	ID                uint
	SID               string
	UserID            uint
	PlanID            uint
	Tier              string
	Amount            vo.Money
	Status            string
	ProviderReference *string
	PayerEmail        string
	FailureReason     *string
	PaidAt            *time.Time
	Metadata          map[string]interface{}
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func ReconstructOrder(p ReconstructOrderParams) (*Order, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("order ID cannot be zero")
	}

	status := vo.OrderStatus(p.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid order status: %s", p.Status)
	}
	tier := catalogVO.Tier(p.Tier)
	if !tier.IsValid() {
		return nil, fmt.Errorf("invalid tier: %s", p.Tier)
	}

	if p.Metadata == nil {
		p.Metadata = make(map[string]interface{})
	}

	return &Order{
		orderID:           p.ID,
		sid:               p.SID,
		userID:            p.UserID,
		planID:            p.PlanID,
		tier:              tier,
		amount:            p.Amount,
		status:            status,
		providerReference: p.ProviderReference,
		payerEmail:        p.PayerEmail,
		failureReason:     p.FailureReason,
		paidAt:            p.PaidAt,
		metadata:          p.Metadata,
		version:           p.Version,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}, nil
}

func (o *Order) ID() uint                          { return o.orderID }
func (o *Order) SID() string                       { return o.sid }
func (o *Order) UserID() uint                      { return o.userID }
func (o *Order) PlanID() uint                      { return o.planID }
func (o *Order) Tier() catalogVO.Tier              { return o.tier }
func (o *Order) Amount() vo.Money                  { return o.amount }
func (o *Order) Status() vo.OrderStatus            { return o.status }
func (o *Order) ProviderReference() *string        { return o.providerReference }
func (o *Order) PayerEmail() string                { return o.payerEmail }
func (o *Order) FailureReason() *string            { return o.failureReason }
func (o *Order) PaidAt() *time.Time                { return o.paidAt }
func (o *Order) Metadata() map[string]interface{}  { return o.metadata }
func (o *Order) Version() int                      { return o.version }
func (o *Order) CreatedAt() time.Time              { return o.createdAt }
func (o *Order) UpdatedAt() time.Time              { return o.updatedAt }

// GetOwnerID implements authorization.OwnedResource.
func (o *Order) GetOwnerID() uint { return o.userID }

// SetID assigns the database identity after insert.
func (o *Order) SetID(orderID uint) error {
	if o.orderID != 0 {
		return fmt.Errorf("order ID already set")
	}
	if orderID == 0 {
		return fmt.Errorf("order ID cannot be zero")
	}
	o.orderID = orderID
	return nil
}

// MarkProcessing records the gateway reference after a successful initialize
// call and moves the order into the processing state.
func (o *Order) MarkProcessing(providerReference string) error {
	if providerReference == "" {
		return fmt.Errorf("provider reference is required")
	}
	if !o.status.CanTransitionTo(vo.OrderStatusProcessing) {
		return fmt.Errorf("cannot mark order as processing with status %s", o.status)
	}

	o.status = vo.OrderStatusProcessing
	o.providerReference = &providerReference
	o.touch()
	return nil
}

// Complete marks the order as paid after the provider verified the
// transaction. Completing an already completed order is a no-op so duplicate
// confirmations of the same reference do not double-grant entitlement.
func (o *Order) Complete(paidAt time.Time) error {
	if o.status == vo.OrderStatusCompleted {
		return nil
	}

	if !o.status.CanTransitionTo(vo.OrderStatusCompleted) {
		return fmt.Errorf("cannot complete order with status %s", o.status)
	}

	o.status = vo.OrderStatusCompleted
	paidAtUTC := paidAt.UTC()
	o.paidAt = &paidAtUTC
	o.touch()
	return nil
}

// MarkFailed records a terminal payment failure.
func (o *Order) MarkFailed(reason string) error {
	if o.status == vo.OrderStatusFailed {
		return nil
	}

	if !o.status.CanTransitionTo(vo.OrderStatusFailed) {
		return fmt.Errorf("cannot mark order as failed with status %s", o.status)
	}

	o.status = vo.OrderStatusFailed
	o.failureReason = &reason
	o.touch()
	return nil
}

// Cancel abandons an unpaid order.
func (o *Order) Cancel() error {
	if !o.status.CanTransitionTo(vo.OrderStatusCancelled) {
		return fmt.Errorf("cannot cancel order with status %s", o.status)
	}

	o.status = vo.OrderStatusCancelled
	o.touch()
	return nil
}

// CanDownload reports whether the requester may access the order's asset
// bundle: the order must be completed and owned by the requester, unless the
// requester is an admin.
func (o *Order) CanDownload(requesterID uint, role authorization.UserRole) bool {
	if !o.status.IsCompleted() {
		return false
	}
	return authorization.CanAccessResourceByOwnerID(requesterID, role, o.userID)
}

func (o *Order) touch() {
	o.updatedAt = biztime.NowUTC()
	o.version++
}
