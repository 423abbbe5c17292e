package usecases

import (
	"context"
	"fmt"

	"github.com/planhaus/planhaus/internal/application/payment/paymentgateway"
	"github.com/planhaus/planhaus/internal/domain/catalog"
	"github.com/planhaus/planhaus/internal/domain/checkout"
	"github.com/planhaus/planhaus/internal/domain/order"
	vo "github.com/planhaus/planhaus/internal/domain/order/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type InitiatePaymentCommand struct {
	IntentID   string
	UserID     uint
	PayerEmail string
}

type InitiatePaymentResult struct {
	Order            *order.Order
	AuthorizationURL string
	Reference        string
}

// PaymentConfig carries the gateway-facing settings shared by the payment
// use cases.
type PaymentConfig struct {
	CallbackURL string
	Currency    string
}

// InitiatePaymentUseCase turns a checkout intent into a pending order and
// opens a gateway transaction for it. The charge amount is re-derived from
// the plan at execution time; the intent's captured amount is display state
// only. The intent is consumed on success and kept on gateway failure so the
// customer can retry without reselecting.
type InitiatePaymentUseCase struct {
	orderRepo   order.OrderRepository
	planRepo    catalog.PlanRepository
	intentStore checkout.IntentStore
	gateway     paymentgateway.PaymentGateway
	logger      logger.Interface
	config      PaymentConfig
}

func NewInitiatePaymentUseCase(
	orderRepo order.OrderRepository,
	planRepo catalog.PlanRepository,
	intentStore checkout.IntentStore,
	gateway paymentgateway.PaymentGateway,
	logger logger.Interface,
	config PaymentConfig,
) *InitiatePaymentUseCase {
	return &InitiatePaymentUseCase{
		orderRepo:   orderRepo,
		planRepo:    planRepo,
		intentStore: intentStore,
		gateway:     gateway,
		logger:      logger,
		config:      config,
	}
}

func (uc *InitiatePaymentUseCase) Execute(ctx context.Context, cmd InitiatePaymentCommand) (*InitiatePaymentResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	if cmd.PayerEmail == "" {
		return nil, errors.NewValidationError("payer email is required")
	}

	intent, err := uc.intentStore.Get(ctx, cmd.IntentID)
	if err != nil {
		uc.logger.Errorw("failed to get checkout intent", "error", err, "intent_id", cmd.IntentID)
		return nil, errors.NewInternalError("failed to get checkout intent")
	}
	if intent == nil {
		return nil, errors.NewNotFoundError("checkout intent expired or not found")
	}

	plan, err := uc.planRepo.GetByID(ctx, intent.PlanID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", intent.PlanID)
		return nil, errors.NewInternalError("failed to get plan")
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan no longer exists")
	}
	if !plan.IsPurchasable() {
		return nil, errors.NewValidationError("plan is no longer available for purchase")
	}

	// The plan is the authoritative price source. A stale intent never
	// charges an outdated amount.
	price, err := plan.PriceFor(intent.Tier)
	if err != nil {
		return nil, errors.NewValidationError("invalid tier", err.Error())
	}
	currency := plan.Currency()
	if currency == "" {
		currency = uc.config.Currency
	}
	amount := vo.NewMoney(int64(price), currency)

	ord, err := order.NewOrder(cmd.UserID, plan.ID(), intent.Tier, amount, cmd.PayerEmail)
	if err != nil {
		return nil, errors.NewValidationError("failed to create order", err.Error())
	}

	if err := uc.orderRepo.Create(ctx, ord); err != nil {
		uc.logger.Errorw("failed to persist order", "error", err, "plan_id", plan.ID(), "user_id", cmd.UserID)
		return nil, errors.NewInternalError("failed to create order")
	}

	gatewayResp, err := uc.gateway.Initialize(ctx, paymentgateway.InitializeRequest{
		OrderSID:    ord.SID(),
		Email:       cmd.PayerEmail,
		Amount:      amount.AmountMinor(),
		Currency:    amount.Currency(),
		CallbackURL: uc.config.CallbackURL,
		Metadata: map[string]string{
			"order_sid": ord.SID(),
			"plan_sid":  plan.SID(),
			"tier":      intent.Tier.String(),
		},
	})
	if err != nil {
		uc.logger.Errorw("gateway initialization failed", "error", err, "order_sid", ord.SID())
		// Keep the intent so the customer can retry without reselecting.
		if cancelErr := ord.Cancel(); cancelErr == nil {
			if updateErr := uc.orderRepo.Update(ctx, ord); updateErr != nil {
				uc.logger.Errorw("failed to cancel order after gateway failure", "error", updateErr, "order_sid", ord.SID())
			}
		}
		return nil, errors.NewPaymentInitError("payment provider is unavailable, please try again")
	}

	if err := ord.MarkProcessing(gatewayResp.Reference); err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to mark order processing: %v", err))
	}
	if err := uc.orderRepo.Update(ctx, ord); err != nil {
		uc.logger.Errorw("failed to update order with reference", "error", err, "order_sid", ord.SID(), "reference", gatewayResp.Reference)
		return nil, errors.NewInternalError("failed to update order")
	}

	// The intent is single-use; consume it now that the transaction is open.
	if err := uc.intentStore.Delete(ctx, intent.ID); err != nil {
		uc.logger.Warnw("failed to delete consumed checkout intent", "error", err, "intent_id", intent.ID)
	}

	uc.logger.Infow("payment initiated",
		"order_sid", ord.SID(),
		"reference", gatewayResp.Reference,
		"amount", amount.AmountMinor(),
		"currency", amount.Currency(),
	)

	return &InitiatePaymentResult{
		Order:            ord,
		AuthorizationURL: gatewayResp.AuthorizationURL,
		Reference:        gatewayResp.Reference,
	}, nil
}
