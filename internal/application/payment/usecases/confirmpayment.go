package usecases

import (
	"context"
	"time"

	"github.com/planhaus/planhaus/internal/application/payment/paymentgateway"
	"github.com/planhaus/planhaus/internal/domain/order"
	vo "github.com/planhaus/planhaus/internal/domain/order/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/goroutine"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type ConfirmPaymentCommand struct {
	Reference string
}

type ConfirmPaymentResult struct {
	Order         *order.Order
	GatewayStatus paymentgateway.TransactionStatus
}

// ConfirmPaymentUseCase settles an order from the gateway's authoritative
// transaction state. It is safe to call any number of times for the same
// reference: a completed order is returned unchanged, and the callback and
// webhook paths converge on the same verification.
type ConfirmPaymentUseCase struct {
	orderRepo order.OrderRepository
	gateway   paymentgateway.PaymentGateway
	receipts  ReceiptNotifier
	logger    logger.Interface
}

// ReceiptNotifier sends the purchase receipt after an order settles. A nil
// notifier disables receipts.
type ReceiptNotifier interface {
	SendOrderReceipt(ctx context.Context, ord *order.Order) error
}

func NewConfirmPaymentUseCase(
	orderRepo order.OrderRepository,
	gateway paymentgateway.PaymentGateway,
	receipts ReceiptNotifier,
	logger logger.Interface,
) *ConfirmPaymentUseCase {
	return &ConfirmPaymentUseCase{
		orderRepo: orderRepo,
		gateway:   gateway,
		receipts:  receipts,
		logger:    logger,
	}
}

func (uc *ConfirmPaymentUseCase) Execute(ctx context.Context, cmd ConfirmPaymentCommand) (*ConfirmPaymentResult, error) {
	if cmd.Reference == "" {
		return nil, errors.NewValidationError("payment reference is required")
	}

	ord, err := uc.orderRepo.GetByProviderReference(ctx, cmd.Reference)
	if err != nil {
		uc.logger.Errorw("failed to get order by reference", "error", err, "reference", cmd.Reference)
		return nil, errors.NewInternalError("failed to get order")
	}
	if ord == nil {
		return nil, errors.NewNotFoundError("no order for payment reference")
	}

	// Duplicate confirmations are expected: customer redirect and webhook
	// race for the same reference.
	if ord.Status() == vo.OrderStatusCompleted {
		return &ConfirmPaymentResult{Order: ord, GatewayStatus: paymentgateway.TransactionSuccess}, nil
	}

	verification, err := uc.gateway.Verify(ctx, cmd.Reference)
	if err != nil {
		uc.logger.Errorw("gateway verification failed", "error", err, "reference", cmd.Reference)
		return nil, errors.NewPaymentVerificationError("could not verify payment, please try again")
	}

	switch verification.Status {
	case paymentgateway.TransactionSuccess:
		if verification.Amount != ord.Amount().AmountMinor() || verification.Currency != ord.Amount().Currency() {
			uc.logger.Errorw("verified amount does not match order",
				"reference", cmd.Reference,
				"order_amount", ord.Amount().AmountMinor(),
				"order_currency", ord.Amount().Currency(),
				"verified_amount", verification.Amount,
				"verified_currency", verification.Currency,
			)
			if failErr := ord.MarkFailed("verified amount does not match order"); failErr == nil {
				if updateErr := uc.orderRepo.Update(ctx, ord); updateErr != nil {
					uc.logger.Errorw("failed to persist amount-mismatch failure", "error", updateErr, "reference", cmd.Reference)
				}
			}
			return nil, errors.NewPaymentVerificationError("payment amount does not match order")
		}

		if err := ord.Complete(verification.PaidAt); err != nil {
			return nil, errors.NewInternalError(err.Error())
		}
		if err := uc.orderRepo.Update(ctx, ord); err != nil {
			// The charge succeeded but the order is not yet settled; the
			// reconciliation worker re-verifies stale processing orders.
			uc.logger.Errorw("verified payment could not be persisted", "error", err, "reference", cmd.Reference, "order_sid", ord.SID())
			return nil, errors.NewInternalError("failed to settle order")
		}

		uc.logger.Infow("payment confirmed", "reference", cmd.Reference, "order_sid", ord.SID())

		if uc.receipts != nil {
			goroutine.SafeGo(uc.logger, "send order receipt", func() {
				sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := uc.receipts.SendOrderReceipt(sendCtx, ord); err != nil {
					uc.logger.Warnw("failed to send order receipt", "error", err, "order_sid", ord.SID())
				}
			})
		}

	case paymentgateway.TransactionFailed, paymentgateway.TransactionAbandoned:
		reason := verification.GatewayResponse
		if reason == "" {
			reason = string(verification.Status)
		}
		if err := ord.MarkFailed(reason); err == nil {
			if updateErr := uc.orderRepo.Update(ctx, ord); updateErr != nil {
				uc.logger.Errorw("failed to persist payment failure", "error", updateErr, "reference", cmd.Reference)
				return nil, errors.NewInternalError("failed to update order")
			}
		}
		uc.logger.Infow("payment did not succeed", "reference", cmd.Reference, "status", verification.Status, "reason", reason)

	case paymentgateway.TransactionPending:
		// Still in flight at the provider. Leave the order processing and
		// let a later confirmation or the reconciliation worker settle it.
		uc.logger.Infow("payment still pending at gateway", "reference", cmd.Reference)
	}

	return &ConfirmPaymentResult{Order: ord, GatewayStatus: verification.Status}, nil
}
