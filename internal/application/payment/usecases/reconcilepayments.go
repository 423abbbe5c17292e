package usecases

import (
	"context"
	"time"

	"github.com/planhaus/planhaus/internal/domain/order"
	vo "github.com/planhaus/planhaus/internal/domain/order/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/biztime"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type ReconcilePaymentsCommand struct {
	OlderThan time.Duration
	Limit     int
}

type ReconcilePaymentsResult struct {
	Checked   int
	Settled   int
	Failed    int
	StillOpen int
}

// ReconcilePaymentsUseCase re-verifies orders stuck in processing. An order
// gets stuck when the customer paid but the confirmation was never delivered
// or could not be persisted; re-running the verification settles it from the
// gateway's authoritative state.
type ReconcilePaymentsUseCase struct {
	orderRepo order.OrderRepository
	confirm   *ConfirmPaymentUseCase
	logger    logger.Interface
}

func NewReconcilePaymentsUseCase(
	orderRepo order.OrderRepository,
	confirm *ConfirmPaymentUseCase,
	logger logger.Interface,
) *ReconcilePaymentsUseCase {
	return &ReconcilePaymentsUseCase{
		orderRepo: orderRepo,
		confirm:   confirm,
		logger:    logger,
	}
}

func (uc *ReconcilePaymentsUseCase) Execute(ctx context.Context, cmd ReconcilePaymentsCommand) (*ReconcilePaymentsResult, error) {
	cutoff := biztime.NowUTC().Add(-cmd.OlderThan)
	limit := cmd.Limit
	if limit <= 0 {
		limit = 50
	}

	stale, err := uc.orderRepo.ListStaleProcessing(ctx, cutoff, limit)
	if err != nil {
		uc.logger.Errorw("failed to list stale processing orders", "error", err)
		return nil, err
	}

	result := &ReconcilePaymentsResult{}
	for _, ord := range stale {
		ref := ord.ProviderReference()
		if ref == nil {
			continue
		}
		result.Checked++

		confirmed, err := uc.confirm.Execute(ctx, ConfirmPaymentCommand{Reference: *ref})
		if err != nil {
			result.StillOpen++
			uc.logger.Warnw("reconciliation could not settle order", "error", err, "order_sid", ord.SID(), "reference", *ref)
			continue
		}

		switch confirmed.Order.Status() {
		case vo.OrderStatusCompleted:
			result.Settled++
		case vo.OrderStatusFailed, vo.OrderStatusCancelled:
			result.Failed++
		default:
			result.StillOpen++
		}
	}

	if result.Checked > 0 {
		uc.logger.Infow("payment reconciliation pass finished",
			"checked", result.Checked,
			"settled", result.Settled,
			"failed", result.Failed,
			"still_open", result.StillOpen,
		)
	}

	return result, nil
}
