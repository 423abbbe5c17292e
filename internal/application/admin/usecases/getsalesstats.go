package usecases

import (
	"context"
	"time"

	"github.com/planhaus/planhaus/internal/domain/order"
	vo "github.com/planhaus/planhaus/internal/domain/order/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/biztime"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type GetSalesStatsCommand struct {
	// From and To bound the reporting window. Zero values default to the
	// current business-timezone month.
	From time.Time
	To   time.Time
}

type GetSalesStatsResult struct {
	From            time.Time
	To              time.Time
	TotalOrders     int64
	CompletedOrders int64
	FailedOrders    int64
	OpenOrders      int64
	RevenueMinor    int64
	ByStatus        []order.StatusTotals
}

// GetSalesStatsUseCase aggregates order counts and revenue for the back
// office dashboard. Revenue counts completed orders only.
type GetSalesStatsUseCase struct {
	orderRepo order.OrderRepository
	logger    logger.Interface
}

func NewGetSalesStatsUseCase(orderRepo order.OrderRepository, logger logger.Interface) *GetSalesStatsUseCase {
	return &GetSalesStatsUseCase{orderRepo: orderRepo, logger: logger}
}

func (uc *GetSalesStatsUseCase) Execute(ctx context.Context, cmd GetSalesStatsCommand) (*GetSalesStatsResult, error) {
	from, to := cmd.From, cmd.To
	if from.IsZero() || to.IsZero() {
		now := biztime.ToBizTimezone(biztime.NowUTC())
		from = biztime.StartOfMonthUTC(now.Year(), now.Month())
		to = biztime.EndOfMonthUTC(now.Year(), now.Month())
	}
	if to.Before(from) {
		return nil, errors.NewValidationError("invalid reporting window")
	}

	totals, err := uc.orderRepo.TotalsByStatus(ctx, from, to)
	if err != nil {
		uc.logger.Errorw("failed to aggregate order totals", "error", err)
		return nil, errors.NewInternalError("failed to load sales stats")
	}

	result := &GetSalesStatsResult{
		From:     from,
		To:       to,
		ByStatus: totals,
	}
	for _, t := range totals {
		result.TotalOrders += t.Count
		switch t.Status {
		case vo.OrderStatusCompleted:
			result.CompletedOrders += t.Count
			result.RevenueMinor += t.AmountMinor
		case vo.OrderStatusFailed, vo.OrderStatusCancelled:
			result.FailedOrders += t.Count
		default:
			result.OpenOrders += t.Count
		}
	}

	return result, nil
}
