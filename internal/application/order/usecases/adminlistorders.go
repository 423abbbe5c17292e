package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/order"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

type AdminListOrdersCommand struct {
	UserID   uint
	PlanID   uint
	Status   string
	Page     int
	PageSize int
}

type AdminListOrdersResult struct {
	Orders     []*order.Order
	Total      int64
	Pagination utils.Pagination
}

// AdminListOrdersUseCase pages through all orders for the back office, with
// optional user, plan, and status filters.
type AdminListOrdersUseCase struct {
	orderRepo order.OrderRepository
	logger    logger.Interface
}

func NewAdminListOrdersUseCase(orderRepo order.OrderRepository, logger logger.Interface) *AdminListOrdersUseCase {
	return &AdminListOrdersUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (uc *AdminListOrdersUseCase) Execute(ctx context.Context, cmd AdminListOrdersCommand) (*AdminListOrdersResult, error) {
	pagination := utils.ValidatePagination(cmd.Page, cmd.PageSize)

	filters := order.ListFilters{
		UserID: cmd.UserID,
		PlanID: cmd.PlanID,
		Status: cmd.Status,
	}

	orders, total, err := uc.orderRepo.List(ctx, filters, pagination.Offset(), pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list orders", "error", err, "filters", filters)
		return nil, errors.NewInternalError("failed to list orders")
	}

	return &AdminListOrdersResult{
		Orders:     orders,
		Total:      total,
		Pagination: pagination,
	}, nil
}
