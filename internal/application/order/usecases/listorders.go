package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/order"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

type ListOrdersCommand struct {
	UserID   uint
	Page     int
	PageSize int
}

type ListOrdersResult struct {
	Orders     []*order.Order
	Total      int64
	Pagination utils.Pagination
}

// ListOrdersUseCase lists a customer's own purchase history, newest first.
type ListOrdersUseCase struct {
	orderRepo order.OrderRepository
	logger    logger.Interface
}

func NewListOrdersUseCase(orderRepo order.OrderRepository, logger logger.Interface) *ListOrdersUseCase {
	return &ListOrdersUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, cmd ListOrdersCommand) (*ListOrdersResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	pagination := utils.ValidatePagination(cmd.Page, cmd.PageSize)

	orders, total, err := uc.orderRepo.ListByUserID(ctx, cmd.UserID, pagination.Offset(), pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list orders", "error", err, "user_id", cmd.UserID)
		return nil, errors.NewInternalError("failed to list orders")
	}

	return &ListOrdersResult{
		Orders:     orders,
		Total:      total,
		Pagination: pagination,
	}, nil
}
