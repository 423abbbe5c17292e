package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/order"
	"github.com/planhaus/planhaus/internal/shared/authorization"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type GetOrderCommand struct {
	OrderSID      string
	RequesterID   uint
	RequesterRole authorization.UserRole
}

type GetOrderResult struct {
	Order *order.Order
}

// GetOrderUseCase fetches one order. Customers only see their own orders;
// admins see all of them.
type GetOrderUseCase struct {
	orderRepo order.OrderRepository
	logger    logger.Interface
}

func NewGetOrderUseCase(orderRepo order.OrderRepository, logger logger.Interface) *GetOrderUseCase {
	return &GetOrderUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, cmd GetOrderCommand) (*GetOrderResult, error) {
	ord, err := uc.orderRepo.GetBySID(ctx, cmd.OrderSID)
	if err != nil {
		uc.logger.Errorw("failed to get order", "error", err, "order_sid", cmd.OrderSID)
		return nil, errors.NewInternalError("failed to get order")
	}
	if ord == nil {
		return nil, errors.NewNotFoundError("order not found")
	}

	if !authorization.CanAccessResource(cmd.RequesterID, cmd.RequesterRole, ord) {
		// Hide existence from other customers.
		return nil, errors.NewNotFoundError("order not found")
	}

	return &GetOrderResult{Order: ord}, nil
}
