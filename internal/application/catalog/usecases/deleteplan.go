package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	"github.com/planhaus/planhaus/internal/domain/order"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type DeletePlanCommand struct {
	PlanSID string
}

// DeletePlanUseCase removes a plan from the catalog. A plan with any orders
// against it cannot be deleted; it should be deactivated instead so purchase
// history and entitlements stay intact.
type DeletePlanUseCase struct {
	planRepo  catalog.PlanRepository
	orderRepo order.OrderRepository
	logger    logger.Interface
}

func NewDeletePlanUseCase(planRepo catalog.PlanRepository, orderRepo order.OrderRepository, logger logger.Interface) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		planRepo:  planRepo,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (uc *DeletePlanUseCase) Execute(ctx context.Context, cmd DeletePlanCommand) error {
	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return errors.NewInternalError("failed to get plan")
	}
	if plan == nil {
		return errors.NewNotFoundError("plan not found")
	}

	_, total, err := uc.orderRepo.List(ctx, order.ListFilters{PlanID: plan.ID()}, 0, 1)
	if err != nil {
		uc.logger.Errorw("failed to check plan orders", "error", err, "plan_sid", cmd.PlanSID)
		return errors.NewInternalError("failed to check plan orders")
	}
	if total > 0 {
		return errors.NewConflictError("plan has orders and cannot be deleted, deactivate it instead")
	}

	if err := uc.planRepo.Delete(ctx, plan.ID()); err != nil {
		uc.logger.Errorw("failed to delete plan", "error", err, "plan_sid", cmd.PlanSID)
		return errors.NewInternalError("failed to delete plan")
	}

	uc.logger.Infow("plan deleted", "plan_sid", plan.SID(), "title", plan.Title())
	return nil
}
