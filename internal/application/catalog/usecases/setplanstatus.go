package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type SetPlanStatusCommand struct {
	PlanSID string
	Status  string
}

type SetPlanStatusResult struct {
	Plan *catalog.Plan
}

// SetPlanStatusUseCase publishes or retires a plan. Deactivating a plan hides
// it from the storefront and blocks new checkouts; existing completed orders
// keep their entitlements.
type SetPlanStatusUseCase struct {
	planRepo catalog.PlanRepository
	logger   logger.Interface
}

func NewSetPlanStatusUseCase(planRepo catalog.PlanRepository, logger logger.Interface) *SetPlanStatusUseCase {
	return &SetPlanStatusUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *SetPlanStatusUseCase) Execute(ctx context.Context, cmd SetPlanStatusCommand) (*SetPlanStatusResult, error) {
	status := catalogVO.PlanStatus(cmd.Status)
	if status != catalogVO.PlanStatusActive && status != catalogVO.PlanStatusInactive {
		return nil, errors.NewValidationError("status must be active or inactive", cmd.Status)
	}

	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, errors.NewInternalError("failed to get plan")
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found")
	}

	switch status {
	case catalogVO.PlanStatusActive:
		plan.Activate()
	case catalogVO.PlanStatusInactive:
		plan.Deactivate()
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to update plan status", "error", err, "plan_sid", cmd.PlanSID)
		return nil, errors.NewInternalError("failed to update plan status")
	}

	uc.logger.Infow("plan status changed", "plan_sid", plan.SID(), "status", plan.Status())

	return &SetPlanStatusResult{Plan: plan}, nil
}
