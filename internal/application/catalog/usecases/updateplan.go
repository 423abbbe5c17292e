package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type UpdatePlanCommand struct {
	PlanSID      string
	Title        *string
	Description  *string
	Category     *string
	Bedrooms     *uint
	Bathrooms    *uint
	FloorAreaSqm *uint
	PrimaryImage *string
	Gallery      *[]string

	// Prices are replaced as a full ladder or not at all.
	BasicPrice    *uint64
	StandardPrice *uint64
	PremiumPrice  *uint64

	Featured *bool
}

type UpdatePlanResult struct {
	Plan *catalog.Plan
}

// UpdatePlanUseCase applies partial updates to a catalog plan. Price changes
// only affect future checkouts; orders already initiated keep their charged
// amount.
type UpdatePlanUseCase struct {
	planRepo catalog.PlanRepository
	logger   logger.Interface
}

func NewUpdatePlanUseCase(planRepo catalog.PlanRepository, logger logger.Interface) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*UpdatePlanResult, error) {
	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, errors.NewInternalError("failed to get plan")
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found")
	}

	if err := plan.UpdateDetails(catalog.UpdateDetailsParams{
		Title:        cmd.Title,
		Description:  cmd.Description,
		Category:     cmd.Category,
		Bedrooms:     cmd.Bedrooms,
		Bathrooms:    cmd.Bathrooms,
		FloorAreaSqm: cmd.FloorAreaSqm,
		PrimaryImage: cmd.PrimaryImage,
		Gallery:      cmd.Gallery,
	}); err != nil {
		return nil, errors.NewValidationError("invalid plan update", err.Error())
	}

	if cmd.BasicPrice != nil || cmd.StandardPrice != nil || cmd.PremiumPrice != nil {
		if cmd.BasicPrice == nil || cmd.StandardPrice == nil || cmd.PremiumPrice == nil {
			return nil, errors.NewValidationError("all three tier prices must be provided together")
		}
		if err := plan.SetPrices(*cmd.BasicPrice, *cmd.StandardPrice, *cmd.PremiumPrice); err != nil {
			return nil, errors.NewValidationError("invalid prices", err.Error())
		}
	}

	if cmd.Featured != nil {
		plan.SetFeatured(*cmd.Featured)
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to update plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, errors.NewInternalError("failed to update plan")
	}

	uc.logger.Infow("plan updated", "plan_sid", plan.SID(), "version", plan.Version())

	return &UpdatePlanResult{Plan: plan}, nil
}
