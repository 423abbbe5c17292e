package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/services/markdown"
)

type GetPlanCommand struct {
	PlanSID string
	// IncludeUnpublished lets back-office callers fetch draft and inactive
	// plans. Storefront callers only see active plans.
	IncludeUnpublished bool
}

type GetPlanResult struct {
	Plan            *catalog.Plan
	DescriptionHTML string
}

// GetPlanUseCase fetches a single plan for the detail page. A missing plan is
// a hard not-found; the storefront never substitutes placeholder content.
type GetPlanUseCase struct {
	planRepo catalog.PlanRepository
	markdown markdown.Service
	logger   logger.Interface
}

func NewGetPlanUseCase(planRepo catalog.PlanRepository, markdown markdown.Service, logger logger.Interface) *GetPlanUseCase {
	return &GetPlanUseCase{
		planRepo: planRepo,
		markdown: markdown,
		logger:   logger,
	}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, cmd GetPlanCommand) (*GetPlanResult, error) {
	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, errors.NewInternalError("failed to get plan")
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found")
	}

	if !cmd.IncludeUnpublished && plan.Status() != catalogVO.PlanStatusActive {
		return nil, errors.NewNotFoundError("plan not found")
	}

	descriptionHTML, err := uc.markdown.ToHTMLSanitized(plan.Description())
	if err != nil {
		uc.logger.Warnw("failed to render plan description", "error", err, "plan_sid", cmd.PlanSID)
		descriptionHTML = ""
	}

	return &GetPlanResult{
		Plan:            plan,
		DescriptionHTML: descriptionHTML,
	}, nil
}
