package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type CreatePlanCommand struct {
	Title         string
	Description   string
	Category      string
	Bedrooms      uint
	Bathrooms     uint
	FloorAreaSqm  uint
	BasicPrice    uint64
	StandardPrice uint64
	PremiumPrice  uint64
	Currency      string
	PrimaryImage  string
	GalleryImages []string
	// Publish activates the plan immediately instead of leaving it in draft.
	Publish bool
}

type CreatePlanResult struct {
	Plan *catalog.Plan
}

// CreatePlanUseCase adds a plan to the catalog. New plans start as drafts
// unless explicitly published.
type CreatePlanUseCase struct {
	planRepo catalog.PlanRepository
	logger   logger.Interface
}

func NewCreatePlanUseCase(planRepo catalog.PlanRepository, logger logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*CreatePlanResult, error) {
	plan, err := catalog.NewPlan(catalog.NewPlanParams{
		Title:         cmd.Title,
		Description:   cmd.Description,
		Category:      catalogVO.Category(cmd.Category),
		Bedrooms:      cmd.Bedrooms,
		Bathrooms:     cmd.Bathrooms,
		FloorAreaSqm:  cmd.FloorAreaSqm,
		BasicPrice:    cmd.BasicPrice,
		StandardPrice: cmd.StandardPrice,
		PremiumPrice:  cmd.PremiumPrice,
		Currency:      cmd.Currency,
		PrimaryImage:  cmd.PrimaryImage,
		GalleryImages: cmd.GalleryImages,
	})
	if err != nil {
		return nil, errors.NewValidationError("invalid plan", err.Error())
	}

	if cmd.Publish {
		plan.Activate()
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("a plan with this title already exists")
		}
		uc.logger.Errorw("failed to create plan", "error", err, "title", cmd.Title)
		return nil, errors.NewInternalError("failed to create plan")
	}

	uc.logger.Infow("plan created", "plan_sid", plan.SID(), "title", plan.Title(), "status", plan.Status())

	return &CreatePlanResult{Plan: plan}, nil
}
