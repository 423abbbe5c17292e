package usecases

import (
	"context"
	"time"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/domain/checkout"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type BeginCheckoutCommand struct {
	PlanSID string
	Tier    string
}

type BeginCheckoutResult struct {
	Intent    *checkout.Intent
	ExpiresAt time.Time
}

// BeginCheckoutUseCase captures a purchase selection as a single-use intent.
// The intent holds the plan's current price for the chosen tier; the price is
// re-derived again at payment initiation so a stale intent can never
// underpay.
type BeginCheckoutUseCase struct {
	planRepo    catalog.PlanRepository
	intentStore checkout.IntentStore
	intentTTL   time.Duration
	logger      logger.Interface
}

func NewBeginCheckoutUseCase(
	planRepo catalog.PlanRepository,
	intentStore checkout.IntentStore,
	intentTTL time.Duration,
	logger logger.Interface,
) *BeginCheckoutUseCase {
	return &BeginCheckoutUseCase{
		planRepo:    planRepo,
		intentStore: intentStore,
		intentTTL:   intentTTL,
		logger:      logger,
	}
}

func (uc *BeginCheckoutUseCase) Execute(ctx context.Context, cmd BeginCheckoutCommand) (*BeginCheckoutResult, error) {
	tier, err := catalogVO.ParseTier(cmd.Tier)
	if err != nil {
		return nil, errors.NewValidationError("invalid tier", err.Error())
	}

	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, errors.NewInternalError("failed to get plan")
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found")
	}
	if !plan.IsPurchasable() {
		return nil, errors.NewValidationError("plan is not available for purchase")
	}

	price, err := plan.PriceFor(tier)
	if err != nil {
		return nil, errors.NewValidationError("invalid tier", err.Error())
	}

	intent, err := checkout.NewIntent(plan.ID(), plan.SID(), plan.Title(), tier, int64(price), plan.Currency())
	if err != nil {
		return nil, errors.NewValidationError("failed to create checkout intent", err.Error())
	}

	if err := uc.intentStore.Save(ctx, intent, uc.intentTTL); err != nil {
		uc.logger.Errorw("failed to save checkout intent", "error", err, "plan_sid", cmd.PlanSID)
		return nil, errors.NewInternalError("failed to save checkout intent")
	}

	uc.logger.Infow("checkout intent created",
		"intent_id", intent.ID,
		"plan_sid", plan.SID(),
		"tier", tier,
		"amount", intent.Amount,
	)

	return &BeginCheckoutResult{
		Intent:    intent,
		ExpiresAt: intent.CreatedAt.Add(uc.intentTTL),
	}, nil
}
