package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	"github.com/planhaus/planhaus/internal/domain/favorite"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type RemoveFavoriteCommand struct {
	UserID  uint
	PlanSID string
}

// RemoveFavoriteUseCase drops a plan from the user's favorites. Removing a
// plan that was never saved succeeds without change.
type RemoveFavoriteUseCase struct {
	favoriteRepo favorite.FavoriteRepository
	planRepo     catalog.PlanRepository
	logger       logger.Interface
}

func NewRemoveFavoriteUseCase(favoriteRepo favorite.FavoriteRepository, planRepo catalog.PlanRepository, logger logger.Interface) *RemoveFavoriteUseCase {
	return &RemoveFavoriteUseCase{
		favoriteRepo: favoriteRepo,
		planRepo:     planRepo,
		logger:       logger,
	}
}

func (uc *RemoveFavoriteUseCase) Execute(ctx context.Context, cmd RemoveFavoriteCommand) error {
	if cmd.UserID == 0 {
		return errors.NewUnauthorizedError("authentication required")
	}

	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return errors.NewInternalError("failed to get plan")
	}
	if plan == nil {
		return errors.NewNotFoundError("plan not found")
	}

	if err := uc.favoriteRepo.Remove(ctx, cmd.UserID, plan.ID()); err != nil {
		uc.logger.Errorw("failed to remove favorite", "error", err, "user_id", cmd.UserID, "plan_sid", cmd.PlanSID)
		return errors.NewInternalError("failed to remove favorite")
	}

	return nil
}
