package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	"github.com/planhaus/planhaus/internal/domain/favorite"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type AddFavoriteCommand struct {
	UserID  uint
	PlanSID string
}

// AddFavoriteUseCase saves a plan to the user's favorites. Saving an
// already-saved plan succeeds without change.
type AddFavoriteUseCase struct {
	favoriteRepo favorite.FavoriteRepository
	planRepo     catalog.PlanRepository
	logger       logger.Interface
}

func NewAddFavoriteUseCase(favoriteRepo favorite.FavoriteRepository, planRepo catalog.PlanRepository, logger logger.Interface) *AddFavoriteUseCase {
	return &AddFavoriteUseCase{
		favoriteRepo: favoriteRepo,
		planRepo:     planRepo,
		logger:       logger,
	}
}

func (uc *AddFavoriteUseCase) Execute(ctx context.Context, cmd AddFavoriteCommand) error {
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

	fav, err := favorite.NewFavorite(cmd.UserID, plan.ID())
	if err != nil {
		return errors.NewValidationError("invalid favorite", err.Error())
	}

	if err := uc.favoriteRepo.Add(ctx, fav); err != nil {
		uc.logger.Errorw("failed to add favorite", "error", err, "user_id", cmd.UserID, "plan_sid", cmd.PlanSID)
		return errors.NewInternalError("failed to add favorite")
	}

	return nil
}
