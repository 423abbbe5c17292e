package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	"github.com/planhaus/planhaus/internal/domain/favorite"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

type ListFavoritesCommand struct {
	UserID   uint
	Page     int
	PageSize int
}

// FavoriteEntry pairs a saved plan with when it was saved.
type FavoriteEntry struct {
	Favorite *favorite.Favorite
	Plan     *catalog.Plan
}

type ListFavoritesResult struct {
	Entries    []FavoriteEntry
	Total      int64
	Pagination utils.Pagination
}

// ListFavoritesUseCase returns the user's saved plans with the catalog data
// needed to render them. Favorites whose plan was deleted are skipped.
type ListFavoritesUseCase struct {
	favoriteRepo favorite.FavoriteRepository
	planRepo     catalog.PlanRepository
	logger       logger.Interface
}

func NewListFavoritesUseCase(favoriteRepo favorite.FavoriteRepository, planRepo catalog.PlanRepository, logger logger.Interface) *ListFavoritesUseCase {
	return &ListFavoritesUseCase{
		favoriteRepo: favoriteRepo,
		planRepo:     planRepo,
		logger:       logger,
	}
}

func (uc *ListFavoritesUseCase) Execute(ctx context.Context, cmd ListFavoritesCommand) (*ListFavoritesResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	pagination := utils.ValidatePagination(cmd.Page, cmd.PageSize)

	favorites, total, err := uc.favoriteRepo.ListByUserID(ctx, cmd.UserID, pagination.Offset(), pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list favorites", "error", err, "user_id", cmd.UserID)
		return nil, errors.NewInternalError("failed to list favorites")
	}

	entries := make([]FavoriteEntry, 0, len(favorites))
	for _, fav := range favorites {
		plan, err := uc.planRepo.GetByID(ctx, fav.PlanID())
		if err != nil {
			uc.logger.Errorw("failed to get favorited plan", "error", err, "plan_id", fav.PlanID())
			return nil, errors.NewInternalError("failed to list favorites")
		}
		if plan == nil {
			continue
		}
		entries = append(entries, FavoriteEntry{Favorite: fav, Plan: plan})
	}

	return &ListFavoritesResult{
		Entries:    entries,
		Total:      total,
		Pagination: pagination,
	}, nil
}
