package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	favoriteUsecases "github.com/planhaus/planhaus/internal/application/favorite/usecases"
	"github.com/planhaus/planhaus/internal/shared/constants"
	"github.com/planhaus/planhaus/internal/shared/id"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// FavoriteHandler manages the user's saved plans.
type FavoriteHandler struct {
	addFavoriteUC    *favoriteUsecases.AddFavoriteUseCase
	removeFavoriteUC *favoriteUsecases.RemoveFavoriteUseCase
	listFavoritesUC  *favoriteUsecases.ListFavoritesUseCase
	logger           logger.Interface
}

func NewFavoriteHandler(
	addFavoriteUC *favoriteUsecases.AddFavoriteUseCase,
	removeFavoriteUC *favoriteUsecases.RemoveFavoriteUseCase,
	listFavoritesUC *favoriteUsecases.ListFavoritesUseCase,
	logger logger.Interface,
) *FavoriteHandler {
	return &FavoriteHandler{
		addFavoriteUC:    addFavoriteUC,
		removeFavoriteUC: removeFavoriteUC,
		listFavoritesUC:  listFavoritesUC,
		logger:           logger,
	}
}

type favoriteResponse struct {
	Plan    PlanSummaryResponse `json:"plan"`
	SavedAt time.Time           `json:"saved_at"`
}

// AddFavorite saves a plan. Saving twice is a no-op.
// PUT /api/v1/favorites/:id
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.addFavoriteUC.Execute(c.Request.Context(), favoriteUsecases.AddFavoriteCommand{
		UserID:  c.GetUint(constants.ContextKeyUserID),
		PlanSID: planSID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// RemoveFavorite unsaves a plan. Removing an unsaved plan is a no-op.
// DELETE /api/v1/favorites/:id
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.removeFavoriteUC.Execute(c.Request.Context(), favoriteUsecases.RemoveFavoriteCommand{
		UserID:  c.GetUint(constants.ContextKeyUserID),
		PlanSID: planSID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListFavorites returns the user's saved plans with catalog data.
// GET /api/v1/favorites
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listFavoritesUC.Execute(c.Request.Context(), favoriteUsecases.ListFavoritesCommand{
		UserID:   c.GetUint(constants.ContextKeyUserID),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]favoriteResponse, 0, len(result.Entries))
	for _, entry := range result.Entries {
		items = append(items, favoriteResponse{
			Plan:    toPlanSummaryResponse(entry.Plan),
			SavedAt: entry.Favorite.CreatedAt(),
		})
	}

	utils.ListSuccessResponse(c, items, result.Total, result.Pagination.Page, result.Pagination.PageSize)
}
