package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogUsecases "github.com/planhaus/planhaus/internal/application/catalog/usecases"
	"github.com/planhaus/planhaus/internal/domain/catalog"
	"github.com/planhaus/planhaus/internal/domain/favorite"
	"github.com/planhaus/planhaus/internal/shared/constants"
	"github.com/planhaus/planhaus/internal/shared/id"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// PlanHandler serves the public catalog endpoints. Only active plans are
// visible here; the back office uses AdminPlanHandler. When the request
// carries a valid token the responses are annotated with the caller's
// saved plans.
type PlanHandler struct {
	listPlansUC  *catalogUsecases.ListPlansUseCase
	getPlanUC    *catalogUsecases.GetPlanUseCase
	favoriteRepo favorite.FavoriteRepository
	logger       logger.Interface
}

func NewPlanHandler(
	listPlansUC *catalogUsecases.ListPlansUseCase,
	getPlanUC *catalogUsecases.GetPlanUseCase,
	favoriteRepo favorite.FavoriteRepository,
	logger logger.Interface,
) *PlanHandler {
	return &PlanHandler{
		listPlansUC:  listPlansUC,
		getPlanUC:    getPlanUC,
		favoriteRepo: favoriteRepo,
		logger:       logger,
	}
}

// ListPlans returns the storefront catalog with optional filters.
// GET /api/v1/plans?category=&min_bedrooms=&min_price=&max_price=&featured=&sort=&page=&page_size=
func (h *PlanHandler) ListPlans(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	cmd := catalogUsecases.ListPlansCommand{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	if v := c.Query("min_bedrooms"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "min_bedrooms must be a number")
			return
		}
		cmd.MinBedrooms = uint(n)
	}

	if v := c.Query("min_price"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "min_price must be a number")
			return
		}
		cmd.MinPrice = n
	}

	if v := c.Query("max_price"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "max_price must be a number")
			return
		}
		cmd.MaxPrice = n
	}

	if v := c.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "featured must be true or false")
			return
		}
		cmd.Featured = &featured
	}

	result, err := h.listPlansUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := toPlanSummaryResponses(result.Plans)
	h.markSavedPlans(c, result.Plans, items)

	utils.ListSuccessResponse(c, items, result.Total, result.Pagination.Page, result.Pagination.PageSize)
}

// GetPlan returns a single active plan with its rendered description.
// GET /api/v1/plans/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPlanUC.Execute(c.Request.Context(), catalogUsecases.GetPlanCommand{
		PlanSID: planSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := toPlanDetailResponse(result.Plan, result.DescriptionHTML)
	if userID := c.GetUint(constants.ContextKeyUserID); userID != 0 {
		saved, err := h.favoriteRepo.Exists(c.Request.Context(), userID, result.Plan.ID())
		if err != nil {
			h.logger.Warnw("failed to check saved plan", "error", err, "user_id", userID, "plan_sid", planSID)
		} else {
			resp.IsFavorite = &saved
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// markSavedPlans annotates listing cards for an authenticated caller.
// Anonymous requests and lookup failures leave the cards untouched.
func (h *PlanHandler) markSavedPlans(c *gin.Context, plans []*catalog.Plan, items []PlanSummaryResponse) {
	userID := c.GetUint(constants.ContextKeyUserID)
	if userID == 0 || len(plans) == 0 {
		return
	}

	planIDs, err := h.favoriteRepo.ListPlanIDsByUserID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Warnw("failed to load saved plans", "error", err, "user_id", userID)
		return
	}

	saved := make(map[uint]struct{}, len(planIDs))
	for _, planID := range planIDs {
		saved[planID] = struct{}{}
	}

	for i, p := range plans {
		_, ok := saved[p.ID()]
		items[i].IsFavorite = &ok
	}
}
