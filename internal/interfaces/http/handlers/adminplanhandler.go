package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogUsecases "github.com/planhaus/planhaus/internal/application/catalog/usecases"
	"github.com/planhaus/planhaus/internal/shared/id"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// AdminPlanHandler manages the catalog from the back office. Unlike the
// public handler, it sees draft and inactive plans.
type AdminPlanHandler struct {
	listPlansUC     *catalogUsecases.ListPlansUseCase
	getPlanUC       *catalogUsecases.GetPlanUseCase
	createPlanUC    *catalogUsecases.CreatePlanUseCase
	updatePlanUC    *catalogUsecases.UpdatePlanUseCase
	setPlanStatusUC *catalogUsecases.SetPlanStatusUseCase
	deletePlanUC    *catalogUsecases.DeletePlanUseCase
	logger          logger.Interface
}

func NewAdminPlanHandler(
	listPlansUC *catalogUsecases.ListPlansUseCase,
	getPlanUC *catalogUsecases.GetPlanUseCase,
	createPlanUC *catalogUsecases.CreatePlanUseCase,
	updatePlanUC *catalogUsecases.UpdatePlanUseCase,
	setPlanStatusUC *catalogUsecases.SetPlanStatusUseCase,
	deletePlanUC *catalogUsecases.DeletePlanUseCase,
	logger logger.Interface,
) *AdminPlanHandler {
	return &AdminPlanHandler{
		listPlansUC:     listPlansUC,
		getPlanUC:       getPlanUC,
		createPlanUC:    createPlanUC,
		updatePlanUC:    updatePlanUC,
		setPlanStatusUC: setPlanStatusUC,
		deletePlanUC:    deletePlanUC,
		logger:          logger,
	}
}

type createPlanRequest struct {
	Title         string   `json:"title" binding:"required,max=200"`
	Description   string   `json:"description"`
	Category      string   `json:"category" binding:"required,plancategory"`
	Bedrooms      uint     `json:"bedrooms"`
	Bathrooms     uint     `json:"bathrooms"`
	FloorAreaSqm  uint     `json:"floor_area_sqm"`
	BasicPrice    uint64   `json:"basic_price" binding:"required"`
	StandardPrice uint64   `json:"standard_price" binding:"required"`
	PremiumPrice  uint64   `json:"premium_price" binding:"required"`
	Currency      string   `json:"currency"`
	PrimaryImage  string   `json:"primary_image"`
	GalleryImages []string `json:"gallery_images"`
	Publish       bool     `json:"publish"`
}

type updatePlanRequest struct {
	Title         *string   `json:"title" binding:"omitempty,max=200"`
	Description   *string   `json:"description"`
	Category      *string   `json:"category" binding:"omitempty,plancategory"`
	Bedrooms      *uint     `json:"bedrooms"`
	Bathrooms     *uint     `json:"bathrooms"`
	FloorAreaSqm  *uint     `json:"floor_area_sqm"`
	BasicPrice    *uint64   `json:"basic_price"`
	StandardPrice *uint64   `json:"standard_price"`
	PremiumPrice  *uint64   `json:"premium_price"`
	PrimaryImage  *string   `json:"primary_image"`
	GalleryImages *[]string `json:"gallery_images"`
	Featured      *bool     `json:"featured"`
}

type setPlanStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListPlans returns all plans regardless of status.
// GET /api/v1/admin/plans
func (h *AdminPlanHandler) ListPlans(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listPlansUC.Execute(c.Request.Context(), catalogUsecases.ListPlansCommand{
		Category:           c.Query("category"),
		Status:             c.Query("status"),
		Sort:               c.Query("sort"),
		IncludeUnpublished: true,
		Page:               pagination.Page,
		PageSize:           pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, toPlanSummaryResponses(result.Plans), result.Total, result.Pagination.Page, result.Pagination.PageSize)
}

// GetPlan returns a single plan in any status.
// GET /api/v1/admin/plans/:id
func (h *AdminPlanHandler) GetPlan(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPlanUC.Execute(c.Request.Context(), catalogUsecases.GetPlanCommand{
		PlanSID:            planSID,
		IncludeUnpublished: true,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toPlanDetailResponse(result.Plan, result.DescriptionHTML))
}

// CreatePlan adds a plan to the catalog, as a draft unless publish is set.
// POST /api/v1/admin/plans
func (h *AdminPlanHandler) CreatePlan(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), catalogUsecases.CreatePlanCommand{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		FloorAreaSqm:  req.FloorAreaSqm,
		BasicPrice:    req.BasicPrice,
		StandardPrice: req.StandardPrice,
		PremiumPrice:  req.PremiumPrice,
		Currency:      req.Currency,
		PrimaryImage:  req.PrimaryImage,
		GalleryImages: req.GalleryImages,
		Publish:       req.Publish,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toPlanDetailResponse(result.Plan, ""), "plan created successfully")
}

// UpdatePlan applies a partial update. Prices must be sent as a complete
// three-tier ladder when changed.
// PUT /api/v1/admin/plans/:id
func (h *AdminPlanHandler) UpdatePlan(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req updatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.updatePlanUC.Execute(c.Request.Context(), catalogUsecases.UpdatePlanCommand{
		PlanSID:       planSID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		FloorAreaSqm:  req.FloorAreaSqm,
		PrimaryImage:  req.PrimaryImage,
		Gallery:       req.GalleryImages,
		BasicPrice:    req.BasicPrice,
		StandardPrice: req.StandardPrice,
		PremiumPrice:  req.PremiumPrice,
		Featured:      req.Featured,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "plan updated successfully", toPlanDetailResponse(result.Plan, ""))
}

// SetPlanStatus publishes or retires a plan.
// PATCH /api/v1/admin/plans/:id/status
func (h *AdminPlanHandler) SetPlanStatus(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req setPlanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.setPlanStatusUC.Execute(c.Request.Context(), catalogUsecases.SetPlanStatusCommand{
		PlanSID: planSID,
		Status:  req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "plan status updated", toPlanDetailResponse(result.Plan, ""))
}

// DeletePlan removes a plan that has never been sold. Plans with orders can
// only be deactivated.
// DELETE /api/v1/admin/plans/:id
func (h *AdminPlanHandler) DeletePlan(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deletePlanUC.Execute(c.Request.Context(), catalogUsecases.DeletePlanCommand{
		PlanSID: planSID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
