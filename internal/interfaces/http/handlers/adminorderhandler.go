package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	adminUsecases "github.com/planhaus/planhaus/internal/application/admin/usecases"
	orderUsecases "github.com/planhaus/planhaus/internal/application/order/usecases"
	"github.com/planhaus/planhaus/internal/domain/order"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// AdminOrderHandler serves back-office order browsing and the sales
// dashboard.
type AdminOrderHandler struct {
	adminListOrdersUC *orderUsecases.AdminListOrdersUseCase
	getSalesStatsUC   *adminUsecases.GetSalesStatsUseCase
	logger            logger.Interface
}

func NewAdminOrderHandler(
	adminListOrdersUC *orderUsecases.AdminListOrdersUseCase,
	getSalesStatsUC *adminUsecases.GetSalesStatsUseCase,
	logger logger.Interface,
) *AdminOrderHandler {
	return &AdminOrderHandler{
		adminListOrdersUC: adminListOrdersUC,
		getSalesStatsUC:   getSalesStatsUC,
		logger:            logger,
	}
}

type statusTotalsResponse struct {
	Status      string `json:"status"`
	Count       int64  `json:"count"`
	AmountMinor int64  `json:"amount_minor"`
}

type salesStatsResponse struct {
	From            time.Time              `json:"from"`
	To              time.Time              `json:"to"`
	TotalOrders     int64                  `json:"total_orders"`
	CompletedOrders int64                  `json:"completed_orders"`
	FailedOrders    int64                  `json:"failed_orders"`
	OpenOrders      int64                  `json:"open_orders"`
	RevenueMinor    int64                  `json:"revenue_minor"`
	ByStatus        []statusTotalsResponse `json:"by_status"`
}

func toSalesStatsResponse(r *adminUsecases.GetSalesStatsResult) salesStatsResponse {
	byStatus := make([]statusTotalsResponse, 0, len(r.ByStatus))
	for _, t := range r.ByStatus {
		byStatus = append(byStatus, statusTotalsResponse{
			Status:      t.Status.String(),
			Count:       t.Count,
			AmountMinor: t.AmountMinor,
		})
	}

	return salesStatsResponse{
		From:            r.From,
		To:              r.To,
		TotalOrders:     r.TotalOrders,
		CompletedOrders: r.CompletedOrders,
		FailedOrders:    r.FailedOrders,
		OpenOrders:      r.OpenOrders,
		RevenueMinor:    r.RevenueMinor,
		ByStatus:        byStatus,
	}
}

// ListOrders pages through all orders with optional filters.
// GET /api/v1/admin/orders?user_id=&plan_id=&status=
func (h *AdminOrderHandler) ListOrders(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	cmd := orderUsecases.AdminListOrdersCommand{
		Status:   c.Query("status"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	if v := c.Query("user_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "user_id must be a number")
			return
		}
		cmd.UserID = uint(n)
	}

	if v := c.Query("plan_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "plan_id must be a number")
			return
		}
		cmd.PlanID = uint(n)
	}

	result, err := h.adminListOrdersUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, toAdminOrderResponses(result.Orders), result.Total, result.Pagination.Page, result.Pagination.PageSize)
}

// GetSalesStats returns order counts and revenue for a reporting window,
// defaulting to the current month.
// GET /api/v1/admin/stats?from=2026-08-01&to=2026-08-31
func (h *AdminOrderHandler) GetSalesStats(c *gin.Context) {
	var cmd adminUsecases.GetSalesStatsCommand

	if v := c.Query("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "from must be a date in YYYY-MM-DD format")
			return
		}
		cmd.From = from
	}

	if v := c.Query("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "to must be a date in YYYY-MM-DD format")
			return
		}
		// Inclusive end date: extend to the end of the day.
		cmd.To = to.Add(24*time.Hour - time.Nanosecond)
	}

	result, err := h.getSalesStatsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toSalesStatsResponse(result))
}

// adminOrderResponse extends the customer order view with ownership fields.
type adminOrderResponse struct {
	OrderResponse
	UserID uint `json:"user_id"`
	PlanID uint `json:"plan_id"`
}

func toAdminOrderResponses(orders []*order.Order) []adminOrderResponse {
	items := make([]adminOrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, adminOrderResponse{
			OrderResponse: toOrderResponse(o),
			UserID:        o.UserID(),
			PlanID:        o.PlanID(),
		})
	}
	return items
}
