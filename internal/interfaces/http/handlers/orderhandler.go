package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderUsecases "github.com/planhaus/planhaus/internal/application/order/usecases"
	"github.com/planhaus/planhaus/internal/shared/authorization"
	"github.com/planhaus/planhaus/internal/shared/constants"
	"github.com/planhaus/planhaus/internal/shared/id"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// OrderHandler serves a customer's purchase history and download links.
type OrderHandler struct {
	listOrdersUC    *orderUsecases.ListOrdersUseCase
	getOrderUC      *orderUsecases.GetOrderUseCase
	downloadOrderUC *orderUsecases.DownloadOrderUseCase
	logger          logger.Interface
}

func NewOrderHandler(
	listOrdersUC *orderUsecases.ListOrdersUseCase,
	getOrderUC *orderUsecases.GetOrderUseCase,
	downloadOrderUC *orderUsecases.DownloadOrderUseCase,
	logger logger.Interface,
) *OrderHandler {
	return &OrderHandler{
		listOrdersUC:    listOrdersUC,
		getOrderUC:      getOrderUC,
		downloadOrderUC: downloadOrderUC,
		logger:          logger,
	}
}

// ListOrders returns the authenticated user's orders, newest first.
// GET /api/v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listOrdersUC.Execute(c.Request.Context(), orderUsecases.ListOrdersCommand{
		UserID:   c.GetUint(constants.ContextKeyUserID),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, toOrderResponses(result.Orders), result.Total, result.Pagination.Page, result.Pagination.PageSize)
}

// GetOrder returns one order. Customers only see their own.
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderSID, err := utils.ParseSIDParam(c, "id", id.PrefixOrder, "order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getOrderUC.Execute(c.Request.Context(), orderUsecases.GetOrderCommand{
		OrderSID:      orderSID,
		RequesterID:   c.GetUint(constants.ContextKeyUserID),
		RequesterRole: authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole)),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toOrderResponse(result.Order))
}

// GetDownloadLink issues a short-lived signed token for a completed order's
// document bundle.
// POST /api/v1/orders/:id/download
func (h *OrderHandler) GetDownloadLink(c *gin.Context) {
	orderSID, err := utils.ParseSIDParam(c, "id", id.PrefixOrder, "order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.downloadOrderUC.Execute(c.Request.Context(), orderUsecases.DownloadOrderCommand{
		OrderSID:      orderSID,
		RequesterID:   c.GetUint(constants.ContextKeyUserID),
		RequesterRole: authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole)),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", DownloadLinkResponse{
		OrderID:     result.Order.SID(),
		PlanID:      result.Plan.SID(),
		PlanTitle:   result.Plan.Title(),
		Tier:        result.Order.Tier().String(),
		Token:       result.Token,
		DownloadURL: "/api/v1/downloads?token=" + result.Token,
		ExpiresAt:   result.ExpiresAt,
	})
}
