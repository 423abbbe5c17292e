package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userUsecases "github.com/planhaus/planhaus/internal/application/user/usecases"
	"github.com/planhaus/planhaus/internal/shared/authorization"
	"github.com/planhaus/planhaus/internal/shared/constants"
	"github.com/planhaus/planhaus/internal/shared/id"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// AdminUserHandler manages accounts from the back office.
type AdminUserHandler struct {
	listUsersUC  *userUsecases.ListUsersUseCase
	updateRoleUC *userUsecases.UpdateRoleUseCase
	logger       logger.Interface
}

func NewAdminUserHandler(
	listUsersUC *userUsecases.ListUsersUseCase,
	updateRoleUC *userUsecases.UpdateRoleUseCase,
	logger logger.Interface,
) *AdminUserHandler {
	return &AdminUserHandler{
		listUsersUC:  listUsersUC,
		updateRoleUC: updateRoleUC,
		logger:       logger,
	}
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ListUsers pages through all accounts.
// GET /api/v1/admin/users
func (h *AdminUserHandler) ListUsers(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listUsersUC.Execute(c.Request.Context(), userUsecases.ListUsersCommand{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]UserResponse, 0, len(result.Users))
	for _, u := range result.Users {
		items = append(items, toUserResponse(u))
	}

	utils.ListSuccessResponse(c, items, result.Total, result.Pagination.Page, result.Pagination.PageSize)
}

// UpdateRole changes another account's role. Super admin only.
// PUT /api/v1/admin/users/:id/role
func (h *AdminUserHandler) UpdateRole(c *gin.Context) {
	userSID, err := utils.ParseSIDParam(c, "id", id.PrefixUser, "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.updateRoleUC.Execute(c.Request.Context(), userUsecases.UpdateRoleCommand{
		ActorID:   c.GetUint(constants.ContextKeyUserID),
		ActorRole: authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole)),
		UserSID:   userSID,
		Role:      req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "role updated", toUserResponse(result.User))
}
