package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userUsecases "github.com/planhaus/planhaus/internal/application/user/usecases"
	"github.com/planhaus/planhaus/internal/shared/constants"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// ProfileHandler serves the signed-in user's own account.
type ProfileHandler struct {
	getProfileUC    *userUsecases.GetProfileUseCase
	updateProfileUC *userUsecases.UpdateProfileUseCase
	logger          logger.Interface
}

func NewProfileHandler(
	getProfileUC *userUsecases.GetProfileUseCase,
	updateProfileUC *userUsecases.UpdateProfileUseCase,
	logger logger.Interface,
) *ProfileHandler {
	return &ProfileHandler{
		getProfileUC:    getProfileUC,
		updateProfileUC: updateProfileUC,
		logger:          logger,
	}
}

type updateProfileRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	NewPassword *string `json:"new_password" binding:"omitempty,min=8"`
	OldPassword *string `json:"old_password"`
}

// GetProfile returns the authenticated user's account.
// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	result, err := h.getProfileUC.Execute(c.Request.Context(), userUsecases.GetProfileCommand{
		UserID: c.GetUint(constants.ContextKeyUserID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toUserResponse(result.User))
}

// UpdateProfile changes the display name and/or password. A password change
// requires the current password.
// PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.updateProfileUC.Execute(c.Request.Context(), userUsecases.UpdateProfileCommand{
		UserID:      c.GetUint(constants.ContextKeyUserID),
		Name:        req.Name,
		NewPassword: req.NewPassword,
		OldPassword: req.OldPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "profile updated", toUserResponse(result.User))
}
