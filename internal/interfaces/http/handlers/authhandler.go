package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userUsecases "github.com/planhaus/planhaus/internal/application/user/usecases"
	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/infrastructure/auth"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// AuthHandler serves registration, sign-in, and token refresh.
type AuthHandler struct {
	registerUC *userUsecases.RegisterUseCase
	loginUC    *userUsecases.LoginUseCase
	jwtService *auth.JWTService
	userRepo   user.UserRepository
	logger     logger.Interface
}

func NewAuthHandler(
	registerUC *userUsecases.RegisterUseCase,
	loginUC *userUsecases.LoginUseCase,
	jwtService *auth.JWTService,
	userRepo user.UserRepository,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     logger,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register creates a customer account and signs it in.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), userUsecases.RegisterCommand{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toSessionResponse(result.User, result.Tokens), "account created")
}

// Login authenticates by email and password.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), userUsecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "signed in", toSessionResponse(result.User, result.Tokens))
}

// Refresh exchanges a valid refresh token for a fresh token pair. The
// account is re-checked so suspended users cannot refresh their way back in.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	claims, err := h.jwtService.Refresh(req.RefreshToken)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	u, err := h.userRepo.GetBySID(c.Request.Context(), claims.UserSID)
	if err != nil {
		h.logger.Errorw("failed to resolve refresh subject", "error", err, "user_sid", claims.UserSID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to refresh session")
		return
	}
	if u == nil || !u.IsActive() {
		utils.ErrorResponse(c, http.StatusUnauthorized, "account is not available")
		return
	}

	tokens, err := h.jwtService.IssueTokens(u)
	if err != nil {
		h.logger.Errorw("failed to issue tokens", "error", err, "user_sid", u.SID())
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to refresh session")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "session refreshed", toSessionResponse(u, tokens))
}
