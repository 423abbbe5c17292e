package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/infrastructure/auth"
	"github.com/planhaus/planhaus/internal/shared/constants"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// AuthMiddleware authenticates requests from the Authorization header and
// resolves the token subject to a live account. Suspended accounts are
// rejected even when their token is still valid.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   user.UserRepository
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, userRepo user.UserRepository, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// RequireAuth aborts with 401 unless the request carries a valid access
// token belonging to an active account.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		u, ok := m.resolveUser(c, token)
		if !ok {
			c.Abort()
			return
		}

		setUserContext(c, u)
		c.Next()
	}
}

// OptionalAuth populates the user context when a valid token is present and
// continues anonymously otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.VerifyAccess(token)
		if err != nil {
			c.Next()
			return
		}

		u, err := m.userRepo.GetBySID(c.Request.Context(), claims.UserSID)
		if err != nil || u == nil || !u.IsActive() {
			c.Next()
			return
		}

		setUserContext(c, u)
		c.Next()
	}
}

func (m *AuthMiddleware) resolveUser(c *gin.Context, token string) (*user.User, bool) {
	claims, err := m.jwtService.VerifyAccess(token)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return nil, false
	}

	u, err := m.userRepo.GetBySID(c.Request.Context(), claims.UserSID)
	if err != nil {
		m.logger.Errorw("failed to resolve token subject", "error", err, "user_sid", claims.UserSID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "authentication failed")
		return nil, false
	}
	if u == nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "account no longer exists")
		return nil, false
	}
	if !u.IsActive() {
		utils.ErrorResponse(c, http.StatusForbidden, "account is suspended")
		return nil, false
	}

	return u, true
}

func setUserContext(c *gin.Context, u *user.User) {
	c.Set(constants.ContextKeyUserID, u.ID())
	c.Set(constants.ContextKeyUserSID, u.SID())
	c.Set(constants.ContextKeyUserRole, u.Role().String())
	c.Set(constants.ContextKeyUserEmail, u.Email())
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
