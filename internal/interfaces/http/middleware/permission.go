package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planhaus/planhaus/internal/infrastructure/permission"
	"github.com/planhaus/planhaus/internal/shared/constants"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// PermissionMiddleware enforces back-office policies through the Casbin
// enforcer. Subjects are user SIDs; role grants come from grouping policies.
type PermissionMiddleware struct {
	enforcer *permission.Enforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer *permission.Enforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission aborts unless the authenticated user may perform action
// on resource. Must run after AuthMiddleware.RequireAuth.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userSID := c.GetString(constants.ContextKeyUserSID)
		if userSID == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		allowed, err := m.enforcer.Enforce(userSID, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "user_sid", userSID, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_sid", userSID, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
