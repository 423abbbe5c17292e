package permission

import (
	"fmt"

	"github.com/planhaus/planhaus/internal/shared/logger"
)

// InitStorefrontPermissions seeds the back-office policies. Admins manage
// the catalog and view sales; super admins additionally manage accounts and
// roles via the grouping policy.
func InitStorefrontPermissions(e *Enforcer, log logger.Interface) error {
	policies := [][]string{
		{"admin", "plan", "create"},
		{"admin", "plan", "read"},
		{"admin", "plan", "update"},
		{"admin", "plan", "delete"},
		{"admin", "plan", "publish"},
		{"admin", "order", "read"},
		{"admin", "stats", "read"},

		{"super_admin", "user", "read"},
		{"super_admin", "user", "update"},
		{"super_admin", "role", "update"},
	}

	for _, policy := range policies {
		if err := e.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			log.Errorw("failed to add storefront permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	// Super admins inherit everything admins can do.
	if err := e.AddRoleForUser("super_admin", "admin"); err != nil {
		return fmt.Errorf("failed to link super_admin to admin: %w", err)
	}

	log.Info("storefront permissions initialized successfully")
	return nil
}
