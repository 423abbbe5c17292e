package permission

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/planhaus/planhaus/internal/shared/logger"
)

// PermissionSync mirrors user role assignments from the users table into the
// casbin grouping rules, so policy checks see role changes made through the
// back office.
type PermissionSync struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPermissionSync(db *gorm.DB, logger logger.Interface) *PermissionSync {
	return &PermissionSync{
		db:     db,
		logger: logger,
	}
}

func (s *PermissionSync) SyncToCasbin() error {
	s.logger.Info("syncing user roles to Casbin...")

	query := `
		INSERT INTO casbin_rule (ptype, v0, v1, v2)
		SELECT DISTINCT
			'g',
			u.sid,
			u.role,
			''
		FROM users u
		WHERE u.role IN ('admin', 'super_admin')
		AND NOT EXISTS (
			SELECT 1 FROM casbin_rule cr
			WHERE cr.ptype = 'g'
			AND cr.v0 = u.sid
			AND cr.v1 = u.role
		)
	`

	result := s.db.Exec(query)
	if result.Error != nil {
		return fmt.Errorf("failed to sync user roles: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		s.logger.Infow("synced user roles to Casbin", "count", result.RowsAffected)
	}

	s.logger.Info("user roles synced to Casbin successfully")
	return nil
}
