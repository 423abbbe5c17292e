package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/shared/authorization"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type UpdateRoleCommand struct {
	ActorID   uint
	ActorRole authorization.UserRole
	UserSID   string
	Role      string
}

type UpdateRoleResult struct {
	User *user.User
}

// RoleGrants keeps the authorization policy's role groupings in step with
// role changes, so a promotion takes effect without a restart.
type RoleGrants interface {
	AddRoleForUser(userSID string, role string) error
	DeleteRoleForUser(userSID string, role string) error
}

// UpdateRoleUseCase changes another account's role. Only super admins may do
// this, and they cannot demote themselves, so the system always keeps at
// least one super admin.
type UpdateRoleUseCase struct {
	userRepo   user.UserRepository
	roleGrants RoleGrants
	logger     logger.Interface
}

func NewUpdateRoleUseCase(userRepo user.UserRepository, roleGrants RoleGrants, logger logger.Interface) *UpdateRoleUseCase {
	return &UpdateRoleUseCase{userRepo: userRepo, roleGrants: roleGrants, logger: logger}
}

func (uc *UpdateRoleUseCase) Execute(ctx context.Context, cmd UpdateRoleCommand) (*UpdateRoleResult, error) {
	if !cmd.ActorRole.IsSuperAdmin() {
		return nil, errors.NewForbiddenError("only super admins can change roles")
	}

	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, errors.NewValidationError("invalid role", cmd.Role)
	}

	u, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_sid", cmd.UserSID)
		return nil, errors.NewInternalError("failed to update role")
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	if u.ID() == cmd.ActorID && !role.IsSuperAdmin() {
		return nil, errors.NewValidationError("super admins cannot demote themselves")
	}

	previousRole := u.Role()

	if err := u.ChangeRole(role); err != nil {
		return nil, errors.NewValidationError("invalid role", err.Error())
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update role", "error", err, "user_sid", u.SID())
		return nil, errors.NewInternalError("failed to update role")
	}

	uc.syncRoleGrants(u.SID(), previousRole, role)

	uc.logger.Infow("role changed", "user_sid", u.SID(), "role", role, "actor_id", cmd.ActorID)

	return &UpdateRoleResult{User: u}, nil
}

// syncRoleGrants updates the policy grouping for the changed account. Only
// admin roles carry a grouping; the account record stays authoritative, so a
// failed grant is logged rather than rolled back.
func (uc *UpdateRoleUseCase) syncRoleGrants(userSID string, previous, current authorization.UserRole) {
	if uc.roleGrants == nil || previous == current {
		return
	}

	if previous.IsAdmin() {
		if err := uc.roleGrants.DeleteRoleForUser(userSID, previous.String()); err != nil {
			uc.logger.Errorw("failed to remove role grant", "error", err, "user_sid", userSID, "role", previous)
		}
	}
	if current.IsAdmin() {
		if err := uc.roleGrants.AddRoleForUser(userSID, current.String()); err != nil {
			uc.logger.Errorw("failed to add role grant", "error", err, "user_sid", userSID, "role", current)
		}
	}
}
