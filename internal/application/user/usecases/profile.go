package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type GetProfileCommand struct {
	UserID uint
}

type GetProfileResult struct {
	User *user.User
}

// GetProfileUseCase returns the signed-in user's own account.
type GetProfileUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewGetProfileUseCase(userRepo user.UserRepository, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, cmd GetProfileCommand) (*GetProfileResult, error) {
	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", cmd.UserID)
		return nil, errors.NewInternalError("failed to get profile")
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return &GetProfileResult{User: u}, nil
}

type UpdateProfileCommand struct {
	UserID      uint
	Name        *string
	NewPassword *string
	// OldPassword must accompany NewPassword.
	OldPassword *string
}

type UpdateProfileResult struct {
	User *user.User
}

// UpdateProfileUseCase lets a user change their display name and password.
type UpdateProfileUseCase struct {
	userRepo user.UserRepository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewUpdateProfileUseCase(userRepo user.UserRepository, hasher PasswordHasher, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*UpdateProfileResult, error) {
	if cmd.Name == nil && cmd.NewPassword == nil {
		return nil, errors.NewValidationError("at least one field must be provided for update")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", cmd.UserID)
		return nil, errors.NewInternalError("failed to update profile")
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	if cmd.Name != nil {
		if err := u.UpdateProfile(*cmd.Name); err != nil {
			return nil, errors.NewValidationError("invalid profile update", err.Error())
		}
	}

	if cmd.NewPassword != nil {
		if cmd.OldPassword == nil {
			return nil, errors.NewValidationError("current password is required to change password")
		}
		if err := uc.hasher.Compare(u.PasswordHash(), *cmd.OldPassword); err != nil {
			return nil, errors.NewUnauthorizedError("current password is incorrect")
		}
		if len(*cmd.NewPassword) < minPasswordLength {
			return nil, errors.NewValidationError("password must be at least 8 characters")
		}
		hash, err := uc.hasher.Hash(*cmd.NewPassword)
		if err != nil {
			uc.logger.Errorw("failed to hash password", "error", err)
			return nil, errors.NewInternalError("failed to update profile")
		}
		u.ChangePasswordHash(hash)
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "error", err, "user_sid", u.SID())
		return nil, errors.NewInternalError("failed to update profile")
	}

	uc.logger.Infow("profile updated", "user_sid", u.SID())

	return &UpdateProfileResult{User: u}, nil
}
