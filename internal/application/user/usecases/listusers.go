package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

type ListUsersCommand struct {
	Page     int
	PageSize int
}

type ListUsersResult struct {
	Users      []*user.User
	Total      int64
	Pagination utils.Pagination
}

// ListUsersUseCase pages through accounts for the back office.
type ListUsersUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.UserRepository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, cmd ListUsersCommand) (*ListUsersResult, error) {
	pagination := utils.ValidatePagination(cmd.Page, cmd.PageSize)

	users, total, err := uc.userRepo.List(ctx, pagination.Offset(), pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users")
	}

	return &ListUsersResult{
		Users:      users,
		Total:      total,
		Pagination: pagination,
	}, nil
}
