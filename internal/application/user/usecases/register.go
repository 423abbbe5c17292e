package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type RegisterCommand struct {
	Email    string
	Password string
	Name     string
}

type RegisterResult struct {
	User   *user.User
	Tokens *TokenPair
}

const minPasswordLength = 8

// RegisterUseCase creates a customer account and signs it in. Registration
// mid-checkout keeps the checkout intent alive because the intent lives
// server-side keyed by its own ID, not by session.
type RegisterUseCase struct {
	userRepo user.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewRegisterUseCase(userRepo user.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger logger.Interface) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	if len(cmd.Password) < minPasswordLength {
		return nil, errors.NewValidationError("password must be at least 8 characters")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to check existing email", "error", err)
		return nil, errors.NewInternalError("failed to register")
	}
	if existing != nil {
		return nil, errors.NewConflictError("an account with this email already exists")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to register")
	}

	u, err := user.NewUser(cmd.Email, hash, cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError("invalid registration", err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("an account with this email already exists")
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, errors.NewInternalError("failed to register")
	}

	tokens, err := uc.tokens.IssueTokens(u)
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "error", err, "user_sid", u.SID())
		return nil, errors.NewInternalError("failed to register")
	}

	uc.logger.Infow("user registered", "user_sid", u.SID())

	return &RegisterResult{User: u, Tokens: tokens}, nil
}
