package usecases

import (
	"context"
	"strings"

	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	User   *user.User
	Tokens *TokenPair
}

// LoginUseCase authenticates by email and password. Unknown emails and wrong
// passwords return the same error.
type LoginUseCase struct {
	userRepo user.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(userRepo user.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, errors.NewInternalError("failed to sign in")
	}
	if u == nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	if err := uc.hasher.Compare(u.PasswordHash(), cmd.Password); err != nil {
		uc.logger.Warnw("failed sign-in attempt", "user_sid", u.SID())
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	if !u.IsActive() {
		return nil, errors.NewForbiddenError("account is suspended")
	}

	u.RecordLogin()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Warnw("failed to record login time", "error", err, "user_sid", u.SID())
	}

	tokens, err := uc.tokens.IssueTokens(u)
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "error", err, "user_sid", u.SID())
		return nil, errors.NewInternalError("failed to sign in")
	}

	uc.logger.Infow("user signed in", "user_sid", u.SID())

	return &LoginResult{User: u, Tokens: tokens}, nil
}
