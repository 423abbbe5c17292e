package usecases

import (
	"time"

	"github.com/planhaus/planhaus/internal/domain/user"
)

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenPair is an issued access/refresh token set.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// TokenIssuer mints signed session tokens for an authenticated user.
type TokenIssuer interface {
	IssueTokens(u *user.User) (*TokenPair, error)
}
