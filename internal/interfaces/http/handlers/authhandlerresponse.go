package handlers

import (
	"time"

	userUsecases "github.com/planhaus/planhaus/internal/application/user/usecases"
	"github.com/planhaus/planhaus/internal/domain/user"
)

// UserResponse is the account payload shared by auth and profile endpoints.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// SessionResponse pairs an account with its issued tokens.
type SessionResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.SID(),
		Email:       u.Email(),
		Name:        u.Name(),
		Role:        u.Role().String(),
		Status:      string(u.Status()),
		LastLoginAt: u.LastLoginAt(),
		CreatedAt:   u.CreatedAt(),
	}
}

func toSessionResponse(u *user.User, tokens *userUsecases.TokenPair) SessionResponse {
	return SessionResponse{
		User:         toUserResponse(u),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	}
}
