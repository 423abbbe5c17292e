package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/planhaus/planhaus/internal/application/user/usecases"
	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/shared/authorization"
	"github.com/planhaus/planhaus/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess   TokenType = "access"
	TokenTypeRefresh  TokenType = "refresh"
	TokenTypeDownload TokenType = "download"
)

// Claims are the JWT claims carried by session tokens.
type Claims struct {
	UserSID   string                 `json:"user_sid"`
	Role      authorization.UserRole `json:"role"`
	TokenType TokenType              `json:"token_type"`
	jwt.RegisteredClaims
}

// DownloadClaims are the JWT claims carried by signed download links. They
// name the order and plan the link grants access to, not a user session.
type DownloadClaims struct {
	OrderSID  string    `json:"order_sid"`
	PlanSID   string    `json:"plan_sid"`
	Tier      string    `json:"tier"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies session tokens and download links with a
// shared HMAC secret.
type JWTService struct {
	secret           []byte
	accessExpMinutes int
	refreshExpDays   int
}

func NewJWTService(secret string, accessExpMinutes, refreshExpDays int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		refreshExpDays:   refreshExpDays,
	}
}

// IssueTokens mints an access/refresh token pair for an authenticated user.
func (s *JWTService) IssueTokens(u *user.User) (*usecases.TokenPair, error) {
	now := biztime.NowUTC()
	accessExp := now.Add(time.Duration(s.accessExpMinutes) * time.Minute)

	accessToken, err := s.signSessionToken(u, TokenTypeAccess, now, accessExp)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshExp := now.Add(time.Duration(s.refreshExpDays) * 24 * time.Hour)
	refreshToken, err := s.signSessionToken(u, TokenTypeRefresh, now, refreshExp)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &usecases.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExp,
	}, nil
}

func (s *JWTService) signSessionToken(u *user.User, tokenType TokenType, now, exp time.Time) (string, error) {
	claims := &Claims{
		UserSID:   u.SID(),
		Role:      u.Role(),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a session token string.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, s.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// VerifyAccess validates a session token and rejects non-access token types,
// so a refresh or download token can never authenticate a request.
func (s *JWTService) VerifyAccess(tokenString string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, fmt.Errorf("token is not an access token")
	}
	return claims, nil
}

// Refresh validates a refresh token and mints a new token pair. The caller is
// expected to discard the old refresh token (rotation).
func (s *JWTService) Refresh(refreshTokenString string) (*Claims, error) {
	claims, err := s.Verify(refreshTokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, fmt.Errorf("token is not a refresh token")
	}
	return claims, nil
}

// SignDownload mints a short-lived token granting access to a completed
// order's plan files for the purchased tier.
func (s *JWTService) SignDownload(orderSID, planSID, tier string, ttl time.Duration) (string, error) {
	if orderSID == "" || planSID == "" {
		return "", fmt.Errorf("order and plan identifiers are required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("ttl must be positive")
	}

	now := biztime.NowUTC()
	claims := &DownloadClaims{
		OrderSID:  orderSID,
		PlanSID:   planSID,
		Tier:      tier,
		TokenType: TokenTypeDownload,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign download token: %w", err)
	}
	return token, nil
}

// VerifyDownload parses and validates a download token string.
func (s *JWTService) VerifyDownload(tokenString string) (*DownloadClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &DownloadClaims{}, s.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse download token: %w", err)
	}

	claims, ok := token.Claims.(*DownloadClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid download token")
	}
	if claims.TokenType != TokenTypeDownload {
		return nil, fmt.Errorf("token is not a download token")
	}
	return claims, nil
}

// AccessExpMinutes returns the access token expiration time in minutes
func (s *JWTService) AccessExpMinutes() int {
	return s.accessExpMinutes
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return s.secret, nil
}
