// Package user contains the account aggregate for the storefront.
package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/planhaus/planhaus/internal/shared/authorization"
	"github.com/planhaus/planhaus/internal/shared/biztime"
	"github.com/planhaus/planhaus/internal/shared/id"
)

// UserStatus represents the lifecycle state of an account.
type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusSuspended UserStatus = "suspended"
)

// User is the account aggregate. Role controls access to the admin back
// office; only super admins may change another user's role.
type User struct {
	userID       uint
	sid          string
	email        string
	passwordHash string
	name         string
	role         authorization.UserRole
	status       UserStatus
	lastLoginAt  *time.Time
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates an active customer account. The password hash must already
// be computed by the caller; the aggregate never sees plaintext passwords.
func NewUser(email, passwordHash, name string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address: %s", email)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	now := biztime.NowUTC()
	return &User{
		sid:          id.NewUserSID(),
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		role:         authorization.RoleUser,
		status:       StatusActive,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUserParams carries persisted state back into the aggregate.
type ReconstructUserParams struct {
	ID           uint
	SID          string
	Email        string
	PasswordHash string
	Name         string
	Role         authorization.UserRole
	Status       UserStatus
	LastLoginAt  *time.Time
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReconstructUser rebuilds a user from persistence without side effects.
func ReconstructUser(params ReconstructUserParams) (*User, error) {
	if params.ID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if params.Email == "" {
		return nil, fmt.Errorf("email is required")
	}

	return &User{
		userID:       params.ID,
		sid:          params.SID,
		email:        params.Email,
		passwordHash: params.PasswordHash,
		name:         params.Name,
		role:         params.Role,
		status:       params.Status,
		lastLoginAt:  params.LastLoginAt,
		version:      params.Version,
		createdAt:    params.CreatedAt,
		updatedAt:    params.UpdatedAt,
	}, nil
}

func (u *User) ID() uint                      { return u.userID }
func (u *User) SID() string                   { return u.sid }
func (u *User) Email() string                 { return u.email }
func (u *User) PasswordHash() string          { return u.passwordHash }
func (u *User) Name() string                  { return u.name }
func (u *User) Role() authorization.UserRole  { return u.role }
func (u *User) Status() UserStatus            { return u.status }
func (u *User) LastLoginAt() *time.Time       { return u.lastLoginAt }
func (u *User) Version() int                  { return u.version }
func (u *User) CreatedAt() time.Time          { return u.createdAt }
func (u *User) UpdatedAt() time.Time          { return u.updatedAt }

// SetID assigns the persistence ID after the initial insert.
func (u *User) SetID(userID uint) error {
	if u.userID != 0 {
		return fmt.Errorf("user ID already set")
	}
	if userID == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.userID = userID
	return nil
}

// IsActive reports whether the account may sign in and transact.
func (u *User) IsActive() bool {
	return u.status == StatusActive
}

// UpdateProfile changes the display name.
func (u *User) UpdateProfile(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	u.name = name
	u.touch()
	return nil
}

// ChangePasswordHash replaces the stored password hash.
func (u *User) ChangePasswordHash(hash string) {
	u.passwordHash = hash
	u.touch()
}

// ChangeRole assigns a new role. Callers enforce that only super admins may
// invoke this.
func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.role = role
	u.touch()
	return nil
}

// Suspend blocks the account from signing in.
func (u *User) Suspend() error {
	if u.status == StatusSuspended {
		return fmt.Errorf("user is already suspended")
	}
	u.status = StatusSuspended
	u.touch()
	return nil
}

// Reactivate restores a suspended account.
func (u *User) Reactivate() error {
	if u.status == StatusActive {
		return fmt.Errorf("user is already active")
	}
	u.status = StatusActive
	u.touch()
	return nil
}

// RecordLogin stamps the last successful sign-in time.
func (u *User) RecordLogin() {
	now := biztime.NowUTC()
	u.lastLoginAt = &now
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = biztime.NowUTC()
	u.version++
}
