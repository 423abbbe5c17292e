package user

import "context"

// UserRepository persists user aggregates. Lookups return (nil, nil) when no
// user matches.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID uint) (*User, error)
	GetBySID(ctx context.Context, sid string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, offset, limit int) ([]*User, int64, error)
}
