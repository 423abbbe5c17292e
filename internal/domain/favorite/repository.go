package favorite

import "context"

// FavoriteRepository persists saved plans. Add is idempotent for an existing
// user/plan pair.
type FavoriteRepository interface {
	Add(ctx context.Context, f *Favorite) error
	Remove(ctx context.Context, userID, planID uint) error
	Exists(ctx context.Context, userID, planID uint) (bool, error)
	ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]*Favorite, int64, error)
	ListPlanIDsByUserID(ctx context.Context, userID uint) ([]uint, error)
}
