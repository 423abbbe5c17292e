// Package favorite tracks which catalog plans a user has saved.
package favorite

import (
	"fmt"
	"time"

	"github.com/planhaus/planhaus/internal/shared/biztime"
)

// Favorite links a user to a saved plan. The pair is unique; saving twice is
// a no-op at the repository level.
type Favorite struct {
	favoriteID uint
	userID     uint
	planID     uint
	createdAt  time.Time
}

// NewFavorite records a user saving a plan.
func NewFavorite(userID, planID uint) (*Favorite, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}

	return &Favorite{
		userID:    userID,
		planID:    planID,
		createdAt: biztime.NowUTC(),
	}, nil
}

// ReconstructFavorite rebuilds a favorite from persistence.
func ReconstructFavorite(favoriteID, userID, planID uint, createdAt time.Time) (*Favorite, error) {
	if favoriteID == 0 {
		return nil, fmt.Errorf("favorite ID is required")
	}

	return &Favorite{
		favoriteID: favoriteID,
		userID:     userID,
		planID:     planID,
		createdAt:  createdAt,
	}, nil
}

func (f *Favorite) ID() uint             { return f.favoriteID }
func (f *Favorite) UserID() uint         { return f.userID }
func (f *Favorite) PlanID() uint         { return f.planID }
func (f *Favorite) CreatedAt() time.Time { return f.createdAt }

// GetOwnerID implements authorization.OwnedResource.
func (f *Favorite) GetOwnerID() uint { return f.userID }

// SetID assigns the persistence ID after the initial insert.
func (f *Favorite) SetID(favoriteID uint) error {
	if f.favoriteID != 0 {
		return fmt.Errorf("favorite ID already set")
	}
	if favoriteID == 0 {
		return fmt.Errorf("favorite ID cannot be zero")
	}
	f.favoriteID = favoriteID
	return nil
}
