package models

import (
	"time"

	"github.com/planhaus/planhaus/internal/shared/constants"
)

// FavoriteModel represents the database persistence model for saved plans.
// A user can save a given plan at most once.
type FavoriteModel struct {
	ID        uint `gorm:"primarykey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_favorites_user_plan;index"`
	PlanID    uint `gorm:"not null;uniqueIndex:idx_favorites_user_plan"`
	CreatedAt time.Time
}

func (FavoriteModel) TableName() string {
	return constants.TableFavorites
}
