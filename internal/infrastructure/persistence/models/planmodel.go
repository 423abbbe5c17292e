package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/planhaus/planhaus/internal/shared/constants"
)

// PlanModel represents the database persistence model for catalog plans.
// This is the anti-corruption layer between domain and database.
type PlanModel struct {
	ID            uint   `gorm:"primarykey"`
	SID           string `gorm:"uniqueIndex;not null;size:32"`
	Title         string `gorm:"not null;size:200"`
	Description   string `gorm:"type:text"`
	Category      string `gorm:"not null;size:30;index"`
	Bedrooms      uint   `gorm:"not null;default:0"`
	Bathrooms     uint   `gorm:"not null;default:0"`
	FloorAreaSqm  uint   `gorm:"not null;default:0"`
	BasicPrice    uint64 `gorm:"not null"`
	StandardPrice uint64 `gorm:"not null"`
	PremiumPrice  uint64 `gorm:"not null"`
	Currency      string `gorm:"not null;size:3"`
	Featured      bool   `gorm:"not null;default:false;index"`
	Status        string `gorm:"not null;size:20;default:draft;index"`
	PrimaryImage  string `gorm:"size:500"`
	GalleryImages datatypes.JSON
	Version       int `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PlanModel) TableName() string {
	return constants.TablePlans
}
