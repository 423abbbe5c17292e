package models

import (
	"time"

	"github.com/planhaus/planhaus/internal/shared/constants"
)

// UserModel represents the database persistence model for user accounts.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"uniqueIndex;not null;size:32"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `gorm:"not null;size:255"`
	Name         string `gorm:"size:100"`
	Role         string `gorm:"not null;size:20;default:user"`
	Status       string `gorm:"not null;size:20;default:active"`
	LastLoginAt  *time.Time
	Version      int `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
