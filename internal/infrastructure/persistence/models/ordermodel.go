package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/planhaus/planhaus/internal/shared/constants"
)

// OrderModel represents the database persistence model for purchase orders.
type OrderModel struct {
	ID                uint    `gorm:"primaryKey"`
	SID               string  `gorm:"uniqueIndex;not null;size:32"`
	UserID            uint    `gorm:"index;not null"`
	PlanID            uint    `gorm:"index;not null"`
	Tier              string  `gorm:"size:20;not null"`
	Amount            int64   `gorm:"not null"`
	Currency          string  `gorm:"size:3;not null"`
	Status            string  `gorm:"size:20;not null;index"`
	ProviderReference *string `gorm:"uniqueIndex;size:128"`
	PayerEmail        string  `gorm:"size:255;not null"`
	FailureReason     *string `gorm:"size:500"`
	PaidAt            *time.Time
	Metadata          JSONB `gorm:"type:json"`
	Version           int   `gorm:"default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time `gorm:"index"`
}

func (OrderModel) TableName() string {
	return constants.TableOrders
}

type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(map[string]interface{})
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, j)
}
