package migration

import (
	"github.com/planhaus/planhaus/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.PlanModel{},
		&models.OrderModel{},
		&models.FavoriteModel{},
	}
}
