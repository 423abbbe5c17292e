package http

import (
	"github.com/planhaus/planhaus/internal/domain/catalog"
	"github.com/planhaus/planhaus/internal/domain/favorite"
	"github.com/planhaus/planhaus/internal/domain/order"
	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/infrastructure/repository"
)

// repositories groups the persistence ports handed to the use cases.
type repositories struct {
	plans     catalog.PlanRepository
	orders    order.OrderRepository
	users     user.UserRepository
	favorites favorite.FavoriteRepository
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		plans:     repository.NewPlanRepository(c.db, c.log.Named("plan_repo")),
		orders:    repository.NewOrderRepository(c.db, c.log.Named("order_repo")),
		users:     repository.NewUserRepository(c.db, c.log.Named("user_repo")),
		favorites: repository.NewFavoriteRepository(c.db, c.log.Named("favorite_repo")),
	}
}
