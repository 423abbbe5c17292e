package http

import (
	"github.com/planhaus/planhaus/internal/interfaces/http/handlers"
)

// allHandlers groups the HTTP handler set.
type allHandlers struct {
	plans      *handlers.PlanHandler
	adminPlans *handlers.AdminPlanHandler
	checkout   *handlers.CheckoutHandler
	payments   *handlers.PaymentHandler
	orders     *handlers.OrderHandler
	downloads  *handlers.DownloadHandler
	favorites  *handlers.FavoriteHandler
	auth       *handlers.AuthHandler
	profile    *handlers.ProfileHandler
	adminUsers *handlers.AdminUserHandler
	adminOrders *handlers.AdminOrderHandler
}

func (c *Container) initHandlers() {
	log := c.log

	c.hdlrs = &allHandlers{
		plans:      handlers.NewPlanHandler(c.ucs.listPlans, c.ucs.getPlan, c.repos.favorites, log.Named("plan_handler")),
		adminPlans: handlers.NewAdminPlanHandler(c.ucs.listPlans, c.ucs.getPlan, c.ucs.createPlan, c.ucs.updatePlan, c.ucs.setPlanStatus, c.ucs.deletePlan, log.Named("admin_plan_handler")),
		checkout:   handlers.NewCheckoutHandler(c.ucs.beginCheckout, log.Named("checkout_handler")),
		payments: handlers.NewPaymentHandler(
			c.ucs.initiatePayment,
			c.ucs.confirmPayment,
			c.cfg.Payment.SecretKey,
			c.cfg.Server.StorefrontURL,
			log.Named("payment_handler"),
		),
		orders:      handlers.NewOrderHandler(c.ucs.listOrders, c.ucs.getOrder, c.ucs.downloadOrder, log.Named("order_handler")),
		downloads:   handlers.NewDownloadHandler(c.jwtSvc, c.repos.plans, c.assetsBaseURL, log.Named("download_handler")),
		favorites:   handlers.NewFavoriteHandler(c.ucs.addFavorite, c.ucs.removeFavorite, c.ucs.listFavorites, log.Named("favorite_handler")),
		auth:        handlers.NewAuthHandler(c.ucs.register, c.ucs.login, c.jwtSvc, c.repos.users, log.Named("auth_handler")),
		profile:     handlers.NewProfileHandler(c.ucs.getProfile, c.ucs.updateProfile, log.Named("profile_handler")),
		adminUsers:  handlers.NewAdminUserHandler(c.ucs.listUsers, c.ucs.updateRole, log.Named("admin_user_handler")),
		adminOrders: handlers.NewAdminOrderHandler(c.ucs.adminListOrders, c.ucs.getSalesStats, log.Named("admin_order_handler")),
	}
}
