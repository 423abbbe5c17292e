package http

import (
	"time"

	adminUsecases "github.com/planhaus/planhaus/internal/application/admin/usecases"
	catalogUsecases "github.com/planhaus/planhaus/internal/application/catalog/usecases"
	checkoutUsecases "github.com/planhaus/planhaus/internal/application/checkout/usecases"
	favoriteUsecases "github.com/planhaus/planhaus/internal/application/favorite/usecases"
	orderUsecases "github.com/planhaus/planhaus/internal/application/order/usecases"
	paymentUsecases "github.com/planhaus/planhaus/internal/application/payment/usecases"
	userUsecases "github.com/planhaus/planhaus/internal/application/user/usecases"
	"github.com/planhaus/planhaus/internal/shared/services/markdown"
)

// downloadLinkTTL bounds how long an issued download link stays valid.
const downloadLinkTTL = 15 * time.Minute

// allUseCases groups every application use case served over HTTP or by the
// background workers.
type allUseCases struct {
	// catalog
	listPlans     *catalogUsecases.ListPlansUseCase
	getPlan       *catalogUsecases.GetPlanUseCase
	createPlan    *catalogUsecases.CreatePlanUseCase
	updatePlan    *catalogUsecases.UpdatePlanUseCase
	setPlanStatus *catalogUsecases.SetPlanStatusUseCase
	deletePlan    *catalogUsecases.DeletePlanUseCase

	// checkout and payments
	beginCheckout     *checkoutUsecases.BeginCheckoutUseCase
	initiatePayment   *paymentUsecases.InitiatePaymentUseCase
	confirmPayment    *paymentUsecases.ConfirmPaymentUseCase
	reconcilePayments *paymentUsecases.ReconcilePaymentsUseCase

	// orders
	listOrders      *orderUsecases.ListOrdersUseCase
	getOrder        *orderUsecases.GetOrderUseCase
	downloadOrder   *orderUsecases.DownloadOrderUseCase
	adminListOrders *orderUsecases.AdminListOrdersUseCase

	// favorites
	addFavorite    *favoriteUsecases.AddFavoriteUseCase
	removeFavorite *favoriteUsecases.RemoveFavoriteUseCase
	listFavorites  *favoriteUsecases.ListFavoritesUseCase

	// accounts
	register      *userUsecases.RegisterUseCase
	login         *userUsecases.LoginUseCase
	getProfile    *userUsecases.GetProfileUseCase
	updateProfile *userUsecases.UpdateProfileUseCase
	listUsers     *userUsecases.ListUsersUseCase
	updateRole    *userUsecases.UpdateRoleUseCase

	// back office
	getSalesStats *adminUsecases.GetSalesStatsUseCase
}

func (c *Container) initUseCases() {
	markdownSvc := markdown.NewService()
	intentTTL := time.Duration(c.cfg.Checkout.IntentTTLMinutes) * time.Minute
	log := c.log

	confirmPayment := paymentUsecases.NewConfirmPaymentUseCase(c.repos.orders, c.gateway, c.receiptSender, log.Named("confirm_payment"))

	c.ucs = &allUseCases{
		listPlans:     catalogUsecases.NewListPlansUseCase(c.repos.plans, log.Named("list_plans")),
		getPlan:       catalogUsecases.NewGetPlanUseCase(c.repos.plans, markdownSvc, log.Named("get_plan")),
		createPlan:    catalogUsecases.NewCreatePlanUseCase(c.repos.plans, log.Named("create_plan")),
		updatePlan:    catalogUsecases.NewUpdatePlanUseCase(c.repos.plans, log.Named("update_plan")),
		setPlanStatus: catalogUsecases.NewSetPlanStatusUseCase(c.repos.plans, log.Named("set_plan_status")),
		deletePlan:    catalogUsecases.NewDeletePlanUseCase(c.repos.plans, c.repos.orders, log.Named("delete_plan")),

		beginCheckout: checkoutUsecases.NewBeginCheckoutUseCase(c.repos.plans, c.intentStore, intentTTL, log.Named("begin_checkout")),
		initiatePayment: paymentUsecases.NewInitiatePaymentUseCase(
			c.repos.orders,
			c.repos.plans,
			c.intentStore,
			c.gateway,
			log.Named("initiate_payment"),
			paymentUsecases.PaymentConfig{
				CallbackURL: c.cfg.Payment.CallbackURL,
				Currency:    c.cfg.Payment.Currency,
			},
		),
		confirmPayment:    confirmPayment,
		reconcilePayments: paymentUsecases.NewReconcilePaymentsUseCase(c.repos.orders, confirmPayment, log.Named("reconcile_payments")),

		listOrders:      orderUsecases.NewListOrdersUseCase(c.repos.orders, log.Named("list_orders")),
		getOrder:        orderUsecases.NewGetOrderUseCase(c.repos.orders, log.Named("get_order")),
		downloadOrder:   orderUsecases.NewDownloadOrderUseCase(c.repos.orders, c.repos.plans, c.jwtSvc, downloadLinkTTL, log.Named("download_order")),
		adminListOrders: orderUsecases.NewAdminListOrdersUseCase(c.repos.orders, log.Named("admin_list_orders")),

		addFavorite:    favoriteUsecases.NewAddFavoriteUseCase(c.repos.favorites, c.repos.plans, log.Named("add_favorite")),
		removeFavorite: favoriteUsecases.NewRemoveFavoriteUseCase(c.repos.favorites, c.repos.plans, log.Named("remove_favorite")),
		listFavorites:  favoriteUsecases.NewListFavoritesUseCase(c.repos.favorites, c.repos.plans, log.Named("list_favorites")),

		register:      userUsecases.NewRegisterUseCase(c.repos.users, c.hasher, c.jwtSvc, log.Named("register")),
		login:         userUsecases.NewLoginUseCase(c.repos.users, c.hasher, c.jwtSvc, log.Named("login")),
		getProfile:    userUsecases.NewGetProfileUseCase(c.repos.users, log.Named("get_profile")),
		updateProfile: userUsecases.NewUpdateProfileUseCase(c.repos.users, c.hasher, log.Named("update_profile")),
		listUsers:     userUsecases.NewListUsersUseCase(c.repos.users, log.Named("list_users")),
		updateRole:    userUsecases.NewUpdateRoleUseCase(c.repos.users, c.enforcer, log.Named("update_role")),

		getSalesStats: adminUsecases.NewGetSalesStatsUseCase(c.repos.orders, log.Named("sales_stats")),
	}
}
