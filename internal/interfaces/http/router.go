package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planhaus/planhaus/internal/infrastructure/ratelimit"
	"github.com/planhaus/planhaus/internal/interfaces/http/handlers"
	"github.com/planhaus/planhaus/internal/interfaces/http/middleware"
	"github.com/planhaus/planhaus/internal/shared/authorization"
)

// Rate limit scopes. Auth endpoints get a tight budget since they are the
// brute-force surface; the general API limit only catches runaway clients.
var (
	apiLimitConfig  = ratelimit.Config{RequestsPerMinute: 300, RequestsPerHour: 5000}
	authLimitConfig = ratelimit.Config{RequestsPerMinute: 10, RequestsPerHour: 100}
)

// SetupRoutes registers every route on the engine.
func (c *Container) SetupRoutes() {
	engine := c.engine

	handlers.RegisterValidations()

	engine.Use(middleware.Recovery(c.log.Named("recovery")))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(c.log.Named("http")))
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.RateLimit(c.rateLimiter, "api", apiLimitConfig, c.log))

	c.setupPublicRoutes(api)
	c.setupCustomerRoutes(api)
	c.setupAdminRoutes(api)
}

// setupPublicRoutes covers everything reachable without a session: the
// catalog, auth, checkout capture, and the payment gateway's entry points.
func (c *Container) setupPublicRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit(c.rateLimiter, "auth", authLimitConfig, c.log))
	{
		authGroup.POST("/register", c.hdlrs.auth.Register)
		authGroup.POST("/login", c.hdlrs.auth.Login)
		authGroup.POST("/refresh", c.hdlrs.auth.Refresh)
	}

	// Catalog browsing is public, but a signed-in visitor gets their saved
	// plans flagged in the responses.
	plans := api.Group("/plans")
	plans.Use(c.authMiddleware.OptionalAuth())
	{
		plans.GET("", c.hdlrs.plans.ListPlans)
		plans.GET("/:id", c.hdlrs.plans.GetPlan)
	}

	// Checkout intents are anonymous so a visitor can pick a plan before
	// signing in.
	api.POST("/checkout", c.hdlrs.checkout.BeginCheckout)

	// The callback is hit by the customer's browser returning from the
	// hosted payment page; the webhook by the gateway itself.
	api.GET("/payments/callback", c.hdlrs.payments.Callback)
	api.POST("/payments/webhook", c.hdlrs.payments.Webhook)

	// Download tokens carry their own entitlement; no session required.
	api.GET("/downloads", c.hdlrs.downloads.GetBundle)
}

func (c *Container) setupCustomerRoutes(api *gin.RouterGroup) {
	authed := api.Group("")
	authed.Use(c.authMiddleware.RequireAuth())
	{
		authed.POST("/payments", c.hdlrs.payments.InitiatePayment)

		authed.GET("/orders", c.hdlrs.orders.ListOrders)
		authed.GET("/orders/:id", c.hdlrs.orders.GetOrder)
		authed.POST("/orders/:id/download", c.hdlrs.orders.GetDownloadLink)

		authed.GET("/favorites", c.hdlrs.favorites.ListFavorites)
		authed.PUT("/favorites/:id", c.hdlrs.favorites.AddFavorite)
		authed.DELETE("/favorites/:id", c.hdlrs.favorites.RemoveFavorite)

		authed.GET("/profile", c.hdlrs.profile.GetProfile)
		authed.PUT("/profile", c.hdlrs.profile.UpdateProfile)
	}
}

func (c *Container) setupAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.Use(c.authMiddleware.RequireAuth(), authorization.RequireAdmin())
	{
		plans := admin.Group("/plans")
		{
			plans.GET("", c.hdlrs.adminPlans.ListPlans)
			plans.GET("/:id", c.hdlrs.adminPlans.GetPlan)
			plans.POST("", c.permissionMiddleware.RequirePermission("plan", "create"), c.hdlrs.adminPlans.CreatePlan)
			plans.PUT("/:id", c.permissionMiddleware.RequirePermission("plan", "update"), c.hdlrs.adminPlans.UpdatePlan)
			plans.PATCH("/:id/status", c.permissionMiddleware.RequirePermission("plan", "publish"), c.hdlrs.adminPlans.SetPlanStatus)
			plans.DELETE("/:id", c.permissionMiddleware.RequirePermission("plan", "delete"), c.hdlrs.adminPlans.DeletePlan)
		}

		admin.GET("/orders", c.permissionMiddleware.RequirePermission("order", "read"), c.hdlrs.adminOrders.ListOrders)
		admin.GET("/stats", c.permissionMiddleware.RequirePermission("stats", "read"), c.hdlrs.adminOrders.GetSalesStats)

		admin.GET("/users", authorization.RequireSuperAdmin(), c.hdlrs.adminUsers.ListUsers)
		admin.PUT("/users/:id/role", authorization.RequireSuperAdmin(), c.hdlrs.adminUsers.UpdateRole)
	}
}
