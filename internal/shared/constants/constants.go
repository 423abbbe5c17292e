package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderUserAgent     = "User-Agent"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserSID   = "user_sid"
	ContextKeyUserRole  = "user_role"
	ContextKeyUserEmail = "user_email"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers     = "users"
	TablePlans     = "plans"
	TableOrders    = "orders"
	TableFavorites = "favorites"

	// Default values
	DefaultCurrency = "NGN"

	// Checkout
	CheckoutIntentTTLMinutes = 30
)
