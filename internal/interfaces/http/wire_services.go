package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/planhaus/planhaus/internal/infrastructure/auth"
	"github.com/planhaus/planhaus/internal/infrastructure/cache"
	"github.com/planhaus/planhaus/internal/infrastructure/email"
	infraPayment "github.com/planhaus/planhaus/internal/infrastructure/payment"
	"github.com/planhaus/planhaus/internal/infrastructure/permission"
	"github.com/planhaus/planhaus/internal/infrastructure/ratelimit"
)

// initInfrastructure connects Redis and builds the gateway-facing services:
// tokens, password hashing, the payment gateway client, the intent store,
// receipts, rate limiting, and the Casbin enforcer.
func (c *Container) initInfrastructure() error {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.GetAddr(),
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.redis = redisClient

	c.jwtSvc = auth.NewJWTService(
		c.cfg.Auth.JWT.Secret,
		c.cfg.Auth.JWT.AccessExpMinutes,
		c.cfg.Auth.JWT.RefreshExpDays,
	)
	c.hasher = auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)

	c.gateway = infraPayment.NewPaystackGateway(&c.cfg.Payment, c.log.Named("paystack"))
	c.intentStore = cache.NewRedisIntentStore(redisClient)
	c.rateLimiter = ratelimit.NewRedisRateLimiter(redisClient)

	c.receiptSender = email.NewSMTPReceiptSender(email.SMTPConfig{
		Host:        c.cfg.Email.SMTPHost,
		Port:        c.cfg.Email.SMTPPort,
		Username:    c.cfg.Email.SMTPUser,
		Password:    c.cfg.Email.SMTPPassword,
		FromAddress: c.cfg.Email.FromAddress,
		FromName:    c.cfg.Email.FromName,
	}, c.repos.plans, c.log.Named("email"))

	enforcer, err := permission.NewEnforcer(c.db, c.rbacModelPath, c.log.Named("casbin"))
	if err != nil {
		return fmt.Errorf("failed to build permission enforcer: %w", err)
	}
	if err := permission.InitStorefrontPermissions(enforcer, c.log); err != nil {
		return fmt.Errorf("failed to seed permissions: %w", err)
	}
	if err := permission.NewPermissionSync(c.db, c.log.Named("permission_sync")).SyncToCasbin(); err != nil {
		return fmt.Errorf("failed to sync role grants: %w", err)
	}
	// The sync writes grouping rows with raw SQL, behind the adapter's back;
	// reload so the in-memory enforcer sees them.
	if err := enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy after role sync: %w", err)
	}
	c.enforcer = enforcer

	return nil
}
