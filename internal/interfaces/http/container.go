package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/planhaus/planhaus/internal/application/payment/paymentgateway"
	paymentUsecases "github.com/planhaus/planhaus/internal/application/payment/usecases"
	"github.com/planhaus/planhaus/internal/domain/checkout"
	"github.com/planhaus/planhaus/internal/infrastructure/auth"
	"github.com/planhaus/planhaus/internal/infrastructure/config"
	"github.com/planhaus/planhaus/internal/infrastructure/email"
	"github.com/planhaus/planhaus/internal/infrastructure/permission"
	"github.com/planhaus/planhaus/internal/infrastructure/ratelimit"
	"github.com/planhaus/planhaus/internal/interfaces/http/middleware"
	"github.com/planhaus/planhaus/internal/shared/goroutine"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

// Container wires repositories, use cases, handlers, and middleware into a
// runnable HTTP surface, and owns the payment reconciliation worker.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	rbacModelPath string
	assetsBaseURL string

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	jwtSvc        *auth.JWTService
	hasher        *auth.BcryptPasswordHasher
	gateway       paymentgateway.PaymentGateway
	intentStore   checkout.IntentStore
	receiptSender *email.SMTPReceiptSender
	rateLimiter   ratelimit.RateLimiter
	enforcer      *permission.Enforcer

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware

	workerCancel context.CancelFunc
	workerDone   chan struct{}
}

// NewContainer builds the full dependency graph. It fails fast when Redis or
// the permission store are unreachable; the process should not serve traffic
// half-wired.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:        gin.New(),
		db:            db,
		cfg:           cfg,
		log:           log,
		rbacModelPath: "configs/rbac_model.conf",
		assetsBaseURL: cfg.Server.AssetsBaseURL,
	}

	c.initRepositories()

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	c.initUseCases()
	c.initHandlers()

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.repos.users, log.Named("auth_middleware"))
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log.Named("permission_middleware"))

	return c, nil
}

// GetEngine returns the configured Gin engine.
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}

// StartWorkers launches the payment reconciliation loop. Orders stuck in
// processing are re-verified against the gateway on a fixed interval.
func (c *Container) StartWorkers() {
	interval := time.Duration(c.cfg.Worker.ReconcileIntervalMinutes) * time.Minute
	olderThan := time.Duration(c.cfg.Worker.ReconcileAfterMinutes) * time.Minute
	if interval <= 0 {
		c.log.Infow("payment reconciliation disabled", "interval_minutes", c.cfg.Worker.ReconcileIntervalMinutes)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.workerCancel = cancel
	c.workerDone = make(chan struct{})

	goroutine.SafeGo(c.log, "payment reconciliation worker", func() {
		defer close(c.workerDone)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		c.log.Infow("payment reconciliation worker started",
			"interval", interval,
			"older_than", olderThan,
		)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.runReconciliation(ctx, olderThan)
			}
		}
	})
}

func (c *Container) runReconciliation(ctx context.Context, olderThan time.Duration) {
	runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	result, err := c.ucs.reconcilePayments.Execute(runCtx, paymentUsecases.ReconcilePaymentsCommand{
		OlderThan: olderThan,
	})
	if err != nil {
		c.log.Errorw("payment reconciliation run failed", "error", err)
		return
	}

	if result.Checked > 0 {
		c.log.Infow("payment reconciliation run finished",
			"checked", result.Checked,
			"settled", result.Settled,
			"failed", result.Failed,
			"still_open", result.StillOpen,
		)
	}
}

// Shutdown stops the background worker and closes Redis.
func (c *Container) Shutdown(ctx context.Context) error {
	if c.workerCancel != nil {
		c.workerCancel()
		select {
		case <-c.workerDone:
		case <-ctx.Done():
			c.log.Warnw("timed out waiting for reconciliation worker to stop")
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return err
		}
	}

	return nil
}
