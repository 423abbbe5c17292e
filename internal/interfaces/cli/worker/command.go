package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	paymentUsecases "github.com/planhaus/planhaus/internal/application/payment/usecases"
	"github.com/planhaus/planhaus/internal/infrastructure/config"
	"github.com/planhaus/planhaus/internal/infrastructure/database"
	"github.com/planhaus/planhaus/internal/infrastructure/email"
	infraPayment "github.com/planhaus/planhaus/internal/infrastructure/payment"
	"github.com/planhaus/planhaus/internal/infrastructure/repository"
	"github.com/planhaus/planhaus/internal/shared/biztime"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

var env string

// NewCommand builds the standalone reconciliation worker. It runs the same
// stale-order sweep as the in-server worker, for deployments that keep
// background work off the API instances.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the payment reconciliation worker",
		Long:  `Periodically re-verify orders stuck in processing against the payment gateway and settle or fail them.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if env == "" {
		env = os.Getenv("ENV")
		if env == "" {
			env = "development"
		}
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger().Named("worker")
	log.Infow("starting reconciliation worker", "environment", env)

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	orderRepo := repository.NewOrderRepository(database.Get(), log.Named("order_repo"))
	planRepo := repository.NewPlanRepository(database.Get(), log.Named("plan_repo"))
	gateway := infraPayment.NewPaystackGateway(&cfg.Payment, log.Named("paystack"))
	receipts := email.NewSMTPReceiptSender(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	}, planRepo, log.Named("email"))

	confirmUC := paymentUsecases.NewConfirmPaymentUseCase(orderRepo, gateway, receipts, log)
	reconcileUC := paymentUsecases.NewReconcilePaymentsUseCase(orderRepo, confirmUC, log)

	interval := time.Duration(cfg.Worker.ReconcileIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	olderThan := time.Duration(cfg.Worker.ReconcileAfterMinutes) * time.Minute

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Infow("reconciliation loop started", "interval", interval, "older_than", olderThan)

	for {
		select {
		case sig := <-quit:
			log.Infow("stopping worker", "signal", sig.String())
			return nil
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			result, err := reconcileUC.Execute(runCtx, paymentUsecases.ReconcilePaymentsCommand{
				OlderThan: olderThan,
			})
			cancel()
			if err != nil {
				log.Errorw("reconciliation run failed", "error", err)
				continue
			}
			log.Infow("reconciliation run finished",
				"checked", result.Checked,
				"settled", result.Settled,
				"failed", result.Failed,
				"still_open", result.StillOpen,
			)
		}
	}
}
