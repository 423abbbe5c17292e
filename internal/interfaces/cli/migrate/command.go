package migrate

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/planhaus/planhaus/internal/infrastructure/auth"
	"github.com/planhaus/planhaus/internal/infrastructure/config"
	"github.com/planhaus/planhaus/internal/infrastructure/database"
	"github.com/planhaus/planhaus/internal/infrastructure/migration"
	"github.com/planhaus/planhaus/internal/infrastructure/persistence/seeds"
	"github.com/planhaus/planhaus/internal/shared/biztime"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

var (
	env   string
	name  string
	steps int

	adminEmail    string
	adminPassword string
	adminName     string
	plansPath     string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply, roll back, inspect status, create new migration files, and seed initial data.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog and the first admin account",
		Long:  `Load the seed catalog from a YAML file and create the initial super admin account. Both steps are skipped when data already exists.`,
		RunE:  runSeed,
	}

	cmd.Flags().StringVar(&adminEmail, "admin-email", "", "Email for the initial super admin")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "Password for the initial super admin")
	cmd.Flags().StringVar(&adminName, "admin-name", "Administrator", "Display name for the initial super admin")
	cmd.Flags().StringVar(&plansPath, "plans", "configs/seeds/plans.yaml", "Path to the catalog seed file")

	return cmd
}

func initEnv() (*config.Config, string, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, "", nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, "", nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, "", nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to get scripts path: %w", err)
	}

	return cfg, scriptsPath, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	_, scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env)

	strategy := migration.NewGolangMigrateStrategy(scriptsPath)
	if err := strategy.Migrate(database.Get()); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	_, scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)

	strategy := migration.NewGolangMigrateStrategy(scriptsPath)
	migrateStrategy, ok := strategy.(*migration.GolangMigrateStrategy)
	if !ok {
		return fmt.Errorf("down migration requires the versioned SQL strategy")
	}
	if err := migrateStrategy.MigrateDown(database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy := migration.NewGolangMigrateStrategy(scriptsPath)
	migrateStrategy, ok := strategy.(*migration.GolangMigrateStrategy)
	if !ok {
		return fmt.Errorf("status check requires the versioned SQL strategy")
	}

	version, dirty, err := migrateStrategy.GetVersion(database.Get())
	if err != nil {
		log.Errorw("failed to get migration status", "error", err)
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Environment: %s\n", env)
	fmt.Printf("  Version:     %d\n", version)
	fmt.Printf("  Dirty:       %t\n", dirty)

	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	_, scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("creating new migration", "name", name)

	generator := migration.NewGenerator(scriptsPath)
	if err := generator.CreateMigration(name); err != nil {
		log.Errorw("failed to create migration", "error", err)
		return fmt.Errorf("failed to create migration: %w", err)
	}

	log.Infow("migration created successfully", "name", name)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, _, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := seeds.SeedCatalog(ctx, database.Get(), plansPath, log); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	if adminEmail != "" {
		if adminPassword == "" {
			return fmt.Errorf("--admin-password is required with --admin-email")
		}

		hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
		hash, err := hasher.Hash(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		if err := seeds.SeedAdminUser(ctx, database.Get(), adminEmail, hash, adminName, log); err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
	}

	log.Infow("seeding completed")
	return nil
}
