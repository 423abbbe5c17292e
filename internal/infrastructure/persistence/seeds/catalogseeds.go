package seeds

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/infrastructure/persistence/models"
	"github.com/planhaus/planhaus/internal/infrastructure/repository"
	"github.com/planhaus/planhaus/internal/shared/authorization"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type planSeed struct {
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Category      string   `yaml:"category"`
	Bedrooms      uint     `yaml:"bedrooms"`
	Bathrooms     uint     `yaml:"bathrooms"`
	FloorAreaSqm  uint     `yaml:"floor_area_sqm"`
	BasicPrice    uint64   `yaml:"basic_price"`
	StandardPrice uint64   `yaml:"standard_price"`
	PremiumPrice  uint64   `yaml:"premium_price"`
	Currency      string   `yaml:"currency"`
	Featured      bool     `yaml:"featured"`
	PrimaryImage  string   `yaml:"primary_image"`
	Gallery       []string `yaml:"gallery"`
	Active        bool     `yaml:"active"`
}

type catalogSeedFile struct {
	Plans []planSeed `yaml:"plans"`
}

// SeedCatalog loads house plans from a YAML file into an empty catalog.
// A non-empty plans table is left untouched, so re-running is safe.
func SeedCatalog(ctx context.Context, db *gorm.DB, path string, log logger.Interface) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.PlanModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check plans table: %w", err)
	}
	if count > 0 {
		log.Infow("catalog already seeded, skipping", "plans", count)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var file catalogSeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	repo := repository.NewPlanRepository(db, log)

	for _, seed := range file.Plans {
		plan, err := catalog.NewPlan(catalog.NewPlanParams{
			Title:         seed.Title,
			Description:   seed.Description,
			Category:      catalogVO.Category(seed.Category),
			Bedrooms:      seed.Bedrooms,
			Bathrooms:     seed.Bathrooms,
			FloorAreaSqm:  seed.FloorAreaSqm,
			BasicPrice:    seed.BasicPrice,
			StandardPrice: seed.StandardPrice,
			PremiumPrice:  seed.PremiumPrice,
			Currency:      seed.Currency,
			PrimaryImage:  seed.PrimaryImage,
			GalleryImages: seed.Gallery,
		})
		if err != nil {
			return fmt.Errorf("invalid seed plan %q: %w", seed.Title, err)
		}

		plan.SetFeatured(seed.Featured)
		if seed.Active {
			plan.Activate()
		}

		if err := repo.Create(ctx, plan); err != nil {
			return fmt.Errorf("failed to seed plan %q: %w", seed.Title, err)
		}
		if err := repo.Update(ctx, plan); err != nil {
			return fmt.Errorf("failed to seed plan %q: %w", seed.Title, err)
		}
	}

	log.Infow("catalog seeded successfully", "plans", len(file.Plans))
	return nil
}

// SeedAdminUser creates a super admin account if no user holds that role
// yet. The password hash must be precomputed by the caller.
func SeedAdminUser(ctx context.Context, db *gorm.DB, email, passwordHash, name string, log logger.Interface) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.UserModel{}).
		Where("role = ?", string(authorization.RoleSuperAdmin)).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check users table: %w", err)
	}
	if count > 0 {
		log.Infow("super admin already exists, skipping")
		return nil
	}

	u, err := user.NewUser(email, passwordHash, name)
	if err != nil {
		return fmt.Errorf("invalid admin seed: %w", err)
	}
	if err := u.ChangeRole(authorization.RoleSuperAdmin); err != nil {
		return fmt.Errorf("failed to assign admin role: %w", err)
	}

	repo := repository.NewUserRepository(db, log)
	if err := repo.Create(ctx, u); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if err := repo.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Infow("super admin seeded successfully", "email", u.Email())
	return nil
}
