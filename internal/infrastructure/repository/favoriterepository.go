package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/planhaus/planhaus/internal/domain/favorite"
	"github.com/planhaus/planhaus/internal/infrastructure/persistence/models"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type FavoriteRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewFavoriteRepository(db *gorm.DB, logger logger.Interface) favorite.FavoriteRepository {
	return &FavoriteRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// Add saves a plan for a user. Saving an already-saved plan is a no-op.
func (r *FavoriteRepositoryImpl) Add(ctx context.Context, f *favorite.Favorite) error {
	model := &models.FavoriteModel{
		UserID:    f.UserID(),
		PlanID:    f.PlanID(),
		CreatedAt: f.CreatedAt(),
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "plan_id"}},
			DoNothing: true,
		}).
		Create(model).Error; err != nil {
		r.logger.Errorw("failed to add favorite", "error", err, "user_id", f.UserID(), "plan_id", f.PlanID())
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	if model.ID != 0 {
		if err := f.SetID(model.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *FavoriteRepositoryImpl) Remove(ctx context.Context, userID, planID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND plan_id = ?", userID, planID).
		Delete(&models.FavoriteModel{}).Error; err != nil {
		r.logger.Errorw("failed to remove favorite", "error", err, "user_id", userID, "plan_id", planID)
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}

func (r *FavoriteRepositoryImpl) Exists(ctx context.Context, userID, planID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FavoriteModel{}).
		Where("user_id = ? AND plan_id = ?", userID, planID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check favorite", "error", err, "user_id", userID, "plan_id", planID)
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	return count > 0, nil
}

func (r *FavoriteRepositoryImpl) ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]*favorite.Favorite, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FavoriteModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count favorites", "error", err, "user_id", userID)
		return nil, 0, fmt.Errorf("failed to count favorites: %w", err)
	}

	var favoriteModels []*models.FavoriteModel
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&favoriteModels).Error; err != nil {
		r.logger.Errorw("failed to list favorites", "error", err, "user_id", userID)
		return nil, 0, fmt.Errorf("failed to list favorites: %w", err)
	}

	favorites := make([]*favorite.Favorite, 0, len(favoriteModels))
	for _, model := range favoriteModels {
		f, err := favorite.ReconstructFavorite(model.ID, model.UserID, model.PlanID, model.CreatedAt)
		if err != nil {
			return nil, 0, err
		}
		favorites = append(favorites, f)
	}

	return favorites, total, nil
}

func (r *FavoriteRepositoryImpl) ListPlanIDsByUserID(ctx context.Context, userID uint) ([]uint, error) {
	var planIDs []uint
	if err := r.db.WithContext(ctx).Model(&models.FavoriteModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("plan_id", &planIDs).Error; err != nil {
		r.logger.Errorw("failed to list favorite plan IDs", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list favorite plan IDs: %w", err)
	}

	return planIDs, nil
}
