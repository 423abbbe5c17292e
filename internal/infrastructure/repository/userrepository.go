package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/infrastructure/persistence/models"
	"github.com/planhaus/planhaus/internal/shared/authorization"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) user.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *user.User) error {
	model := r.toModel(u)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user", "error", err, "email", u.Email())
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := u.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("user created successfully", "user_id", model.ID, "sid", u.SID())
	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.toEntity(&model)
}

func (r *UserRepositoryImpl) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get user by SID: %w", err)
	}

	return r.toEntity(&model)
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return r.toEntity(&model)
}

func (r *UserRepositoryImpl) Update(ctx context.Context, u *user.User) error {
	model := r.toModel(u)

	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", u.ID()).
		Updates(map[string]interface{}{
			"password_hash": model.PasswordHash,
			"name":          model.Name,
			"role":          model.Role,
			"status":        model.Status,
			"last_login_at": model.LastLoginAt,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update user", "error", result.Error, "user_id", u.ID())
		return fmt.Errorf("failed to update user: %w", result.Error)
	}

	return nil
}

func (r *UserRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*user.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count users", "error", err)
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var userModels []*models.UserModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&userModels).Error; err != nil {
		r.logger.Errorw("failed to list users", "error", err)
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*user.User, 0, len(userModels))
	for _, model := range userModels {
		u, err := r.toEntity(model)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}

	return users, total, nil
}

func (r *UserRepositoryImpl) toModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		SID:          u.SID(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Name:         u.Name(),
		Role:         string(u.Role()),
		Status:       string(u.Status()),
		LastLoginAt:  u.LastLoginAt(),
		Version:      u.Version(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func (r *UserRepositoryImpl) toEntity(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(user.ReconstructUserParams{
		ID:           model.ID,
		SID:          model.SID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Name:         model.Name,
		Role:         authorization.UserRole(model.Role),
		Status:       user.UserStatus(model.Status),
		LastLoginAt:  model.LastLoginAt,
		Version:      model.Version,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	})
}
