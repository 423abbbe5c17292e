package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	"github.com/planhaus/planhaus/internal/infrastructure/persistence/models"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) catalog.PlanRepository {
	return &PlanRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *catalog.Plan) error {
	model, err := r.toModel(plan)
	if err != nil {
		r.logger.Errorw("failed to convert plan to model", "error", err)
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan", "error", err, "sid", plan.SID())
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if err := plan.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("plan created successfully", "plan_id", model.ID, "sid", plan.SID())
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, planID uint) (*catalog.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).First(&model, planID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by ID", "error", err, "plan_id", planID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) GetBySID(ctx context.Context, sid string) (*catalog.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get plan by SID: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, plan *catalog.Plan) error {
	model, err := r.toModel(plan)
	if err != nil {
		r.logger.Errorw("failed to convert plan to model", "error", err)
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.PlanModel{}).
		Where("id = ?", plan.ID()).
		Updates(map[string]interface{}{
			"title":          model.Title,
			"description":    model.Description,
			"category":       model.Category,
			"bedrooms":       model.Bedrooms,
			"bathrooms":      model.Bathrooms,
			"floor_area_sqm": model.FloorAreaSqm,
			"basic_price":    model.BasicPrice,
			"standard_price": model.StandardPrice,
			"premium_price":  model.PremiumPrice,
			"currency":       model.Currency,
			"featured":       model.Featured,
			"status":         model.Status,
			"primary_image":  model.PrimaryImage,
			"gallery_images": model.GalleryImages,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update plan", "error", result.Error, "plan_id", plan.ID())
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}

	return nil
}

func (r *PlanRepositoryImpl) Delete(ctx context.Context, planID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.PlanModel{}, planID)
	if result.Error != nil {
		r.logger.Errorw("failed to delete plan", "error", result.Error, "plan_id", planID)
		return fmt.Errorf("failed to delete plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("plan not found")
	}

	r.logger.Infow("plan deleted successfully", "plan_id", planID)
	return nil
}

func (r *PlanRepositoryImpl) List(ctx context.Context, filters catalog.ListFilters, sort catalog.SortKey, offset, limit int) ([]*catalog.Plan, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PlanModel{})

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.MinBedrooms > 0 {
		query = query.Where("bedrooms >= ?", filters.MinBedrooms)
	}
	if filters.MinPrice > 0 {
		query = query.Where("basic_price >= ?", filters.MinPrice)
	}
	if filters.MaxPrice > 0 {
		query = query.Where("basic_price <= ?", filters.MaxPrice)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count plans", "error", err)
		return nil, 0, fmt.Errorf("failed to count plans: %w", err)
	}

	switch sort {
	case catalog.SortPriceAsc:
		query = query.Order("basic_price ASC, id ASC")
	case catalog.SortPriceDesc:
		query = query.Order("basic_price DESC, id ASC")
	default:
		query = query.Order("featured DESC, created_at DESC")
	}

	var planModels []*models.PlanModel
	if err := query.Offset(offset).Limit(limit).Find(&planModels).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]*catalog.Plan, 0, len(planModels))
	for _, model := range planModels {
		plan, err := r.toEntity(model)
		if err != nil {
			return nil, 0, err
		}
		plans = append(plans, plan)
	}

	return plans, total, nil
}

func (r *PlanRepositoryImpl) toModel(plan *catalog.Plan) (*models.PlanModel, error) {
	gallery, err := json.Marshal(plan.GalleryImages())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gallery images: %w", err)
	}

	return &models.PlanModel{
		ID:            plan.ID(),
		SID:           plan.SID(),
		Title:         plan.Title(),
		Description:   plan.Description(),
		Category:      plan.Category().String(),
		Bedrooms:      plan.Bedrooms(),
		Bathrooms:     plan.Bathrooms(),
		FloorAreaSqm:  plan.FloorAreaSqm(),
		BasicPrice:    plan.BasicPrice(),
		StandardPrice: plan.StandardPrice(),
		PremiumPrice:  plan.PremiumPrice(),
		Currency:      plan.Currency(),
		Featured:      plan.Featured(),
		Status:        plan.Status().String(),
		PrimaryImage:  plan.PrimaryImage(),
		GalleryImages: gallery,
		Version:       plan.Version(),
		CreatedAt:     plan.CreatedAt(),
		UpdatedAt:     plan.UpdatedAt(),
	}, nil
}

func (r *PlanRepositoryImpl) toEntity(model *models.PlanModel) (*catalog.Plan, error) {
	var gallery []string
	if len(model.GalleryImages) > 0 {
		if err := json.Unmarshal(model.GalleryImages, &gallery); err != nil {
			return nil, fmt.Errorf("failed to unmarshal gallery images: %w", err)
		}
	}

	return catalog.ReconstructPlan(catalog.ReconstructPlanParams{
		ID:            model.ID,
		SID:           model.SID,
		Title:         model.Title,
		Description:   model.Description,
		Category:      model.Category,
		Bedrooms:      model.Bedrooms,
		Bathrooms:     model.Bathrooms,
		FloorAreaSqm:  model.FloorAreaSqm,
		BasicPrice:    model.BasicPrice,
		StandardPrice: model.StandardPrice,
		PremiumPrice:  model.PremiumPrice,
		Currency:      model.Currency,
		Featured:      model.Featured,
		Status:        model.Status,
		PrimaryImage:  model.PrimaryImage,
		GalleryImages: gallery,
		Version:       model.Version,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	})
}
