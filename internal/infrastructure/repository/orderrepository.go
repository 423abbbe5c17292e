package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/planhaus/planhaus/internal/domain/order"
	vo "github.com/planhaus/planhaus/internal/domain/order/valueobjects"
	"github.com/planhaus/planhaus/internal/infrastructure/persistence/models"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type OrderRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewOrderRepository(db *gorm.DB, logger logger.Interface) order.OrderRepository {
	return &OrderRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, o *order.Order) error {
	model := r.toModel(o)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create order", "error", err, "sid", o.SID())
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err := o.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *OrderRepositoryImpl) GetByID(ctx context.Context, orderID uint) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get order by ID", "error", err, "order_id", orderID)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return r.toEntity(&model)
}

func (r *OrderRepositoryImpl) GetBySID(ctx context.Context, sid string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get order by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get order by SID: %w", err)
	}

	return r.toEntity(&model)
}

func (r *OrderRepositoryImpl) GetByProviderReference(ctx context.Context, reference string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Where("provider_reference = ?", reference).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get order by provider reference", "error", err, "reference", reference)
		return nil, fmt.Errorf("failed to get order by provider reference: %w", err)
	}

	return r.toEntity(&model)
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, o *order.Order) error {
	model := r.toModel(o)

	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ?", o.ID()).
		Updates(map[string]interface{}{
			"status":             model.Status,
			"provider_reference": model.ProviderReference,
			"failure_reason":     model.FailureReason,
			"paid_at":            model.PaidAt,
			"metadata":           model.Metadata,
			"version":            model.Version,
			"updated_at":         model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update order", "error", result.Error, "order_id", o.ID())
		return fmt.Errorf("failed to update order: %w", result.Error)
	}

	// RowsAffected may be 0 when updated values are identical to existing values.

	return nil
}

func (r *OrderRepositoryImpl) ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]*order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count orders", "error", err, "user_id", userID)
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orderModels []*models.OrderModel
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orderModels).Error; err != nil {
		r.logger.Errorw("failed to list orders", "error", err, "user_id", userID)
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	orders, err := r.toEntities(orderModels)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *OrderRepositoryImpl) List(ctx context.Context, filters order.ListFilters, offset, limit int) ([]*order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})

	if filters.UserID > 0 {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if filters.PlanID > 0 {
		query = query.Where("plan_id = ?", filters.PlanID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count orders", "error", err)
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orderModels []*models.OrderModel
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orderModels).Error; err != nil {
		r.logger.Errorw("failed to list orders", "error", err)
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	orders, err := r.toEntities(orderModels)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *OrderRepositoryImpl) ListStaleProcessing(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	var orderModels []*models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", vo.OrderStatusProcessing.String(), cutoff).
		Order("updated_at ASC").
		Limit(limit).
		Find(&orderModels).Error; err != nil {
		r.logger.Errorw("failed to list stale processing orders", "error", err)
		return nil, fmt.Errorf("failed to list stale processing orders: %w", err)
	}

	return r.toEntities(orderModels)
}

func (r *OrderRepositoryImpl) TotalsByStatus(ctx context.Context, from, to time.Time) ([]order.StatusTotals, error) {
	type row struct {
		Status      string
		Count       int64
		AmountMinor int64
	}

	var rows []row
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount_minor").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("status").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to aggregate order totals", "error", err)
		return nil, fmt.Errorf("failed to aggregate order totals: %w", err)
	}

	totals := make([]order.StatusTotals, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, order.StatusTotals{
			Status:      vo.OrderStatus(row.Status),
			Count:       row.Count,
			AmountMinor: row.AmountMinor,
		})
	}

	return totals, nil
}

func (r *OrderRepositoryImpl) toModel(o *order.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:                o.ID(),
		SID:               o.SID(),
		UserID:            o.UserID(),
		PlanID:            o.PlanID(),
		Tier:              o.Tier().String(),
		Amount:            o.Amount().AmountMinor(),
		Currency:          o.Amount().Currency(),
		Status:            o.Status().String(),
		ProviderReference: o.ProviderReference(),
		PayerEmail:        o.PayerEmail(),
		FailureReason:     o.FailureReason(),
		PaidAt:            o.PaidAt(),
		Metadata:          o.Metadata(),
		Version:           o.Version(),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}
}

func (r *OrderRepositoryImpl) toEntity(model *models.OrderModel) (*order.Order, error) {
	return order.ReconstructOrder(order.ReconstructOrderParams{
		ID:                model.ID,
		SID:               model.SID,
		UserID:            model.UserID,
		PlanID:            model.PlanID,
		Tier:              model.Tier,
		Amount:            vo.NewMoney(model.Amount, model.Currency),
		Status:            model.Status,
		ProviderReference: model.ProviderReference,
		PayerEmail:        model.PayerEmail,
		FailureReason:     model.FailureReason,
		PaidAt:            model.PaidAt,
		Metadata:          model.Metadata,
		Version:           model.Version,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	})
}

func (r *OrderRepositoryImpl) toEntities(orderModels []*models.OrderModel) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(orderModels))
	for _, model := range orderModels {
		o, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
