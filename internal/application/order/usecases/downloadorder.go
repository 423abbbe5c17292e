package usecases

import (
	"context"
	"time"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	"github.com/planhaus/planhaus/internal/domain/order"
	"github.com/planhaus/planhaus/internal/shared/authorization"
	"github.com/planhaus/planhaus/internal/shared/biztime"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

// DownloadLinkSigner issues short-lived signed tokens that grant access to a
// purchased plan's document bundle.
type DownloadLinkSigner interface {
	SignDownload(orderSID, planSID, tier string, ttl time.Duration) (string, error)
}

type DownloadOrderCommand struct {
	OrderSID      string
	RequesterID   uint
	RequesterRole authorization.UserRole
}

type DownloadOrderResult struct {
	Order     *order.Order
	Plan      *catalog.Plan
	Token     string
	ExpiresAt time.Time
}

// DownloadOrderUseCase gates plan-file access behind the purchase
// entitlement: only the buyer of a completed order, or an admin, gets a
// download token. The token scope is the single tier that was bought.
type DownloadOrderUseCase struct {
	orderRepo order.OrderRepository
	planRepo  catalog.PlanRepository
	signer    DownloadLinkSigner
	linkTTL   time.Duration
	logger    logger.Interface
}

func NewDownloadOrderUseCase(
	orderRepo order.OrderRepository,
	planRepo catalog.PlanRepository,
	signer DownloadLinkSigner,
	linkTTL time.Duration,
	logger logger.Interface,
) *DownloadOrderUseCase {
	return &DownloadOrderUseCase{
		orderRepo: orderRepo,
		planRepo:  planRepo,
		signer:    signer,
		linkTTL:   linkTTL,
		logger:    logger,
	}
}

func (uc *DownloadOrderUseCase) Execute(ctx context.Context, cmd DownloadOrderCommand) (*DownloadOrderResult, error) {
	ord, err := uc.orderRepo.GetBySID(ctx, cmd.OrderSID)
	if err != nil {
		uc.logger.Errorw("failed to get order", "error", err, "order_sid", cmd.OrderSID)
		return nil, errors.NewInternalError("failed to get order")
	}
	if ord == nil {
		return nil, errors.NewNotFoundError("order not found")
	}

	if !authorization.CanAccessResource(cmd.RequesterID, cmd.RequesterRole, ord) {
		return nil, errors.NewNotFoundError("order not found")
	}

	if !ord.CanDownload(cmd.RequesterID, cmd.RequesterRole) {
		return nil, errors.NewForbiddenError("order is not completed, download is not available")
	}

	plan, err := uc.planRepo.GetByID(ctx, ord.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get plan for download", "error", err, "order_sid", cmd.OrderSID, "plan_id", ord.PlanID())
		return nil, errors.NewInternalError("failed to get plan")
	}
	if plan == nil {
		// Deactivated plans stay downloadable; a hard-deleted one does not.
		return nil, errors.NewNotFoundError("plan files are no longer available")
	}

	token, err := uc.signer.SignDownload(ord.SID(), plan.SID(), ord.Tier().String(), uc.linkTTL)
	if err != nil {
		uc.logger.Errorw("failed to sign download link", "error", err, "order_sid", cmd.OrderSID)
		return nil, errors.NewInternalError("failed to create download link")
	}

	uc.logger.Infow("download link issued",
		"order_sid", ord.SID(),
		"plan_sid", plan.SID(),
		"tier", ord.Tier(),
		"requester_id", cmd.RequesterID,
	)

	return &DownloadOrderResult{
		Order:     ord,
		Plan:      plan,
		Token:     token,
		ExpiresAt: biztime.NowUTC().Add(uc.linkTTL),
	}, nil
}
