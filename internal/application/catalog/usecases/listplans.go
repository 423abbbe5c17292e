package usecases

import (
	"context"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/errors"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

type ListPlansCommand struct {
	Category    string
	MinBedrooms uint
	MinPrice    uint64
	MaxPrice    uint64
	Featured    *bool
	Sort        string
	// Status is honored for back-office callers only; storefront listings
	// are always restricted to active plans.
	Status             string
	IncludeUnpublished bool
	Page               int
	PageSize           int
}

type ListPlansResult struct {
	Plans      []*catalog.Plan
	Total      int64
	Pagination utils.Pagination
}

// ListPlansUseCase serves catalog listings for both the storefront and the
// back office.
type ListPlansUseCase struct {
	planRepo catalog.PlanRepository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo catalog.PlanRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, cmd ListPlansCommand) (*ListPlansResult, error) {
	pagination := utils.ValidatePagination(cmd.Page, cmd.PageSize)

	sort := catalog.SortFeatured
	if cmd.Sort != "" {
		sort = catalog.SortKey(cmd.Sort)
		if !sort.IsValid() {
			return nil, errors.NewValidationError("invalid sort key", cmd.Sort)
		}
	}

	if cmd.Category != "" && !catalogVO.Category(cmd.Category).IsValid() {
		return nil, errors.NewValidationError("invalid category", cmd.Category)
	}
	if cmd.MinPrice > 0 && cmd.MaxPrice > 0 && cmd.MinPrice > cmd.MaxPrice {
		return nil, errors.NewValidationError("min_price cannot exceed max_price")
	}

	filters := catalog.ListFilters{
		Category:    cmd.Category,
		MinBedrooms: cmd.MinBedrooms,
		MinPrice:    cmd.MinPrice,
		MaxPrice:    cmd.MaxPrice,
		Featured:    cmd.Featured,
	}
	if cmd.IncludeUnpublished {
		filters.Status = cmd.Status
	} else {
		filters.Status = catalogVO.PlanStatusActive.String()
	}

	plans, total, err := uc.planRepo.List(ctx, filters, sort, pagination.Offset(), pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err, "filters", filters)
		return nil, errors.NewInternalError("failed to list plans")
	}

	return &ListPlansResult{
		Plans:      plans,
		Total:      total,
		Pagination: pagination,
	}, nil
}
