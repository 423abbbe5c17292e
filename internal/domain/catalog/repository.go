package catalog

import "context"

// SortKey orders catalog listings.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

func (s SortKey) IsValid() bool {
	switch s {
	case SortFeatured, SortPriceAsc, SortPriceDesc:
		return true
	default:
		return false
	}
}

// ListFilters narrows catalog listings. Zero values mean "no filter".
// Price bounds compare against the basic tier price.
type ListFilters struct {
	Category    string
	MinBedrooms uint
	MinPrice    uint64
	MaxPrice    uint64
	Status      string
	Featured    *bool
}

// PlanRepository persists catalog plans.
// GetByID and GetBySID return (nil, nil) when no plan exists.
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, planID uint) (*Plan, error)
	GetBySID(ctx context.Context, sid string) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, planID uint) error
	List(ctx context.Context, filters ListFilters, sort SortKey, offset, limit int) ([]*Plan, int64, error)
}
