package catalog

import (
	"fmt"
	"time"

	vo "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/shared/biztime"
	"github.com/planhaus/planhaus/internal/shared/id"
)

// Plan is a sellable house design with three price tiers.
// Prices are stored in the smallest currency unit.
type Plan struct {
	planID        uint
	sid           string
	title         string
	description   string
	category      vo.Category
	bedrooms      uint
	bathrooms     uint
	floorAreaSqm  uint
	basicPrice    uint64
	standardPrice uint64
	premiumPrice  uint64
	currency      string
	featured      bool
	status        vo.PlanStatus
	primaryImage  string
	galleryImages []string

	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewPlanParams carries the attributes needed to create a plan.
type NewPlanParams struct {
	Title         string
	Description   string
	Category      vo.Category
	Bedrooms      uint
	Bathrooms     uint
	FloorAreaSqm  uint
	BasicPrice    uint64
	StandardPrice uint64
	PremiumPrice  uint64
	Currency      string
	PrimaryImage  string
	GalleryImages []string
}

func NewPlan(p NewPlanParams) (*Plan, error) {
	if p.Title == "" {
		return nil, fmt.Errorf("plan title is required")
	}
	if len(p.Title) > 200 {
		return nil, fmt.Errorf("plan title too long (max 200 characters)")
	}
	if !p.Category.IsValid() {
		return nil, fmt.Errorf("invalid plan category: %s", p.Category)
	}
	if p.BasicPrice == 0 || p.StandardPrice == 0 || p.PremiumPrice == 0 {
		return nil, fmt.Errorf("all three tier prices are required")
	}
	if p.Currency == "" {
		return nil, fmt.Errorf("currency is required")
	}

	now := biztime.NowUTC()
	return &Plan{
		sid:           id.NewPlanSID(),
		title:         p.Title,
		description:   p.Description,
		category:      p.Category,
		bedrooms:      p.Bedrooms,
		bathrooms:     p.Bathrooms,
		floorAreaSqm:  p.FloorAreaSqm,
		basicPrice:    p.BasicPrice,
		standardPrice: p.StandardPrice,
		premiumPrice:  p.PremiumPrice,
		currency:      p.Currency,
		featured:      false,
		status:        vo.PlanStatusDraft,
		primaryImage:  p.PrimaryImage,
		galleryImages: p.GalleryImages,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructPlanParams carries persisted state for rebuilding a plan.
type ReconstructPlanParams struct {
	ID            uint
	SID           string
	Title         string
	Description   string
	Category      string
	Bedrooms      uint
	Bathrooms     uint
	FloorAreaSqm  uint
	BasicPrice    uint64
	StandardPrice uint64
	PremiumPrice  uint64
	Currency      string
	Featured      bool
	Status        string
	PrimaryImage  string
	GalleryImages []string
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ReconstructPlan(p ReconstructPlanParams) (*Plan, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}

	status := vo.PlanStatus(p.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid plan status: %s", p.Status)
	}
	category := vo.Category(p.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid plan category: %s", p.Category)
	}

	return &Plan{
		planID:        p.ID,
		sid:           p.SID,
		title:         p.Title,
		description:   p.Description,
		category:      category,
		bedrooms:      p.Bedrooms,
		bathrooms:     p.Bathrooms,
		floorAreaSqm:  p.FloorAreaSqm,
		basicPrice:    p.BasicPrice,
		standardPrice: p.StandardPrice,
		premiumPrice:  p.PremiumPrice,
		currency:      p.Currency,
		featured:      p.Featured,
		status:        status,
		primaryImage:  p.PrimaryImage,
		galleryImages: p.GalleryImages,
		version:       p.Version,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}, nil
}

func (p *Plan) ID() uint                { return p.planID }
func (p *Plan) SID() string             { return p.sid }
func (p *Plan) Title() string           { return p.title }
func (p *Plan) Description() string     { return p.description }
func (p *Plan) Category() vo.Category   { return p.category }
func (p *Plan) Bedrooms() uint          { return p.bedrooms }
func (p *Plan) Bathrooms() uint         { return p.bathrooms }
func (p *Plan) FloorAreaSqm() uint      { return p.floorAreaSqm }
func (p *Plan) BasicPrice() uint64      { return p.basicPrice }
func (p *Plan) StandardPrice() uint64   { return p.standardPrice }
func (p *Plan) PremiumPrice() uint64    { return p.premiumPrice }
func (p *Plan) Currency() string        { return p.currency }
func (p *Plan) Featured() bool          { return p.featured }
func (p *Plan) Status() vo.PlanStatus   { return p.status }
func (p *Plan) PrimaryImage() string    { return p.primaryImage }
func (p *Plan) GalleryImages() []string { return p.galleryImages }
func (p *Plan) Version() int            { return p.version }
func (p *Plan) CreatedAt() time.Time    { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time    { return p.updatedAt }

// SetID assigns the database identity after insert.
func (p *Plan) SetID(planID uint) error {
	if p.planID != 0 {
		return fmt.Errorf("plan ID already set")
	}
	if planID == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.planID = planID
	return nil
}

// PriceFor returns the authoritative price for the given tier.
// This is the single source of truth for checkout amounts; client-echoed
// amounts are never trusted.
func (p *Plan) PriceFor(tier vo.Tier) (uint64, error) {
	switch tier {
	case vo.TierBasic:
		return p.basicPrice, nil
	case vo.TierStandard:
		return p.standardPrice, nil
	case vo.TierPremium:
		return p.premiumPrice, nil
	default:
		return 0, fmt.Errorf("invalid tier: %s", tier)
	}
}

// IsPurchasable reports whether the plan can currently be sold.
func (p *Plan) IsPurchasable() bool {
	return p.status.IsPurchasable()
}

// UpdateDetailsParams carries optional field updates; nil fields are unchanged.
type UpdateDetailsParams struct {
	Title        *string
	Description  *string
	Category     *string
	Bedrooms     *uint
	Bathrooms    *uint
	FloorAreaSqm *uint
	PrimaryImage *string
	Gallery      *[]string
}

func (p *Plan) UpdateDetails(u UpdateDetailsParams) error {
	if u.Title != nil {
		if *u.Title == "" {
			return fmt.Errorf("plan title cannot be empty")
		}
		if len(*u.Title) > 200 {
			return fmt.Errorf("plan title too long (max 200 characters)")
		}
		p.title = *u.Title
	}
	if u.Description != nil {
		p.description = *u.Description
	}
	if u.Category != nil {
		category, err := vo.ParseCategory(*u.Category)
		if err != nil {
			return err
		}
		p.category = category
	}
	if u.Bedrooms != nil {
		p.bedrooms = *u.Bedrooms
	}
	if u.Bathrooms != nil {
		p.bathrooms = *u.Bathrooms
	}
	if u.FloorAreaSqm != nil {
		p.floorAreaSqm = *u.FloorAreaSqm
	}
	if u.PrimaryImage != nil {
		p.primaryImage = *u.PrimaryImage
	}
	if u.Gallery != nil {
		p.galleryImages = *u.Gallery
	}

	p.touch()
	return nil
}

// SetPrices replaces the tier price ladder. Tier prices are presented
// ascending by convention but the order is not enforced here.
func (p *Plan) SetPrices(basic, standard, premium uint64) error {
	if basic == 0 || standard == 0 || premium == 0 {
		return fmt.Errorf("all three tier prices are required")
	}
	p.basicPrice = basic
	p.standardPrice = standard
	p.premiumPrice = premium
	p.touch()
	return nil
}

func (p *Plan) SetFeatured(featured bool) {
	p.featured = featured
	p.touch()
}

func (p *Plan) Activate() {
	p.status = vo.PlanStatusActive
	p.touch()
}

func (p *Plan) Deactivate() {
	p.status = vo.PlanStatusInactive
	p.touch()
}

func (p *Plan) touch() {
	p.updatedAt = biztime.NowUTC()
	p.version++
}
