package handlers

import (
	"time"

	"github.com/planhaus/planhaus/internal/domain/catalog"
)

// PlanSummaryResponse is the storefront listing card for a house plan.
// Prices are in minor units (kobo for NGN).
type PlanSummaryResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Bedrooms      uint   `json:"bedrooms"`
	Bathrooms     uint   `json:"bathrooms"`
	FloorAreaSqm  uint   `json:"floor_area_sqm"`
	BasicPrice    uint64 `json:"basic_price"`
	StandardPrice uint64 `json:"standard_price"`
	PremiumPrice  uint64 `json:"premium_price"`
	Currency      string `json:"currency"`
	Featured      bool   `json:"featured"`
	Status        string `json:"status"`
	PrimaryImage  string `json:"primary_image,omitempty"`
	// Only set for authenticated storefront requests.
	IsFavorite *bool `json:"is_favorite,omitempty"`
}

// PlanDetailResponse is the full plan detail page payload. The description is
// rendered to sanitized HTML server-side.
type PlanDetailResponse struct {
	PlanSummaryResponse
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html,omitempty"`
	GalleryImages   []string  `json:"gallery_images"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toPlanSummaryResponse(p *catalog.Plan) PlanSummaryResponse {
	return PlanSummaryResponse{
		ID:            p.SID(),
		Title:         p.Title(),
		Category:      p.Category().String(),
		Bedrooms:      p.Bedrooms(),
		Bathrooms:     p.Bathrooms(),
		FloorAreaSqm:  p.FloorAreaSqm(),
		BasicPrice:    p.BasicPrice(),
		StandardPrice: p.StandardPrice(),
		PremiumPrice:  p.PremiumPrice(),
		Currency:      p.Currency(),
		Featured:      p.Featured(),
		Status:        p.Status().String(),
		PrimaryImage:  p.PrimaryImage(),
	}
}

func toPlanSummaryResponses(plans []*catalog.Plan) []PlanSummaryResponse {
	items := make([]PlanSummaryResponse, 0, len(plans))
	for _, p := range plans {
		items = append(items, toPlanSummaryResponse(p))
	}
	return items
}

func toPlanDetailResponse(p *catalog.Plan, descriptionHTML string) PlanDetailResponse {
	gallery := p.GalleryImages()
	if gallery == nil {
		gallery = []string{}
	}

	return PlanDetailResponse{
		PlanSummaryResponse: toPlanSummaryResponse(p),
		Description:         p.Description(),
		DescriptionHTML:     descriptionHTML,
		GalleryImages:       gallery,
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
	}
}
