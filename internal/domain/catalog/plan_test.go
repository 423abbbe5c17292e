package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
)

// --- helpers ---

func validPlanParams() NewPlanParams {
	return NewPlanParams{
		Title:         "Lakeside Villa",
		Description:   "Four bedroom villa with open plan living.",
		Category:      vo.CategoryVilla,
		Bedrooms:      4,
		Bathrooms:     3,
		FloorAreaSqm:  320,
		BasicPrice:    2500,
		StandardPrice: 3200,
		PremiumPrice:  4500,
		Currency:      "NGN",
	}
}

func validPlan(t *testing.T) *Plan {
	t.Helper()
	p, err := NewPlan(validPlanParams())
	require.NoError(t, err)
	return p
}

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewPlan_ValidInput(t *testing.T) {
	p := validPlan(t)

	assert.Equal(t, "Lakeside Villa", p.Title())
	assert.Equal(t, vo.CategoryVilla, p.Category())
	assert.Equal(t, uint64(2500), p.BasicPrice())
	assert.Equal(t, uint64(3200), p.StandardPrice())
	assert.Equal(t, uint64(4500), p.PremiumPrice())
	assert.Equal(t, vo.PlanStatusDraft, p.Status())
	assert.False(t, p.Featured())
	assert.NotEmpty(t, p.SID())
	assert.Equal(t, uint(0), p.ID())
}

func TestNewPlan_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NewPlanParams)
	}{
		{name: "empty title", mutate: func(p *NewPlanParams) { p.Title = "" }},
		{name: "invalid category", mutate: func(p *NewPlanParams) { p.Category = "castle" }},
		{name: "zero basic price", mutate: func(p *NewPlanParams) { p.BasicPrice = 0 }},
		{name: "zero standard price", mutate: func(p *NewPlanParams) { p.StandardPrice = 0 }},
		{name: "zero premium price", mutate: func(p *NewPlanParams) { p.PremiumPrice = 0 }},
		{name: "empty currency", mutate: func(p *NewPlanParams) { p.Currency = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validPlanParams()
			tt.mutate(&params)
			_, err := NewPlan(params)
			assert.Error(t, err)
		})
	}
}

func TestReconstructPlan_RequiresID(t *testing.T) {
	_, err := ReconstructPlan(ReconstructPlanParams{
		Title:    "Lakeside Villa",
		Category: "villa",
		Status:   "active",
	})
	assert.Error(t, err)
}

// =============================================================================
// Price Resolution Tests
// =============================================================================

func TestPriceFor(t *testing.T) {
	p := validPlan(t)

	tests := []struct {
		tier vo.Tier
		want uint64
	}{
		{tier: vo.TierBasic, want: 2500},
		{tier: vo.TierStandard, want: 3200},
		{tier: vo.TierPremium, want: 4500},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			got, err := p.PriceFor(tt.tier)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceFor_InvalidTier(t *testing.T) {
	p := validPlan(t)
	_, err := p.PriceFor("platinum")
	assert.Error(t, err)
}

// =============================================================================
// Lifecycle Tests
// =============================================================================

func TestPlanLifecycle(t *testing.T) {
	p := validPlan(t)
	assert.False(t, p.IsPurchasable(), "draft plans must not be purchasable")

	p.Activate()
	assert.Equal(t, vo.PlanStatusActive, p.Status())
	assert.True(t, p.IsPurchasable())

	p.Deactivate()
	assert.Equal(t, vo.PlanStatusInactive, p.Status())
	assert.False(t, p.IsPurchasable())
}

func TestUpdateDetails(t *testing.T) {
	p := validPlan(t)
	before := p.Version()

	title := "Hillside Bungalow"
	category := "bungalow"
	bedrooms := uint(3)
	err := p.UpdateDetails(UpdateDetailsParams{
		Title:    &title,
		Category: &category,
		Bedrooms: &bedrooms,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hillside Bungalow", p.Title())
	assert.Equal(t, vo.CategoryBungalow, p.Category())
	assert.Equal(t, uint(3), p.Bedrooms())
	assert.Greater(t, p.Version(), before)
}

func TestUpdateDetails_InvalidInput(t *testing.T) {
	p := validPlan(t)

	empty := ""
	assert.Error(t, p.UpdateDetails(UpdateDetailsParams{Title: &empty}))

	bad := "castle"
	assert.Error(t, p.UpdateDetails(UpdateDetailsParams{Category: &bad}))
}

func TestSetPrices(t *testing.T) {
	p := validPlan(t)

	require.NoError(t, p.SetPrices(1000, 2000, 3000))
	got, err := p.PriceFor(vo.TierStandard)
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), got)

	assert.Error(t, p.SetPrices(0, 2000, 3000))
}

func TestSetID(t *testing.T) {
	p := validPlan(t)

	require.NoError(t, p.SetID(7))
	assert.Equal(t, uint(7), p.ID())

	assert.Error(t, p.SetID(8), "ID must only be assigned once")
	assert.Error(t, validPlan(t).SetID(0))
}

func TestTouchAdvancesUpdatedAt(t *testing.T) {
	p := validPlan(t)
	created := p.CreatedAt()

	time.Sleep(time.Millisecond)
	p.SetFeatured(true)

	assert.True(t, p.Featured())
	assert.True(t, p.UpdatedAt().After(created) || p.UpdatedAt().Equal(created))
}
