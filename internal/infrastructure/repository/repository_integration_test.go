package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/domain/favorite"
	"github.com/planhaus/planhaus/internal/domain/order"
	vo "github.com/planhaus/planhaus/internal/domain/order/valueobjects"
	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/infrastructure/persistence/models"
	"github.com/planhaus/planhaus/internal/shared/biztime"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)               {}
func (nopLogger) Info(msg string, args ...any)                {}
func (nopLogger) Warn(msg string, args ...any)                {}
func (nopLogger) Error(msg string, args ...any)               {}
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (l nopLogger) With(args ...interface{}) logger.Interface { return l }
func (l nopLogger) Named(name string) logger.Interface        { return l }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.PlanModel{},
		&models.OrderModel{},
		&models.UserModel{},
		&models.FavoriteModel{},
	)
	require.NoError(t, err)

	return db
}

func createTestPlan(t *testing.T, title string, category catalogVO.Category, basicPrice uint64) *catalog.Plan {
	t.Helper()
	plan, err := catalog.NewPlan(catalog.NewPlanParams{
		Title:         title,
		Description:   "A test plan",
		Category:      category,
		Bedrooms:      3,
		Bathrooms:     2,
		FloorAreaSqm:  180,
		BasicPrice:    basicPrice,
		StandardPrice: basicPrice * 2,
		PremiumPrice:  basicPrice * 3,
		Currency:      "NGN",
		PrimaryImage:  "https://cdn.example.com/plans/primary.jpg",
		GalleryImages: []string{"https://cdn.example.com/plans/1.jpg"},
	})
	require.NoError(t, err)
	return plan
}

func createTestOrder(t *testing.T, userID, planID uint) *order.Order {
	t.Helper()
	o, err := order.NewOrder(userID, planID, catalogVO.TierStandard, vo.NewMoney(320000, "NGN"), "buyer@example.com")
	require.NoError(t, err)
	return o
}

func TestPlanRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, nopLogger{})
	ctx := context.Background()

	plan := createTestPlan(t, "Lekki Villa", catalogVO.CategoryVilla, 150000)
	require.NoError(t, repo.Create(ctx, plan))
	assert.NotZero(t, plan.ID())

	found, err := repo.GetByID(ctx, plan.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Lekki Villa", found.Title())
	assert.Equal(t, catalogVO.CategoryVilla, found.Category())
	assert.Equal(t, uint64(150000), found.BasicPrice())
	assert.Equal(t, []string{"https://cdn.example.com/plans/1.jpg"}, found.GalleryImages())

	bySID, err := repo.GetBySID(ctx, plan.SID())
	require.NoError(t, err)
	require.NotNil(t, bySID)
	assert.Equal(t, plan.ID(), bySID.ID())
}

func TestPlanRepository_GetMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, nopLogger{})
	ctx := context.Background()

	found, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, found)

	bySID, err := repo.GetBySID(ctx, "plan_missing")
	require.NoError(t, err)
	assert.Nil(t, bySID)
}

func TestPlanRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, nopLogger{})
	ctx := context.Background()

	plan := createTestPlan(t, "Old Title", catalogVO.CategoryBungalow, 100000)
	require.NoError(t, repo.Create(ctx, plan))

	newTitle := "New Title"
	require.NoError(t, plan.UpdateDetails(catalog.UpdateDetailsParams{Title: &newTitle}))
	plan.Activate()
	require.NoError(t, repo.Update(ctx, plan))

	found, err := repo.GetByID(ctx, plan.ID())
	require.NoError(t, err)
	assert.Equal(t, "New Title", found.Title())
	assert.Equal(t, catalogVO.PlanStatusActive, found.Status())
}

func TestPlanRepository_ListFiltersAndSorts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, nopLogger{})
	ctx := context.Background()

	cheap := createTestPlan(t, "Cheap Bungalow", catalogVO.CategoryBungalow, 100000)
	cheap.Activate()
	mid := createTestPlan(t, "Mid Villa", catalogVO.CategoryVilla, 200000)
	mid.Activate()
	pricey := createTestPlan(t, "Pricey Villa", catalogVO.CategoryVilla, 300000)

	for _, p := range []*catalog.Plan{cheap, mid, pricey} {
		require.NoError(t, repo.Create(ctx, p))
		require.NoError(t, repo.Update(ctx, p))
	}

	plans, total, err := repo.List(ctx, catalog.ListFilters{Status: "active"}, catalog.SortPriceAsc, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, plans, 2)
	assert.Equal(t, "Cheap Bungalow", plans[0].Title())
	assert.Equal(t, "Mid Villa", plans[1].Title())

	plans, total, err = repo.List(ctx, catalog.ListFilters{Category: "villa"}, catalog.SortFeatured, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	plans, total, err = repo.List(ctx, catalog.ListFilters{MinPrice: 150000, MaxPrice: 250000}, catalog.SortPriceAsc, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Mid Villa", plans[0].Title())
}

func TestOrderRepository_CreateAndLookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db, nopLogger{})
	ctx := context.Background()

	o := createTestOrder(t, 7, 1)
	require.NoError(t, repo.Create(ctx, o))
	assert.NotZero(t, o.ID())

	require.NoError(t, o.MarkProcessing("REF123"))
	require.NoError(t, repo.Update(ctx, o))

	byRef, err := repo.GetByProviderReference(ctx, "REF123")
	require.NoError(t, err)
	require.NotNil(t, byRef)
	assert.Equal(t, o.SID(), byRef.SID())
	assert.Equal(t, vo.OrderStatusProcessing, byRef.Status())
	assert.Equal(t, int64(320000), byRef.Amount().AmountMinor())
	assert.Equal(t, "buyer@example.com", byRef.PayerEmail())

	missing, err := repo.GetByProviderReference(ctx, "REF999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOrderRepository_ProviderReferenceUnique(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db, nopLogger{})
	ctx := context.Background()

	first := createTestOrder(t, 7, 1)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, first.MarkProcessing("REF123"))
	require.NoError(t, repo.Update(ctx, first))

	// A second order can never carry the same gateway reference; the unique
	// index is what keeps a double-delivered confirmation from settling twice.
	second := createTestOrder(t, 8, 1)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, second.MarkProcessing("REF123"))
	assert.Error(t, repo.Update(ctx, second))

	kept, err := repo.GetByProviderReference(ctx, "REF123")
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, first.SID(), kept.SID())
}

func TestOrderRepository_CompleteRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db, nopLogger{})
	ctx := context.Background()

	o := createTestOrder(t, 7, 1)
	require.NoError(t, repo.Create(ctx, o))
	require.NoError(t, o.MarkProcessing("REF123"))
	require.NoError(t, repo.Update(ctx, o))

	paidAt := biztime.NowUTC().Truncate(time.Second)
	require.NoError(t, o.Complete(paidAt))
	require.NoError(t, repo.Update(ctx, o))

	found, err := repo.GetBySID(ctx, o.SID())
	require.NoError(t, err)
	assert.Equal(t, vo.OrderStatusCompleted, found.Status())
	require.NotNil(t, found.PaidAt())
	assert.WithinDuration(t, paidAt, *found.PaidAt(), time.Second)
}

func TestOrderRepository_ListByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db, nopLogger{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, createTestOrder(t, 7, uint(i+1))))
	}
	require.NoError(t, repo.Create(ctx, createTestOrder(t, 8, 1)))

	orders, total, err := repo.ListByUserID(ctx, 7, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 3)

	orders, total, err = repo.ListByUserID(ctx, 7, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 2)
}

func TestOrderRepository_ListStaleProcessing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db, nopLogger{})
	ctx := context.Background()

	stale := createTestOrder(t, 7, 1)
	require.NoError(t, repo.Create(ctx, stale))
	require.NoError(t, stale.MarkProcessing("REF_STALE"))
	require.NoError(t, repo.Update(ctx, stale))

	// Push the stale order's updated_at into the past.
	past := biztime.NowUTC().Add(-2 * time.Hour)
	require.NoError(t, db.Model(&models.OrderModel{}).
		Where("id = ?", stale.ID()).
		Update("updated_at", past).Error)

	fresh := createTestOrder(t, 7, 2)
	require.NoError(t, repo.Create(ctx, fresh))
	require.NoError(t, fresh.MarkProcessing("REF_FRESH"))
	require.NoError(t, repo.Update(ctx, fresh))

	found, err := repo.ListStaleProcessing(ctx, biztime.NowUTC().Add(-1*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, stale.SID(), found[0].SID())
}

func TestOrderRepository_TotalsByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db, nopLogger{})
	ctx := context.Background()

	completed := createTestOrder(t, 7, 1)
	require.NoError(t, repo.Create(ctx, completed))
	require.NoError(t, completed.MarkProcessing("REF1"))
	require.NoError(t, completed.Complete(biztime.NowUTC()))
	require.NoError(t, repo.Update(ctx, completed))

	pending := createTestOrder(t, 7, 2)
	require.NoError(t, repo.Create(ctx, pending))

	from := biztime.NowUTC().Add(-1 * time.Hour)
	to := biztime.NowUTC().Add(1 * time.Hour)

	totals, err := repo.TotalsByStatus(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byStatus := make(map[vo.OrderStatus]order.StatusTotals, len(totals))
	for _, tt := range totals {
		byStatus[tt.Status] = tt
	}
	assert.Equal(t, int64(1), byStatus[vo.OrderStatusCompleted].Count)
	assert.Equal(t, int64(320000), byStatus[vo.OrderStatusCompleted].AmountMinor)
	assert.Equal(t, int64(1), byStatus[vo.OrderStatusPending].Count)
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, nopLogger{})
	ctx := context.Background()

	u, err := user.NewUser("Jane@Example.com", "hashed-password", "Jane")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID())

	byEmail, err := repo.GetByEmail(ctx, "JANE@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "jane@example.com", byEmail.Email())
	assert.Equal(t, u.SID(), byEmail.SID())

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_DuplicateEmailFails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, nopLogger{})
	ctx := context.Background()

	first, err := user.NewUser("jane@example.com", "hash1", "Jane")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	second, err := user.NewUser("jane@example.com", "hash2", "Impostor")
	require.NoError(t, err)
	err = repo.Create(ctx, second)
	assert.Error(t, err)
}

func TestFavoriteRepository_AddIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFavoriteRepository(db, nopLogger{})
	ctx := context.Background()

	f, err := favorite.NewFavorite(7, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, f))

	again, err := favorite.NewFavorite(7, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, again))

	exists, err := repo.Exists(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, exists)

	_, total, err := repo.ListByUserID(ctx, 7, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestFavoriteRepository_RemoveAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFavoriteRepository(db, nopLogger{})
	ctx := context.Background()

	for _, planID := range []uint{1, 2, 3} {
		f, err := favorite.NewFavorite(7, planID)
		require.NoError(t, err)
		require.NoError(t, repo.Add(ctx, f))
	}

	require.NoError(t, repo.Remove(ctx, 7, 2))

	planIDs, err := repo.ListPlanIDsByUserID(ctx, 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 3}, planIDs)

	exists, err := repo.Exists(ctx, 7, 2)
	require.NoError(t, err)
	assert.False(t, exists)
}
