package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/domain/order"
	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                   {}
func (nopLogger) Info(msg string, args ...any)                    {}
func (nopLogger) Warn(msg string, args ...any)                    {}
func (nopLogger) Error(msg string, args ...any)                   {}
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (n nopLogger) With(args ...any) logger.Interface             { return n }
func (n nopLogger) Named(name string) logger.Interface            { return n }

// fakePlanRepo is an in-memory catalog.PlanRepository for handler tests.
type fakePlanRepo struct {
	plans  map[uint]*catalog.Plan
	nextID uint
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[uint]*catalog.Plan{}, nextID: 1}
}

func (r *fakePlanRepo) Create(ctx context.Context, plan *catalog.Plan) error {
	if err := plan.SetID(r.nextID); err != nil {
		return err
	}
	r.plans[r.nextID] = plan
	r.nextID++
	return nil
}

func (r *fakePlanRepo) GetByID(ctx context.Context, planID uint) (*catalog.Plan, error) {
	return r.plans[planID], nil
}

func (r *fakePlanRepo) GetBySID(ctx context.Context, sid string) (*catalog.Plan, error) {
	for _, p := range r.plans {
		if p.SID() == sid {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePlanRepo) Update(ctx context.Context, plan *catalog.Plan) error {
	r.plans[plan.ID()] = plan
	return nil
}

func (r *fakePlanRepo) Delete(ctx context.Context, planID uint) error {
	delete(r.plans, planID)
	return nil
}

func (r *fakePlanRepo) List(ctx context.Context, filters catalog.ListFilters, sort catalog.SortKey, offset, limit int) ([]*catalog.Plan, int64, error) {
	var matched []*catalog.Plan
	for _, p := range r.plans {
		if filters.Status != "" && p.Status().String() != filters.Status {
			continue
		}
		if filters.Category != "" && p.Category().String() != filters.Category {
			continue
		}
		matched = append(matched, p)
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// fakeUserRepo is an in-memory user.UserRepository for handler tests.
type fakeUserRepo struct {
	users  map[uint]*user.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*user.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	if err := u.SetID(r.nextID); err != nil {
		return err
	}
	r.users[r.nextID] = u
	r.nextID++
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	return r.users[userID], nil
}

func (r *fakeUserRepo) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	for _, u := range r.users {
		if u.SID() == sid {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]*user.User, int64, error) {
	var all []*user.User
	for _, u := range r.users {
		all = append(all, u)
	}
	return all, int64(len(all)), nil
}

// fakeOrderRepo is an in-memory order.OrderRepository for handler tests.
type fakeOrderRepo struct {
	orders map[uint]*order.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uint]*order.Order{}, nextID: 1}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	if err := o.SetID(r.nextID); err != nil {
		return err
	}
	r.orders[r.nextID] = o
	r.nextID++
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, orderID uint) (*order.Order, error) {
	return r.orders[orderID], nil
}

func (r *fakeOrderRepo) GetBySID(ctx context.Context, sid string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.SID() == sid {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetByProviderReference(ctx context.Context, reference string) (*order.Order, error) {
	for _, o := range r.orders {
		if ref := o.ProviderReference(); ref != nil && *ref == reference {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, o *order.Order) error {
	r.orders[o.ID()] = o
	return nil
}

func (r *fakeOrderRepo) ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]*order.Order, int64, error) {
	var matched []*order.Order
	for _, o := range r.orders {
		if o.UserID() == userID {
			matched = append(matched, o)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeOrderRepo) List(ctx context.Context, filters order.ListFilters, offset, limit int) ([]*order.Order, int64, error) {
	var matched []*order.Order
	for _, o := range r.orders {
		if filters.UserID != 0 && o.UserID() != filters.UserID {
			continue
		}
		if filters.Status != "" && o.Status().String() != filters.Status {
			continue
		}
		matched = append(matched, o)
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeOrderRepo) ListStaleProcessing(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) TotalsByStatus(ctx context.Context, from, to time.Time) ([]order.StatusTotals, error) {
	totals := map[string]*order.StatusTotals{}
	for _, o := range r.orders {
		t, ok := totals[o.Status().String()]
		if !ok {
			t = &order.StatusTotals{Status: o.Status()}
			totals[o.Status().String()] = t
		}
		t.Count++
		t.AmountMinor += o.Amount().AmountMinor()
	}

	var result []order.StatusTotals
	for _, t := range totals {
		result = append(result, *t)
	}
	return result, nil
}

func newActivePlan(t *testing.T, repo *fakePlanRepo, title string) *catalog.Plan {
	t.Helper()

	plan, err := catalog.NewPlan(catalog.NewPlanParams{
		Title:         title,
		Description:   "A compact family home with **generous** living space.",
		Category:      catalogVO.CategoryBungalow,
		Bedrooms:      3,
		Bathrooms:     2,
		FloorAreaSqm:  140,
		BasicPrice:    150000,
		StandardPrice: 300000,
		PremiumPrice:  500000,
		Currency:      "NGN",
		PrimaryImage:  "https://cdn.planhaus.ng/img/main.jpg",
	})
	require.NoError(t, err)

	plan.Activate()
	require.NoError(t, repo.Create(context.Background(), plan))
	return plan
}
