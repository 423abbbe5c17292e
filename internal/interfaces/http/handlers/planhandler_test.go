package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogUsecases "github.com/planhaus/planhaus/internal/application/catalog/usecases"
	"github.com/planhaus/planhaus/internal/domain/favorite"
	"github.com/planhaus/planhaus/internal/shared/constants"
	"github.com/planhaus/planhaus/internal/shared/services/markdown"
)

func setupPlanRouter(t *testing.T, repo *fakePlanRepo) *gin.Engine {
	t.Helper()
	return setupAuthedPlanRouter(t, repo, newFakeFavoriteRepo(), 0)
}

// setupAuthedPlanRouter registers the catalog routes as seen by a signed-in
// visitor. A zero userID keeps the request anonymous.
func setupAuthedPlanRouter(t *testing.T, repo *fakePlanRepo, favRepo *fakeFavoriteRepo, userID uint) *gin.Engine {
	t.Helper()

	handler := NewPlanHandler(
		catalogUsecases.NewListPlansUseCase(repo, nopLogger{}),
		catalogUsecases.NewGetPlanUseCase(repo, markdown.NewService(), nopLogger{}),
		favRepo,
		nopLogger{},
	)

	router := gin.New()
	if userID != 0 {
		router.Use(func(c *gin.Context) {
			c.Set(constants.ContextKeyUserID, userID)
			c.Next()
		})
	}
	router.GET("/plans", handler.ListPlans)
	router.GET("/plans/:id", handler.GetPlan)
	return router
}

func TestPlanHandler_ListPlans(t *testing.T) {
	repo := newFakePlanRepo()
	newActivePlan(t, repo, "Gwarinpa Family Bungalow")
	newActivePlan(t, repo, "Surulere Starter Home")
	router := setupPlanRouter(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Items []PlanSummaryResponse `json:"items"`
			Total int64                 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(2), resp.Data.Total)
	assert.Len(t, resp.Data.Items, 2)
	assert.Equal(t, uint64(150000), resp.Data.Items[0].BasicPrice)
	assert.Equal(t, "NGN", resp.Data.Items[0].Currency)
	assert.Nil(t, resp.Data.Items[0].IsFavorite)
}

func TestPlanHandler_ListPlansRejectsBadQuery(t *testing.T) {
	router := setupPlanRouter(t, newFakePlanRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plans?min_bedrooms=three", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanHandler_GetPlan(t *testing.T) {
	repo := newFakePlanRepo()
	plan := newActivePlan(t, repo, "Ikoyi Grand Villa")
	router := setupPlanRouter(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plans/"+plan.SID(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data PlanDetailResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, plan.SID(), resp.Data.ID)
	assert.Equal(t, "Ikoyi Grand Villa", resp.Data.Title)
	assert.Contains(t, resp.Data.DescriptionHTML, "<strong>generous</strong>")
}

func TestPlanHandler_GetPlanNotFound(t *testing.T) {
	router := setupPlanRouter(t, newFakePlanRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plans/plan_doesnotexist", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlanHandler_GetPlanRejectsBadSID(t *testing.T) {
	router := setupPlanRouter(t, newFakePlanRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plans/ord_wrongprefix", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanHandler_ListPlansMarksSavedPlans(t *testing.T) {
	repo := newFakePlanRepo()
	saved := newActivePlan(t, repo, "Lekki Courtyard Duplex")
	newActivePlan(t, repo, "Enugu Hillside Cottage")

	favRepo := newFakeFavoriteRepo()
	fav, err := favorite.NewFavorite(7, saved.ID())
	require.NoError(t, err)
	require.NoError(t, favRepo.Add(context.Background(), fav))

	router := setupAuthedPlanRouter(t, repo, favRepo, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Items []PlanSummaryResponse `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Items, 2)

	flags := map[string]bool{}
	for _, item := range resp.Data.Items {
		require.NotNil(t, item.IsFavorite)
		flags[item.ID] = *item.IsFavorite
	}
	assert.True(t, flags[saved.SID()])
	assert.Equal(t, 1, countTrue(flags))
}

func TestPlanHandler_GetPlanMarksSavedPlan(t *testing.T) {
	repo := newFakePlanRepo()
	plan := newActivePlan(t, repo, "Abuja Garden Villa")

	favRepo := newFakeFavoriteRepo()
	fav, err := favorite.NewFavorite(7, plan.ID())
	require.NoError(t, err)
	require.NoError(t, favRepo.Add(context.Background(), fav))

	router := setupAuthedPlanRouter(t, repo, favRepo, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plans/"+plan.SID(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data PlanDetailResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.IsFavorite)
	assert.True(t, *resp.Data.IsFavorite)
}

func countTrue(flags map[string]bool) int {
	n := 0
	for _, v := range flags {
		if v {
			n++
		}
	}
	return n
}
