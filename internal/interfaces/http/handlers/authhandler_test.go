package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userUsecases "github.com/planhaus/planhaus/internal/application/user/usecases"
	"github.com/planhaus/planhaus/internal/infrastructure/auth"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *fakeUserRepo) {
	t.Helper()

	repo := newFakeUserRepo()
	hasher := auth.NewBcryptPasswordHasher(4)
	jwtSvc := auth.NewJWTService("test-secret", 15, 7)

	handler := NewAuthHandler(
		userUsecases.NewRegisterUseCase(repo, hasher, jwtSvc, nopLogger{}),
		userUsecases.NewLoginUseCase(repo, hasher, jwtSvc, nopLogger{}),
		jwtSvc,
		repo,
		nopLogger{},
	)

	router := gin.New()
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/refresh", handler.Refresh)
	return router, repo
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) SessionResponse {
	t.Helper()

	var resp struct {
		Data SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := postJSON(router, "/auth/register", gin.H{
		"email":    "ada@example.com",
		"password": "password123",
		"name":     "Ada Obi",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	session := decodeSession(t, w)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.Equal(t, "user", session.User.Role)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	w = postJSON(router, "/auth/login", gin.H{
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeSession(t, w).AccessToken)
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	router, _ := setupAuthRouter(t)

	payload := gin.H{"email": "ada@example.com", "password": "password123", "name": "Ada Obi"}
	require.Equal(t, http.StatusCreated, postJSON(router, "/auth/register", payload).Code)
	assert.Equal(t, http.StatusConflict, postJSON(router, "/auth/register", payload).Code)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	router, _ := setupAuthRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(router, "/auth/register", gin.H{
		"email": "ada@example.com", "password": "password123", "name": "Ada Obi",
	}).Code)

	w := postJSON(router, "/auth/login", gin.H{
		"email": "ada@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh(t *testing.T) {
	router, _ := setupAuthRouter(t)

	session := decodeSession(t, postJSON(router, "/auth/register", gin.H{
		"email": "ada@example.com", "password": "password123", "name": "Ada Obi",
	}))

	w := postJSON(router, "/auth/refresh", gin.H{"refresh_token": session.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	refreshed := decodeSession(t, w)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, session.User.ID, refreshed.User.ID)
}

func TestAuthHandler_RefreshRejectsAccessToken(t *testing.T) {
	router, _ := setupAuthRouter(t)

	session := decodeSession(t, postJSON(router, "/auth/register", gin.H{
		"email": "ada@example.com", "password": "password123", "name": "Ada Obi",
	}))

	w := postJSON(router, "/auth/refresh", gin.H{"refresh_token": session.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RefreshRejectsSuspendedAccount(t *testing.T) {
	router, repo := setupAuthRouter(t)

	session := decodeSession(t, postJSON(router, "/auth/register", gin.H{
		"email": "ada@example.com", "password": "password123", "name": "Ada Obi",
	}))

	u, err := repo.GetByEmail(t.Context(), "ada@example.com")
	require.NoError(t, err)
	require.NoError(t, u.Suspend())

	w := postJSON(router, "/auth/refresh", gin.H{"refresh_token": session.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
