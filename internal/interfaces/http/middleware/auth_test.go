package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planhaus/planhaus/internal/domain/user"
	"github.com/planhaus/planhaus/internal/infrastructure/auth"
	"github.com/planhaus/planhaus/internal/shared/constants"
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

type staticUserRepo struct {
	user *user.User
}

func (r *staticUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (r *staticUserRepo) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	return nil, nil
}
func (r *staticUserRepo) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	if r.user != nil && r.user.SID() == sid {
		return r.user, nil
	}
	return nil, nil
}
func (r *staticUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}
func (r *staticUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (r *staticUserRepo) List(ctx context.Context, offset, limit int) ([]*user.User, int64, error) {
	return nil, 0, nil
}

func newTestUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser("ada@example.com", "$2a$04$hash", "Ada Obi")
	require.NoError(t, err)
	require.NoError(t, u.SetID(1))
	return u
}

func setupAuthTest(t *testing.T, u *user.User) (*gin.Engine, *auth.JWTService) {
	t.Helper()

	jwtSvc := auth.NewJWTService("test-secret", 15, 7)
	m := NewAuthMiddleware(jwtSvc, &staticUserRepo{user: u}, nopLogger{})

	router := gin.New()
	router.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetUint(constants.ContextKeyUserID),
			"user_sid": c.GetString(constants.ContextKeyUserSID),
		})
	})
	return router, jwtSvc
}

func TestRequireAuth_ValidToken(t *testing.T) {
	u := newTestUser(t)
	router, jwtSvc := setupAuthTest(t, u)

	tokens, err := jwtSvc.IssueTokens(u)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), u.SID())
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	router, _ := setupAuthTest(t, newTestUser(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_RejectsRefreshToken(t *testing.T) {
	u := newTestUser(t)
	router, jwtSvc := setupAuthTest(t, u)

	tokens, err := jwtSvc.IssueTokens(u)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.RefreshToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_SuspendedAccount(t *testing.T) {
	u := newTestUser(t)
	router, jwtSvc := setupAuthTest(t, u)

	tokens, err := jwtSvc.IssueTokens(u)
	require.NoError(t, err)
	require.NoError(t, u.Suspend())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuth_UnknownSubject(t *testing.T) {
	u := newTestUser(t)
	// Router resolves against an empty repo, so the subject no longer exists.
	router, _ := setupAuthTest(t, nil)

	jwtSvc := auth.NewJWTService("test-secret", 15, 7)
	tokens, err := jwtSvc.IssueTokens(u)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func setupOptionalAuthTest(t *testing.T, u *user.User) (*gin.Engine, *auth.JWTService) {
	t.Helper()

	jwtSvc := auth.NewJWTService("test-secret", 15, 7)
	m := NewAuthMiddleware(jwtSvc, &staticUserRepo{user: u}, nopLogger{})

	router := gin.New()
	router.GET("/catalog", m.OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint(constants.ContextKeyUserID),
		})
	})
	return router, jwtSvc
}

func TestOptionalAuth_ValidToken(t *testing.T) {
	u := newTestUser(t)
	router, jwtSvc := setupOptionalAuthTest(t, u)

	tokens, err := jwtSvc.IssueTokens(u)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":1`)
}

func TestOptionalAuth_NoHeaderContinuesAnonymously(t *testing.T) {
	router, _ := setupOptionalAuthTest(t, newTestUser(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}

func TestOptionalAuth_BadTokenContinuesAnonymously(t *testing.T) {
	router, _ := setupOptionalAuthTest(t, newTestUser(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}

func TestOptionalAuth_SuspendedAccountContinuesAnonymously(t *testing.T) {
	u := newTestUser(t)
	router, jwtSvc := setupOptionalAuthTest(t, u)

	tokens, err := jwtSvc.IssueTokens(u)
	require.NoError(t, err)
	require.NoError(t, u.Suspend())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}
