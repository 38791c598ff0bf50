package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TestimonyAdegoke/montessa-sub000/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(t *testing.T, jwtService *auth.JWTService, roles ...string) *gin.Engine {
	t.Helper()
	r := gin.New()
	group := r.Group("/", AuthMiddleware(jwtService))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenant": MustTenantID(c)})
	})
	return r
}

func issueToken(t *testing.T, svc *auth.JWTService, roles ...string) string {
	t.Helper()
	pair, err := svc.GenerateTokenPair(uuid.New(), uuid.New(), "teacher@school.test", roles)
	require.NoError(t, err)
	return pair.AccessToken
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	t.Setenv("MONTESSA_JWT_SECRET", "test-secret")
	r := protectedRouter(t, auth.NewJWTService())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	t.Setenv("MONTESSA_JWT_SECRET", "test-secret")
	r := protectedRouter(t, auth.NewJWTService())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsForeignToken(t *testing.T) {
	t.Setenv("MONTESSA_JWT_SECRET", "secret-one")
	foreign := issueToken(t, auth.NewJWTService())

	t.Setenv("MONTESSA_JWT_SECRET", "secret-two")
	r := protectedRouter(t, auth.NewJWTService())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	t.Setenv("MONTESSA_JWT_SECRET", "test-secret")
	svc := auth.NewJWTService()
	r := protectedRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, svc))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	t.Setenv("MONTESSA_JWT_SECRET", "test-secret")
	svc := auth.NewJWTService()
	r := protectedRouter(t, svc, "admin", "site_editor")

	// An editor passes.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, "site_editor"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// A plain teacher does not.
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, "teacher"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginRateLimiterBlocksAfterMaxFailures(t *testing.T) {
	rl := NewLoginRateLimiter()
	key := "someone@school.test@demo"

	for i := 0; i < maxLoginAttempts-1; i++ {
		rl.RecordFailure(key)
		assert.False(t, rl.IsBlocked(key), "blocked too early at attempt %d", i+1)
	}
	rl.RecordFailure(key)
	assert.True(t, rl.IsBlocked(key))

	// Other identities are unaffected.
	assert.False(t, rl.IsBlocked("other@school.test@demo"))
}

func TestLoginRateLimiterResetsOnSuccess(t *testing.T) {
	rl := NewLoginRateLimiter()
	key := "someone@school.test@demo"

	rl.RecordFailure(key)
	rl.RecordFailure(key)
	rl.RecordSuccess(key)

	for i := 0; i < maxLoginAttempts-1; i++ {
		rl.RecordFailure(key)
	}
	assert.False(t, rl.IsBlocked(key))
}
