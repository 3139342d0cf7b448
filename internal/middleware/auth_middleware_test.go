package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/pkg/auth"
)

func testRouter(t *testing.T, jwtService *auth.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	m := NewAuthMiddleware(jwtService)
	authed := router.Group("/", m.JWTAuth())
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetInt64("userID")})
	})
	authed.GET("/admin", m.RoleRequired(string(models.RoleAslab)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func testToken(t *testing.T, jwtService *auth.JWTService, role models.RoleType) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:       42,
		Email:    "user@lab.edu",
		RoleType: role,
	})
	require.NoError(t, err)
	return accessToken
}

func newTestJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "test",
	})
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := testRouter(t, newTestJWTService(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthValidBearerToken(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := testRouter(t, jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, jwtService, models.RolePraktikan))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestJWTAuthAcceptsRawToken(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := testRouter(t, jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", testToken(t, jwtService, models.RolePraktikan))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	jwtService := newTestJWTService(-time.Minute)
	router := testRouter(t, jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, jwtService, models.RolePraktikan))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestJWTAuthGarbageToken(t *testing.T) {
	router := testRouter(t, newTestJWTService(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleRequired(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := testRouter(t, jwtService)

	tests := []struct {
		name     string
		role     models.RoleType
		wantCode int
	}{
		{name: "aslab allowed", role: models.RoleAslab, wantCode: http.StatusOK},
		{name: "praktikan forbidden", role: models.RolePraktikan, wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+testToken(t, jwtService, tt.role))
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
