package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/growthlab/boostup/pkg/authz"
	"github.com/growthlab/boostup/pkg/config"
)

func newTestAuth(adminIDs ...string) *AuthMiddleware {
	cfg := &config.Config{
		Auth:         config.AuthConfig{JWTSecret: "test-secret"},
		AdminUserIDs: adminIDs,
	}
	return NewAuthMiddleware(cfg, authz.NewAllowList(adminIDs), nil, zap.NewNop().Sugar())
}

func TestRequireAuthMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestAuth()

	r := gin.New()
	r.GET("/x", m.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthMalformedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestAuth()

	r := gin.New()
	r.GET("/x", m.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestAuth("admin-1")

	r := gin.New()
	r.GET("/a", func(c *gin.Context) { c.Set("user_id", "admin-1") }, m.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/b", func(c *gin.Context) { c.Set("user_id", "user-1") }, m.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/c", m.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, tc := range []struct {
		path string
		want int
	}{
		{path: "/a", want: http.StatusOK},
		{path: "/b", want: http.StatusForbidden},
		{path: "/c", want: http.StatusUnauthorized},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, tc.path)
	}
}
