package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thomsonxavier/kaviecommerce/internal/identity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeVerifier struct {
	ident *identity.Identity
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*identity.Identity, error) {
	if token == "good-token" {
		return f.ident, nil
	}
	return nil, identity.ErrInvalidToken
}

func authedRouter(role identity.Role, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	verifier := &fakeVerifier{ident: &identity.Identity{
		UserID: "u1",
		Email:  "u1@example.com",
		Role:   role,
	}}

	router := gin.New()
	group := router.Group("/", RequireAuth(verifier))
	if adminOnly {
		group.Use(RequireAdmin())
	}
	group.GET("/protected", func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": ident.Email})
	})

	return router
}

func TestRequireAuth(t *testing.T) {
	router := authedRouter(identity.RoleCustomer, false)

	t.Run("MissingToken", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "No token provided")
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})

	t.Run("ValidBearerHeader", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "u1@example.com")
	})

	t.Run("ValidCookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "good-token"})
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("CustomerForbidden", func(t *testing.T) {
		router := authedRouter(identity.RoleCustomer, true)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		router := authedRouter(identity.RoleAdmin, true)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestExtractAccessToken(t *testing.T) {
	t.Run("CookiePreferred", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
		req.Header.Set("Authorization", "Bearer header-token")

		assert.Equal(t, "cookie-token", ExtractAccessToken(req))
	})

	t.Run("HeaderFallback", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer header-token")

		assert.Equal(t, "header-token", ExtractAccessToken(req))
	})

	t.Run("Missing", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		assert.Equal(t, "", ExtractAccessToken(req))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimitMiddleware())
	router.POST("/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// strict tier allows a burst of 5 per caller
	var lastCode int
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		req.Header.Set("X-Device-ID", "limiter-test-device")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		lastCode = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)

	// quotas are per caller: a different device is not throttled by the
	// exhausted one
	req := httptest.NewRequest("POST", "/login", nil)
	req.Header.Set("X-Device-ID", "limiter-other-device")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(MetricsMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", MetricsHandler())

	req := httptest.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
