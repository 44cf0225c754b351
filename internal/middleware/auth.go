package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/thomsonxavier/kaviecommerce/internal/identity"
	"github.com/thomsonxavier/kaviecommerce/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "callerIdentity"

// TokenVerifier is the slice of the identity provider the gate consumes:
// bearer token in, caller identity out.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*identity.Identity, error)
}

// ExtractAccessToken reads the bearer token from the access_token cookie,
// falling back to the Authorization header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// resolved identity to the gin context.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractAccessToken(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided"})
			return
		}

		ident, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.FromCtx(c.Request.Context()).Warn("token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid token"})
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// RequireAdmin enforces the admin role server-side. It must run after
// RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok || ident.Role != identity.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: admin access required"})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the caller identity set by RequireAuth.
func IdentityFrom(c *gin.Context) (*identity.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	ident, ok := v.(*identity.Identity)
	return ident, ok
}
