package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sol-storefront/internal/domain"
)

const identityKey = "identity"

// RoleChecker is the slice of the role store the middleware needs.
type RoleChecker interface {
	HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error)
}

// Middleware validates the Authorization bearer token and stores the caller
// identity in the request context.
func Middleware(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		ident, err := tm.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// RequireAdmin allows only callers holding the admin role. Must run after
// Middleware.
func RequireAdmin(roles RoleChecker, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := IdentityFrom(c)
		if ident == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		ok, err := roles.HasRole(c.Request.Context(), ident.UserID, role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity, or nil for anonymous
// requests.
func IdentityFrom(c *gin.Context) *domain.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*domain.Identity)
	return ident
}
