package middlewares

import (
	"net/http"
	"strings"

	"cityreport-be/identity"
	"cityreport-be/models"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key the guard stores the resolved
// user under.
const IdentityKey = "identity"

// AuthRequired is the access control guard for mutating endpoints. It
// rejects a missing bearer token or the public anonymous key outright,
// then resolves the token against the identity provider and attaches
// the resulting user to the request context.
func AuthRequired(provider identity.Provider, anonKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "No authorization token provided"})
			c.Abort()
			return
		}

		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}
		if tokenString == "" || (anonKey != "" && tokenString == anonKey) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Anonymous access is not permitted"})
			c.Abort()
			return
		}

		user, err := provider.ResolveToken(c.Request.Context(), tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid authorization token"})
			c.Abort()
			return
		}

		c.Set(IdentityKey, user)
		c.Next()
	}
}

// AdminRequired re-verifies the admin role claim on every mutating
// request rather than trusting the login-time check alone.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get(IdentityKey)
		user, ok := val.(*models.User)
		if !exists || !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authenticated"})
			c.Abort()
			return
		}
		if user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
