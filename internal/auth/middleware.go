package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CookieName  = "token"
	ctxIdentity = "auth.identity"
)

// Required rejects requests without a valid token cookie and stores the
// verified identity on the gin context.
func Required(j *JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(CookieName)
		if err != nil || tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		id, err := j.Verify(tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(ctxIdentity, id)
		c.Next()
	}
}

// RequireRole runs after Required and rejects callers with another role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if From(c).Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// From returns the identity stored by Required; zero value if absent.
func From(c *gin.Context) Identity {
	if v, ok := c.Get(ctxIdentity); ok {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return Identity{}
}
