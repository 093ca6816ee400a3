package middleware

import (
	"net/http"
	"strings"

	"github.com/Prayc/angaza-real-estate/internal/access"
	"github.com/Prayc/angaza-real-estate/internal/auth"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const identityKey = "identity"

// Authenticate verifies the bearer token and loads the user behind it.
// The verified {id, role} pair is stored on the context; downstream
// handlers trust it completely.
func Authenticate(db *gorm.DB, tokens *auth.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid Authorization header format"})
			return
		}

		claims, err := tokens.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Account is deactivated"})
			return
		}

		c.Set(identityKey, access.Identity{ID: user.ID, Role: user.Role})
		c.Next()
	}
}

// RequireRoles rejects actors whose role is not in the allowed set.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
	}
}

// IdentityFrom returns the verified identity stored by Authenticate.
func IdentityFrom(c *gin.Context) (access.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return access.Identity{}, false
	}
	actor, ok := v.(access.Identity)
	return actor, ok
}
