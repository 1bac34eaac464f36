package middleware

import (
	"net/http"

	userRepo "urbania/database/repository/user"
	"urbania/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// RequireAdminMiddleware rejects callers whose profile role is not admin.
// It must run after JWTAuthUserMiddleware, which sets userID in the context.
func RequireAdminMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		usr, err := users.GetByIDWithProjection(userID.(string), bson.M{"id": 1, "role": 1})
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}

		if usr.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Set("role", usr.Role)
		c.Next()
	}
}
