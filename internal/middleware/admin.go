package middleware

import (
	"net/http" // HTTP status codes

	"zenithx_backend/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// AdminOnlyMiddleware resolves the token email against the users collection
// on each request and requires the admin role
func AdminOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("email") // Get email from context
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			// Unknown email or any store error means no admin capability
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		if user.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}
