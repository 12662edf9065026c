package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"time"     // Cache TTLs

	"zenithx_backend/internal/domain" // Importing domain models
	"zenithx_backend/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

const usersCacheKey = "admin:users" // Cache key for the full user listing

// RegisterRequest carries the candidate user record. Role and balance are
// deliberately not bound: the server assigns role "user" and a zero balance,
// and elevation happens only through seller approval or the admin role route.
type RegisterRequest struct {
	Email string  `json:"email" binding:"required,email"` // Natural key, required
	Name  *string `json:"name"`                           // Optional profile field
	Phone *string `json:"phone"`                          // Optional profile field
	Image *string `json:"image"`                          // Optional profile field
}

// RegisterHandler creates a user record keyed by email. Re-registering an
// existing email is a soft no-op returning a null insertedId sentinel.
func RegisterHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Duplicate check on the natural key
		var existing domain.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			// Idempotent by email: no new record, no error
			c.JSON(http.StatusOK, gin.H{"message": "User already existing", "insertedId": nil})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
			return
		}
		user := domain.User{
			Email: req.Email, // Natural key
			Name:  req.Name,  // Optional profile field
			Phone: req.Phone, // Optional profile field
			Image: req.Image, // Optional profile field
			Role:  "user",    // Server-assigned, never client-supplied
		}
		if err := db.Create(&user).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Natural key
				"error": err.Error(), // Error message
			}).Error("Failed to register user")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
			return
		}
		utils.InvalidateCache(context.Background(), rdb, usersCacheKey) // Drop stale user listing
		c.JSON(http.StatusOK, gin.H{"insertedId": user.ID})
	}
}

// GetUserHandler returns the user for an email, or a null body when absent.
// Absence is not an error here.
func GetUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email") // Natural key from the path
		var user domain.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, nil) // Absent user yields a null result
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateProfileRequest carries the replacement profile fields. Absent fields
// are written as NULL: this is an overwrite, not a merge.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`  // Replacement name
	Phone *string `json:"phone"` // Replacement phone
	Image *string `json:"image"` // Replacement image
}

// UpdateProfileHandler overwrites the profile fields of a user
func UpdateProfileHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email") // Natural key from the path
		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Map update so nil pointers overwrite the columns with NULL
		res := db.Model(&domain.User{}).Where("email = ?", email).Updates(map[string]any{
			"name":  req.Name,  // Replacement name
			"phone": req.Phone, // Replacement phone
			"image": req.Image, // Replacement image
		})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
			return
		}
		utils.InvalidateCache(context.Background(), rdb, usersCacheKey) // Drop stale user listing
		c.JSON(http.StatusOK, gin.H{"modifiedCount": res.RowsAffected})
	}
}

// ListUsersHandler returns every user record. The listing is cached for a
// minute and invalidated by the write paths.
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached []domain.User
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, usersCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var users []domain.User
		if err := db.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
			return
		}
		_ = utils.SetCache(ctx, rdb, usersCacheKey, users, 60*time.Second) // Cache for future requests
		c.JSON(http.StatusOK, users)
	}
}

// UpdateRoleRequest carries the replacement role
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"` // Replacement role
}

// UpdateRoleHandler overwrites a user's role by document identifier
func UpdateRoleHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Document identifier from the path
		var req UpdateRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		res := db.Model(&domain.User{}).Where("id = ?", id).Update("role", req.Role)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update role"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": id,       // Document identifier
			"role":    req.Role, // Replacement role
		}).Info("Role updated") // Log role change
		utils.InvalidateCache(context.Background(), rdb, usersCacheKey) // Drop stale user listing
		c.JSON(http.StatusOK, gin.H{"modifiedCount": res.RowsAffected})
	}
}

// DeleteUserHandler removes a user by document identifier. Related payments
// and seller requests are left in place.
func DeleteUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Document identifier from the path
		res := db.Delete(&domain.User{}, "id = ?", id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": id, // Document identifier
		}).Info("User deleted") // Log deletion
		utils.InvalidateCache(context.Background(), rdb, usersCacheKey) // Drop stale user listing
		c.JSON(http.StatusOK, gin.H{"deletedCount": res.RowsAffected})
	}
}
