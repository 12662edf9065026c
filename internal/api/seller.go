package api

import (
	"context"  // Context for Redis operations
	"errors"   // Sentinel errors
	"net/http" // HTTP status codes
	"time"     // Cache TTLs

	"zenithx_backend/internal/domain" // Importing domain models
	"zenithx_backend/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

const (
	sellersCacheKey  = "admin:sellers"    // Cache key for the full request listing
	approvedCacheKey = "sellers:approved" // Cache key for the approved-seller listing
)

// errRequestNotFound aborts a seller approval when the request row is absent
var errRequestNotFound = errors.New("seller request not found")

// SellerRequestInput carries a seller application. One outstanding application
// per email, regardless of its status.
type SellerRequestInput struct {
	Email  string `json:"email" binding:"required,email"` // Foreign key to User.Email
	Status string `json:"status"`                         // Lifecycle status, defaults to pending
}

// ApplySellerHandler records a seller application
func ApplySellerHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SellerRequestInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Duplicate check on the natural key, any status counts
		var existing domain.SellerRequest
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "You have already applied!"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to submit application"})
			return
		}
		request := domain.SellerRequest{
			Email:  req.Email,  // Foreign key to User.Email
			Status: req.Status, // Stored as supplied, defaults to pending
		}
		if err := db.Create(&request).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Applicant
				"error": err.Error(), // Error message
			}).Error("Failed to submit application")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to submit application"})
			return
		}
		// Drop stale request listings
		utils.InvalidateCache(context.Background(), rdb, sellersCacheKey, approvedCacheKey)
		c.JSON(http.StatusOK, gin.H{"insertedId": request.ID})
	}
}

// ListSellerRequestsHandler returns every application, newest applied first
func ListSellerRequestsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached []domain.SellerRequest
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, sellersCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var requests []domain.SellerRequest
		if err := db.Order("applied_at desc").Find(&requests).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch seller requests"})
			return
		}
		_ = utils.SetCache(ctx, rdb, sellersCacheKey, requests, 60*time.Second) // Cache for future requests
		c.JSON(http.StatusOK, requests)
	}
}

// ApproveSellerHandler marks a request approved and verified, and promotes
// the linked user to the seller role. Both writes run in one transaction.
func ApproveSellerHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Document identifier from the path
		var request domain.SellerRequest
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", id).First(&request).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errRequestNotFound // Unknown identifier
				}
				return err
			}
			// Mark the request approved and verified
			if err := tx.Model(&domain.SellerRequest{}).Where("id = ?", id).
				Updates(map[string]any{"status": "approved", "is_verified": true}).Error; err != nil {
				return err
			}
			// Promote the linked user
			return tx.Model(&domain.User{}).
				Where("email = ?", request.Email).
				Update("role", "seller").Error
		})
		if err != nil {
			if errors.Is(err, errRequestNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Request not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"request_id": id,          // Document identifier
				"error":      err.Error(), // Error message
			}).Error("Seller approval failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to approve seller"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"request_id": id,            // Document identifier
			"email":      request.Email, // Promoted user
		}).Info("Seller approved") // Log role promotion
		// Drop stale request and user listings
		utils.InvalidateCache(context.Background(), rdb, sellersCacheKey, approvedCacheKey, usersCacheKey)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// RejectSellerHandler deletes an application outright. No record remains, so
// the applicant may re-apply.
func RejectSellerHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Document identifier from the path
		res := db.Delete(&domain.SellerRequest{}, "id = ?", id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reject seller request"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"request_id": id, // Document identifier
		}).Info("Seller request rejected") // Log deletion
		// Drop stale request listings
		utils.InvalidateCache(context.Background(), rdb, sellersCacheKey, approvedCacheKey)
		c.JSON(http.StatusOK, gin.H{"deletedCount": res.RowsAffected})
	}
}

// ApprovedSellersHandler returns the approved applications
func ApprovedSellersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached []domain.SellerRequest
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, approvedCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var sellers []domain.SellerRequest
		if err := db.Where("status = ?", "approved").Find(&sellers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch approved sellers"})
			return
		}
		_ = utils.SetCache(ctx, rdb, approvedCacheKey, sellers, 60*time.Second) // Cache for future requests
		c.JSON(http.StatusOK, sellers)
	}
}
