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

const paymentsCacheKey = "admin:payments" // Cache key for the full payment listing

// errAlreadyProcessed aborts an approval or rejection transaction when the
// payment is missing or no longer pending
var errAlreadyProcessed = errors.New("payment already processed or not found")

// myPaymentsCacheKey builds the per-user payment listing cache key
func myPaymentsCacheKey(email string) string {
	return "payments:user:" + email
}

// PaymentRequest carries a submitted payment. The status is stored as
// supplied by the caller; the frontend submits "pending".
type PaymentRequest struct {
	Email         string  `json:"email" binding:"required,email"`   // Foreign key to User.Email
	TransactionID string  `json:"transactionId" binding:"required"` // Natural key
	Amount        float64 `json:"amount" binding:"required,gt=0"`   // Payment amount
	Status        string  `json:"status"`                           // Lifecycle status
}

// SubmitPaymentHandler records a payment, enforcing at-most-once submission
// per transaction identifier
func SubmitPaymentHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Duplicate check on the natural key
		var existing domain.Payment
		if err := db.Where("transaction_id = ?", req.TransactionID).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "This Transaction ID has already been used!"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to submit payment"})
			return
		}
		payment := domain.Payment{
			Email:         req.Email,         // Foreign key to User.Email
			TransactionID: req.TransactionID, // Natural key
			Amount:        req.Amount,        // Payment amount
			Status:        req.Status,        // Stored as supplied
		}
		if err := db.Create(&payment).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"email":          req.Email,         // Submitter
				"transaction_id": req.TransactionID, // Natural key
				"error":          err.Error(),       // Error message
			}).Error("Failed to submit payment")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to submit payment"})
			return
		}
		// Drop stale payment listings
		utils.InvalidateCache(context.Background(), rdb, paymentsCacheKey, myPaymentsCacheKey(req.Email))
		c.JSON(http.StatusOK, gin.H{"insertedId": payment.ID})
	}
}

// MyPaymentsHandler returns one user's payments, newest first
func MyPaymentsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")   // Natural key from the path
		ctx := context.Background() // Use background context for Redis
		cacheKey := myPaymentsCacheKey(email)
		var cached []domain.Payment
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var payments []domain.Payment
		if err := db.Where("email = ?", email).Order("created_at desc").Find(&payments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payments"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, payments, 60*time.Second) // Cache for future requests
		c.JSON(http.StatusOK, payments)
	}
}

// ListPaymentsHandler returns every payment, newest first
func ListPaymentsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached []domain.Payment
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, paymentsCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var payments []domain.Payment
		if err := db.Order("created_at desc").Find(&payments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payments"})
			return
		}
		_ = utils.SetCache(ctx, rdb, paymentsCacheKey, payments, 60*time.Second) // Cache for future requests
		c.JSON(http.StatusOK, payments)
	}
}

// ApprovePaymentHandler moves a pending payment to approved and credits the
// amount to the submitter's balance. Both writes run in one transaction, and
// the status flip is guarded by a conditional update so concurrent approvals
// cannot credit the balance twice.
func ApprovePaymentHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Document identifier from the path
		var payment domain.Payment
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", id).First(&payment).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errAlreadyProcessed // Unknown identifier
				}
				return err
			}
			// Flip the status only while still pending
			res := tx.Model(&domain.Payment{}).
				Where("id = ? AND status = ?", id, "pending").
				Update("status", "approved")
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errAlreadyProcessed // Raced or already terminal
			}
			// Credit the balance exactly once, gated by the flip above
			return tx.Model(&domain.User{}).
				Where("email = ?", payment.Email).
				Update("balance", gorm.Expr("balance + ?", payment.Amount)).Error
		})
		if err != nil {
			if errors.Is(err, errAlreadyProcessed) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Already processed or not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"payment_id": id,          // Document identifier
				"error":      err.Error(), // Error message
			}).Error("Payment approval failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to approve payment"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"payment_id":     id,                    // Document identifier
			"email":          payment.Email,         // Credited user
			"transaction_id": payment.TransactionID, // Natural key
			"amount":         payment.Amount,        // Credited amount
		}).Info("Payment approved") // Log balance credit
		// Drop stale payment and user listings
		utils.InvalidateCache(context.Background(), rdb, paymentsCacheKey, myPaymentsCacheKey(payment.Email), usersCacheKey)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// RejectPaymentHandler moves a pending payment to rejected. The pending guard
// matches approval, so terminal payments cannot be re-marked.
func RejectPaymentHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Document identifier from the path
		var payment domain.Payment
		if err := db.Where("id = ?", id).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Already processed or not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reject payment"})
			return
		}
		res := db.Model(&domain.Payment{}).
			Where("id = ? AND status = ?", id, "pending").
			Update("status", "rejected")
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reject payment"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Already processed or not found"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"payment_id":     id,                    // Document identifier
			"transaction_id": payment.TransactionID, // Natural key
		}).Info("Payment rejected") // Log rejection
		// Drop stale payment listings
		utils.InvalidateCache(context.Background(), rdb, paymentsCacheKey, myPaymentsCacheKey(payment.Email))
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
