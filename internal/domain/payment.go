package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID document identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// Payment Model
type Payment struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`        // Document identifier
	Email         string    `gorm:"index;not null" json:"email"`               // Foreign key to User.Email
	TransactionID string    `gorm:"uniqueIndex;not null" json:"transactionId"` // Natural key, unique across all time
	Amount        float64   `json:"amount"`                                    // Credited on approval
	Status        string    `gorm:"default:pending" json:"status"`             // Status: pending, approved or rejected
	CreatedAt     time.Time `json:"createdAt"`                                 // Server-assigned on insert
}

// BeforeCreate assigns a UUID identifier if none is set
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
