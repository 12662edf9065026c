package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID document identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// SellerRequest Model
type SellerRequest struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"` // Document identifier
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`  // One outstanding request per email
	Status     string    `gorm:"default:pending" json:"status"`      // Status: pending or approved
	IsVerified bool      `gorm:"default:false" json:"isVerified"`    // Set to true on approval
	AppliedAt  time.Time `gorm:"autoCreateTime" json:"appliedAt"`    // Server-assigned on insert
}

// BeforeCreate assigns a UUID identifier if none is set
func (s *SellerRequest) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
