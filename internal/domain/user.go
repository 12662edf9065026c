package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID document identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// User Model
type User struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"` // Document identifier
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`  // Natural key, unique
	Name      *string   `json:"name"`                               // Nullable profile field
	Phone     *string   `json:"phone"`                              // Nullable profile field
	Image     *string   `json:"image"`                              // Nullable profile field
	Role      string    `gorm:"default:user" json:"role"`           // Role: user, seller or admin
	Balance   float64   `gorm:"not null;default:0" json:"balance"`  // Credited by approved payments
	CreatedAt time.Time `json:"createdAt"`                          // Server-assigned on insert
}

// BeforeCreate assigns a UUID identifier if none is set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
