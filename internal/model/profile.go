package model

import (
	"time"

	"github.com/google/uuid"
)

// Role enum constants
const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleNGO    = "ngo"
	RoleVendor = "vendor"
)

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleNGO, RoleVendor:
		return true
	}
	return false
}

// Profile is the root identity record. UserID is the external identifier
// carried in tokens and referenced by every owned entity; the role is set at
// registration and never changed outside the admin approval flow.
type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FirstName    string    `gorm:"type:text" json:"first_name"`
	LastName     string    `gorm:"type:text" json:"last_name"`
	Email        string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"type:text" json:"phone"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"` // user, admin, ngo, vendor
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
