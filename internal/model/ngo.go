package model

import (
	"time"

	"github.com/google/uuid"
)

// NGO is the organization record owned 1:1 by a Profile with role "ngo".
// Verified is admin-controlled; unverified NGOs stay out of public listings.
type NGO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Profile            Profile    `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name               string     `gorm:"type:text;not null" json:"name"`
	Description        string     `gorm:"type:text;not null" json:"description"`
	Mission            string     `gorm:"type:text" json:"mission"`
	Website            string     `gorm:"type:text" json:"website"`
	LogoURL            string     `gorm:"type:text" json:"logo_url"`
	GalleryImages      string     `gorm:"type:text" json:"gallery_images"` // JSON array of image URLs
	StartedDate        *time.Time `json:"started_date"`
	LicenseNumber      string     `gorm:"type:text" json:"license_number"`
	TotalMembers       int        `gorm:"not null;default:0" json:"total_members"`
	FullAddress        string     `gorm:"type:text;not null" json:"full_address"`
	PinCode            string     `gorm:"type:varchar(10);not null" json:"pin_code"`
	City               string     `gorm:"type:text;not null" json:"city"`
	State              string     `gorm:"type:text;not null" json:"state"`
	Country            string     `gorm:"type:text;default:'India'" json:"country"`
	Phone              string     `gorm:"type:text;not null" json:"phone"`
	Email              string     `gorm:"type:text;not null" json:"email"`
	RegistrationNumber string     `gorm:"type:text" json:"registration_number"`
	Verified           bool       `gorm:"default:false" json:"verified"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
