package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PackageStatus enum constants, shared by Package and DonationPackage.
const (
	PackageActive    = "active"
	PackageInactive  = "inactive"
	PackageCompleted = "completed"
)

// ValidPackageStatus reports whether s is a known package status.
func ValidPackageStatus(s string) bool {
	switch s {
	case PackageActive, PackageInactive, PackageCompleted:
		return true
	}
	return false
}

// Package is a fundraising target owned by an NGO. CurrentQuantity mirrors
// the sum of quantities of completed donations against this package and is
// only ever adjusted atomically alongside a donation status change.
type Package struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	NGOID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"ngo_id"`
	NGO             NGO             `gorm:"foreignKey:NGOID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Title           string          `gorm:"type:text;not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	ImageURL        string          `gorm:"type:text" json:"image_url"`
	Category        string          `gorm:"type:text" json:"category"`
	TargetQuantity  int             `json:"target_quantity"`
	CurrentQuantity int             `gorm:"default:0" json:"current_quantity"`
	Status          string          `gorm:"type:varchar(20);not null;default:'active';index" json:"status"` // active, inactive, completed
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// DonationPackage is a centrally managed fundraising target created by an
// admin and optionally assigned to a vendor for fulfillment.
type DonationPackage struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title            string          `gorm:"type:text;not null" json:"title"`
	Description      string          `gorm:"type:text;not null" json:"description"`
	Amount           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	ImageURL         string          `gorm:"type:text" json:"image_url"`
	Category         string          `gorm:"type:text;not null" json:"category"`
	TargetQuantity   int             `gorm:"not null" json:"target_quantity"`
	CurrentQuantity  int             `gorm:"default:0" json:"current_quantity"`
	AssignedVendorID *uuid.UUID      `gorm:"type:uuid;index" json:"assigned_vendor_id"`
	Status           string          `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedBy        uuid.UUID       `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
