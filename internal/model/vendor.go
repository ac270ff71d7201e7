package model

import (
	"time"

	"github.com/google/uuid"
)

// Vendor is the business record owned 1:1 by a Profile with role "vendor".
// The externally visible shape uses shop_name/full_address; the storage
// columns are company_name/address. The mapping lives in one place in the
// vendor service and is shared by every read and write path.
type Vendor struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Profile         Profile   `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CompanyName     string    `gorm:"type:text;not null" json:"company_name"`
	OwnerName       string    `gorm:"type:text" json:"owner_name"`
	Description     string    `gorm:"type:text" json:"description"`
	Website         string    `gorm:"type:text" json:"website"`
	LogoURL         string    `gorm:"type:text" json:"logo_url"`
	Address         string    `gorm:"type:text;not null" json:"address"`
	PinCode         string    `gorm:"type:varchar(10)" json:"pin_code"`
	City            string    `gorm:"type:text;not null" json:"city"`
	State           string    `gorm:"type:text;not null" json:"state"`
	Country         string    `gorm:"type:text;default:'India'" json:"country"`
	Phone           string    `gorm:"type:text;not null" json:"phone"`
	Email           string    `gorm:"type:text;not null" json:"email"`
	GSTNumber       string    `gorm:"type:varchar(20)" json:"gst_number"`
	BusinessType    string    `gorm:"type:text;not null" json:"business_type"`
	BusinessLicense string    `gorm:"type:text" json:"business_license"`
	Verified        bool      `gorm:"default:false" json:"verified"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
