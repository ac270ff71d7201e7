package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus enum constants
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Donation is a donor's pledge against a Package. The package title and unit
// amount are snapshotted at creation so later package edits do not rewrite
// donation history. PaymentReference is an opaque gateway identifier.
type Donation struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Profile          Profile         `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	NGOID            uuid.UUID       `gorm:"type:uuid;not null" json:"ngo_id"`
	PackageID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"package_id"`
	PackageTitle     string          `gorm:"type:text;not null" json:"package_title"`
	PackageAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"package_amount"`
	Quantity         int             `gorm:"not null;default:1" json:"quantity"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentMethod    string          `gorm:"type:text;not null;default:'card'" json:"payment_method"`
	PaymentStatus    string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	PaymentReference string          `gorm:"type:text" json:"payment_reference"`
	InvoiceNumber    string          `gorm:"type:text;uniqueIndex" json:"invoice_number"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
