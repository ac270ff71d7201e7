package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorInvoice status enum constants
const (
	InvoicePending  = "pending"
	InvoiceApproved = "approved"
	InvoiceRejected = "rejected"
)

// VendorInvoice is a vendor's billing submission for a Transaction. At most
// one invoice exists per transaction; only a pending invoice may be edited by
// its vendor, and approve/reject requires pending status.
type VendorInvoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"transaction_id"`
	Transaction   Transaction     `gorm:"foreignKey:TransactionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	VendorID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"vendor_id"`
	InvoiceNumber string          `gorm:"type:text;uniqueIndex;not null" json:"invoice_number"`
	InvoiceURL    string          `gorm:"type:text;not null" json:"invoice_url"`
	InvoiceAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"invoice_amount"`
	SubmittedDate time.Time       `gorm:"not null" json:"submitted_date"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // pending, approved, rejected
	AdminNotes    string          `gorm:"type:text" json:"admin_notes"`
	ApprovedBy    *uuid.UUID      `gorm:"type:uuid" json:"approved_by"`
	ApprovedAt    *time.Time      `json:"approved_at"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
