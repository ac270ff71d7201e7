package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction status enum constants, in fulfillment order.
const (
	TxPendingAssignment = "pending_admin_assignment"
	TxAssignedToVendor  = "assigned_to_vendor"
	TxVendorProcessing  = "vendor_processing"
	TxShipped           = "shipped"
	TxDelivered         = "delivered"
	TxCompleted         = "completed"
	TxCancelled         = "cancelled"
	TxIssueReported     = "issue_reported"
)

// txTransitions is the allowed-from -> allowed-to table for the fulfillment
// lifecycle. Every status change goes through TransitionAllowed; there is no
// self-loop, so re-applying a reached status is rejected and milestone
// timestamps stay set exactly once. Recovery out of issue_reported is a
// separate admin-only restore, not a table entry.
var txTransitions = map[string][]string{
	TxPendingAssignment: {TxAssignedToVendor, TxCancelled, TxIssueReported},
	TxAssignedToVendor:  {TxVendorProcessing, TxCancelled, TxIssueReported},
	TxVendorProcessing:  {TxShipped, TxCancelled, TxIssueReported},
	TxShipped:           {TxDelivered, TxCancelled, TxIssueReported},
	TxDelivered:         {TxCompleted, TxCancelled, TxIssueReported},
	TxCompleted:         {},
	TxCancelled:         {},
	TxIssueReported:     {},
}

// ValidTransactionStatus reports whether s is a known transaction status.
func ValidTransactionStatus(s string) bool {
	_, ok := txTransitions[s]
	return ok
}

// TransitionAllowed reports whether the lifecycle permits moving from one
// status to another.
func TransitionAllowed(from, to string) bool {
	for _, next := range txTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transaction is the fulfillment record derived from a completed Donation.
// PreviousStatus is only populated while the transaction sits in
// issue_reported and names the status an admin restore returns to.
type Transaction struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DonationID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"donation_id"`
	Donation        Donation   `gorm:"foreignKey:DonationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PackageID       uuid.UUID  `gorm:"type:uuid;not null" json:"package_id"`
	NGOID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"ngo_id"`
	VendorID        *uuid.UUID `gorm:"type:uuid;index" json:"vendor_id"`
	Vendor          *Vendor    `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	DonorUserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"donor_user_id"`
	Status          string     `gorm:"type:varchar(30);not null;default:'pending_admin_assignment';index" json:"status"`
	PreviousStatus  string     `gorm:"type:varchar(30)" json:"previous_status,omitempty"`
	TrackingNumber  string     `gorm:"type:text" json:"tracking_number"`
	DeliveryNoteURL string     `gorm:"type:text" json:"delivery_note_url"`
	InvoiceURL      string     `gorm:"type:text" json:"invoice_url"`
	AdminNotes      string     `gorm:"type:text" json:"admin_notes"`
	VendorNotes     string     `gorm:"type:text" json:"vendor_notes"`
	AssignedAt      *time.Time `json:"assigned_at"`
	ShippedAt       *time.Time `json:"shipped_at"`
	DeliveredAt     *time.Time `json:"delivered_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
