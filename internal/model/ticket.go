package model

import (
	"time"

	"github.com/google/uuid"
)

// Ticket status enum constants
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

// Ticket priority enum constants
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// TicketCategories is the closed category set for support tickets.
var TicketCategories = []string{
	"delivery_delay",
	"quality_issue",
	"missing_items",
	"wrong_delivery",
	"invoice_issue",
	"tracking_issue",
	"other",
}

func ValidTicketStatus(s string) bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

func ValidTicketPriority(s string) bool {
	switch s {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func ValidTicketCategory(s string) bool {
	for _, c := range TicketCategories {
		if c == s {
			return true
		}
	}
	return false
}

// TicketSettled reports whether the status counts as resolved for the
// resolved_at stamping rule.
func TicketSettled(status string) bool {
	return status == TicketResolved || status == TicketClosed
}

// Ticket is a support issue raised against a Transaction. ResolvedAt is set
// when the status first enters resolved/closed and cleared on reopen.
type Ticket struct {
	ID               uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TransactionID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Transaction      Transaction `gorm:"foreignKey:TransactionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedByUserID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"created_by_user_id"`
	Title            string      `gorm:"type:text;not null" json:"title"`
	Description      string      `gorm:"type:text;not null" json:"description"`
	Status           string      `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	Priority         string      `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Category         string      `gorm:"type:varchar(30);not null" json:"category"`
	AssignedToUserID *uuid.UUID  `gorm:"type:uuid" json:"assigned_to_user_id"`
	ResolutionNotes  string      `gorm:"type:text" json:"resolution_notes"`
	ResolvedAt       *time.Time  `json:"resolved_at"`
	CreatedAt        time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}
