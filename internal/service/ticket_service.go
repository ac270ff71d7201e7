package service

import (
	"context"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"

	"backend/pkg/apperror"
)

type CreateTicketRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Priority      string `json:"priority"`
	Category      string `json:"category" binding:"required"`
}

type UpdateTicketRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	Status           *string `json:"status"`
	Priority         *string `json:"priority"`
	Category         *string `json:"category"`
	AssignedToUserID *string `json:"assigned_to_user_id"`
	ResolutionNotes  *string `json:"resolution_notes"`
}

type TicketListQuery struct {
	TransactionID string
	Status        string
	Priority      string
	Skip          int
	Limit         int
}

// TicketService manages support tickets raised against transactions.
// ResolvedAt is stamped when a ticket first settles and cleared on reopen.
type TicketService interface {
	Create(ctx context.Context, callerID uuid.UUID, role string, req CreateTicketRequest) (*model.Ticket, error)
	GetByID(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) (*model.Ticket, error)
	List(ctx context.Context, callerID uuid.UUID, isAdmin bool, query TicketListQuery) ([]model.Ticket, int64, error)
	Update(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID, req UpdateTicketRequest) (*model.Ticket, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ticketService struct {
	ticketRepo      repository.TicketRepository
	transactionRepo repository.TransactionRepository
	vendorRepo      repository.VendorRepository
}

func NewTicketService(
	ticketRepo repository.TicketRepository,
	transactionRepo repository.TransactionRepository,
	vendorRepo repository.VendorRepository,
) TicketService {
	return &ticketService{
		ticketRepo:      ticketRepo,
		transactionRepo: transactionRepo,
		vendorRepo:      vendorRepo,
	}
}

func (s *ticketService) Create(ctx context.Context, callerID uuid.UUID, role string, req CreateTicketRequest) (*model.Ticket, error) {
	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		return nil, apperror.Validationf("invalid transaction_id")
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidTicketPriority(priority) {
		return nil, apperror.Validationf("invalid priority %q", priority)
	}
	if !model.ValidTicketCategory(req.Category) {
		return nil, apperror.Validationf("invalid category %q", req.Category)
	}

	tx, err := s.transactionRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, apperror.NotFoundf("transaction not found")
	}

	// Tickets may only be raised by a party to the transaction.
	switch role {
	case model.RoleAdmin:
	case model.RoleUser:
		if tx.DonorUserID != callerID {
			return nil, apperror.Forbiddenf("cannot raise a ticket on another donor's transaction")
		}
	case model.RoleVendor:
		vendor, vendorErr := s.vendorRepo.FindByUserID(ctx, callerID)
		if vendorErr != nil || tx.VendorID == nil || *tx.VendorID != vendor.ID {
			return nil, apperror.Forbiddenf("transaction is not assigned to this vendor")
		}
	default:
		return nil, apperror.Forbiddenf("access denied")
	}

	ticket := &model.Ticket{
		TransactionID:   tx.ID,
		CreatedByUserID: callerID,
		Title:           req.Title,
		Description:     req.Description,
		Status:          model.TicketOpen,
		Priority:        priority,
		Category:        req.Category,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *ticketService) GetByID(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) (*model.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("ticket not found")
	}
	if !isAdmin && ticket.CreatedByUserID != callerID {
		return nil, apperror.Forbiddenf("access denied")
	}
	return ticket, nil
}

func (s *ticketService) List(ctx context.Context, callerID uuid.UUID, isAdmin bool, query TicketListQuery) ([]model.Ticket, int64, error) {
	filter := repository.TicketListFilter{
		Status:   query.Status,
		Priority: query.Priority,
		Skip:     query.Skip,
		Limit:    query.Limit,
	}
	if !isAdmin {
		filter.CreatedBy = &callerID
	}
	if query.TransactionID != "" {
		transactionID, err := uuid.Parse(query.TransactionID)
		if err != nil {
			return nil, 0, apperror.Validationf("invalid transaction_id")
		}
		filter.TransactionID = &transactionID
	}
	if filter.Status != "" && !model.ValidTicketStatus(filter.Status) {
		return nil, 0, apperror.Validationf("invalid status filter %q", filter.Status)
	}
	if filter.Priority != "" && !model.ValidTicketPriority(filter.Priority) {
		return nil, 0, apperror.Validationf("invalid priority filter %q", filter.Priority)
	}
	return s.ticketRepo.List(ctx, filter)
}

func (s *ticketService) Update(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID, req UpdateTicketRequest) (*model.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("ticket not found")
	}
	if !isAdmin && ticket.CreatedByUserID != callerID {
		return nil, apperror.Forbiddenf("access denied")
	}

	if req.Title != nil {
		ticket.Title = *req.Title
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}
	if req.Priority != nil {
		if !model.ValidTicketPriority(*req.Priority) {
			return nil, apperror.Validationf("invalid priority %q", *req.Priority)
		}
		ticket.Priority = *req.Priority
	}
	if req.Category != nil {
		if !model.ValidTicketCategory(*req.Category) {
			return nil, apperror.Validationf("invalid category %q", *req.Category)
		}
		ticket.Category = *req.Category
	}
	if req.AssignedToUserID != nil {
		// Triage fields are admin-only.
		if !isAdmin {
			return nil, apperror.Forbiddenf("only admins can assign tickets")
		}
		if *req.AssignedToUserID == "" {
			ticket.AssignedToUserID = nil
		} else {
			assignee, parseErr := uuid.Parse(*req.AssignedToUserID)
			if parseErr != nil {
				return nil, apperror.Validationf("invalid assigned_to_user_id")
			}
			ticket.AssignedToUserID = &assignee
		}
	}
	if req.ResolutionNotes != nil {
		if !isAdmin {
			return nil, apperror.Forbiddenf("only admins can set resolution notes")
		}
		ticket.ResolutionNotes = *req.ResolutionNotes
	}
	if req.Status != nil {
		if !model.ValidTicketStatus(*req.Status) {
			return nil, apperror.Validationf("invalid status %q", *req.Status)
		}
		wasSettled := model.TicketSettled(ticket.Status)
		ticket.Status = *req.Status
		nowSettled := model.TicketSettled(ticket.Status)

		switch {
		case nowSettled && ticket.ResolvedAt == nil:
			now := time.Now()
			ticket.ResolvedAt = &now
		case wasSettled && !nowSettled:
			// Reopened: the settle timestamp no longer reflects reality.
			ticket.ResolvedAt = nil
		}
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *ticketService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ticketRepo.FindByID(ctx, id); err != nil {
		return apperror.NotFoundf("ticket not found")
	}
	return s.ticketRepo.Delete(ctx, id)
}
