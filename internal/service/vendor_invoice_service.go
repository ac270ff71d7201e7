package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"backend/internal/mailer"
	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"backend/pkg/apperror"
)

type SubmitInvoiceRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	InvoiceNumber string `json:"invoice_number"`
	InvoiceURL    string `json:"invoice_url" binding:"required"`
	InvoiceAmount string `json:"invoice_amount" binding:"required"`
}

type UpdateInvoiceRequest struct {
	InvoiceNumber *string `json:"invoice_number"`
	InvoiceURL    *string `json:"invoice_url"`
	InvoiceAmount *string `json:"invoice_amount"`
}

type InvoiceDecisionRequest struct {
	AdminNotes string `json:"admin_notes"`
}

type InvoiceListQuery struct {
	Status string
	Skip   int
	Limit  int
}

// VendorInvoiceService handles vendor billing submissions. One invoice per
// transaction; only pending invoices can be edited by their vendor or decided
// by an admin, and a decision can happen exactly once.
type VendorInvoiceService interface {
	Submit(ctx context.Context, vendorUserID uuid.UUID, req SubmitInvoiceRequest) (*model.VendorInvoice, error)
	GetByID(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) (*model.VendorInvoice, error)
	List(ctx context.Context, callerID uuid.UUID, isAdmin bool, query InvoiceListQuery) ([]model.VendorInvoice, int64, error)
	Update(ctx context.Context, vendorUserID uuid.UUID, id uuid.UUID, req UpdateInvoiceRequest) (*model.VendorInvoice, error)
	Approve(ctx context.Context, adminUserID uuid.UUID, id uuid.UUID, req InvoiceDecisionRequest) (*model.VendorInvoice, error)
	Reject(ctx context.Context, adminUserID uuid.UUID, id uuid.UUID, req InvoiceDecisionRequest) (*model.VendorInvoice, error)
}

type vendorInvoiceService struct {
	invoiceRepo     repository.VendorInvoiceRepository
	transactionRepo repository.TransactionRepository
	vendorRepo      repository.VendorRepository
	txManager       repository.TransactionManager
	notifier        mailer.Notifier
	hub             *ws.Hub
}

func NewVendorInvoiceService(
	invoiceRepo repository.VendorInvoiceRepository,
	transactionRepo repository.TransactionRepository,
	vendorRepo repository.VendorRepository,
	txManager repository.TransactionManager,
	notifier mailer.Notifier,
	hub *ws.Hub,
) VendorInvoiceService {
	return &vendorInvoiceService{
		invoiceRepo:     invoiceRepo,
		transactionRepo: transactionRepo,
		vendorRepo:      vendorRepo,
		txManager:       txManager,
		notifier:        notifier,
		hub:             hub,
	}
}

func generateVendorInvoiceNumber() string {
	return fmt.Sprintf("VINV-%s-%s", time.Now().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]))
}

func (s *vendorInvoiceService) Submit(ctx context.Context, vendorUserID uuid.UUID, req SubmitInvoiceRequest) (*model.VendorInvoice, error) {
	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		return nil, apperror.Validationf("invalid transaction_id")
	}

	amount, err := decimal.NewFromString(req.InvoiceAmount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.Validationf("invoice_amount must be a positive number")
	}

	vendor, err := s.vendorRepo.FindByUserID(ctx, vendorUserID)
	if err != nil {
		return nil, apperror.Forbiddenf("no vendor registered for this account")
	}

	invoiceNumber := req.InvoiceNumber
	if invoiceNumber == "" {
		invoiceNumber = generateVendorInvoiceNumber()
	}

	var invoice *model.VendorInvoice
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		tx, findErr := s.transactionRepo.FindByID(txCtx, transactionID)
		if findErr != nil {
			return apperror.NotFoundf("transaction not found")
		}
		if tx.VendorID == nil || *tx.VendorID != vendor.ID {
			return apperror.Forbiddenf("transaction is not assigned to this vendor")
		}
		if tx.Status != model.TxDelivered && tx.Status != model.TxCompleted {
			return apperror.Validationf("invoice can only be submitted after delivery")
		}

		exists, existsErr := s.invoiceRepo.ExistsForTransaction(txCtx, tx.ID)
		if existsErr != nil {
			return existsErr
		}
		if exists {
			return apperror.Conflictf("an invoice already exists for this transaction")
		}

		invoice = &model.VendorInvoice{
			TransactionID: tx.ID,
			VendorID:      vendor.ID,
			InvoiceNumber: invoiceNumber,
			InvoiceURL:    req.InvoiceURL,
			InvoiceAmount: amount,
			SubmittedDate: time.Now(),
			Status:        model.InvoicePending,
		}
		return s.invoiceRepo.Create(txCtx, invoice)
	})
	if err != nil {
		return nil, err
	}

	if !s.notifier.InvoiceSubmitted(ctx, vendor.CompanyName, invoice.InvoiceNumber, invoice.InvoiceAmount, invoice.TransactionID.String()) {
		log.Printf("invoice: submission email not delivered for %s", invoice.ID)
	}
	if s.hub != nil {
		s.hub.BroadcastEvent(ws.Event{
			Type:     ws.EventInvoiceSubmitted,
			EntityID: invoice.ID.String(),
			Status:   invoice.Status,
			Message:  fmt.Sprintf("vendor %s submitted invoice %s", vendor.CompanyName, invoice.InvoiceNumber),
		})
	}

	return invoice, nil
}

func (s *vendorInvoiceService) GetByID(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) (*model.VendorInvoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("invoice not found")
	}
	if !isAdmin {
		vendor, vendorErr := s.vendorRepo.FindByUserID(ctx, callerID)
		if vendorErr != nil || invoice.VendorID != vendor.ID {
			return nil, apperror.Forbiddenf("access denied")
		}
	}
	return invoice, nil
}

func (s *vendorInvoiceService) List(ctx context.Context, callerID uuid.UUID, isAdmin bool, query InvoiceListQuery) ([]model.VendorInvoice, int64, error) {
	filter := repository.VendorInvoiceListFilter{
		Status: query.Status,
		Skip:   query.Skip,
		Limit:  query.Limit,
	}
	if !isAdmin {
		vendor, err := s.vendorRepo.FindByUserID(ctx, callerID)
		if err != nil {
			return nil, 0, apperror.Forbiddenf("no vendor registered for this account")
		}
		filter.VendorID = &vendor.ID
	}
	return s.invoiceRepo.List(ctx, filter)
}

func (s *vendorInvoiceService) Update(ctx context.Context, vendorUserID uuid.UUID, id uuid.UUID, req UpdateInvoiceRequest) (*model.VendorInvoice, error) {
	vendor, err := s.vendorRepo.FindByUserID(ctx, vendorUserID)
	if err != nil {
		return nil, apperror.Forbiddenf("no vendor registered for this account")
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("invoice not found")
	}
	if invoice.VendorID != vendor.ID {
		return nil, apperror.Forbiddenf("access denied")
	}
	if invoice.Status != model.InvoicePending {
		return nil, apperror.Validationf("cannot edit invoice with status %s", invoice.Status)
	}

	if req.InvoiceNumber != nil {
		invoice.InvoiceNumber = *req.InvoiceNumber
	}
	if req.InvoiceURL != nil {
		invoice.InvoiceURL = *req.InvoiceURL
	}
	if req.InvoiceAmount != nil {
		amount, parseErr := decimal.NewFromString(*req.InvoiceAmount)
		if parseErr != nil || amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperror.Validationf("invoice_amount must be a positive number")
		}
		invoice.InvoiceAmount = amount
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *vendorInvoiceService) Approve(ctx context.Context, adminUserID uuid.UUID, id uuid.UUID, req InvoiceDecisionRequest) (*model.VendorInvoice, error) {
	return s.decide(ctx, adminUserID, id, model.InvoiceApproved, req.AdminNotes)
}

func (s *vendorInvoiceService) Reject(ctx context.Context, adminUserID uuid.UUID, id uuid.UUID, req InvoiceDecisionRequest) (*model.VendorInvoice, error) {
	return s.decide(ctx, adminUserID, id, model.InvoiceRejected, req.AdminNotes)
}

// decide applies an approval decision exactly once: the pending check runs
// inside the same transaction as the update, so two concurrent decisions
// cannot both land.
func (s *vendorInvoiceService) decide(ctx context.Context, adminUserID uuid.UUID, id uuid.UUID, status, adminNotes string) (*model.VendorInvoice, error) {
	var invoice *model.VendorInvoice
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		invoice, findErr = s.invoiceRepo.FindByID(txCtx, id)
		if findErr != nil {
			return apperror.NotFoundf("invoice not found")
		}

		if invoice.Status != model.InvoicePending {
			return apperror.Validationf("invoice is already %s", invoice.Status)
		}

		now := time.Now()
		invoice.Status = status
		invoice.AdminNotes = adminNotes
		invoice.ApprovedBy = &adminUserID
		invoice.ApprovedAt = &now

		return s.invoiceRepo.Update(txCtx, invoice)
	})
	if err != nil {
		return nil, err
	}

	if vendor, vendorErr := s.vendorRepo.FindByID(ctx, invoice.VendorID); vendorErr == nil {
		if !s.notifier.InvoiceDecision(ctx, vendor.Email, vendor.CompanyName, invoice.InvoiceNumber, invoice.InvoiceAmount, status == model.InvoiceApproved, adminNotes) {
			log.Printf("invoice: decision email not delivered for %s", invoice.ID)
		}
	}

	return invoice, nil
}
