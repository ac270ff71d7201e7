package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"

	"github.com/google/uuid"

	"backend/pkg/apperror"
)

type AssignVendorRequest struct {
	VendorID   string `json:"vendor_id" binding:"required"`
	AdminNotes string `json:"admin_notes"`
}

type TransitionRequest struct {
	Status          string `json:"status" binding:"required"`
	TrackingNumber  string `json:"tracking_number"`
	DeliveryNoteURL string `json:"delivery_note_url"`
	VendorNotes     string `json:"vendor_notes"`
	AdminNotes      string `json:"admin_notes"`
}

type TransactionListQuery struct {
	Status string
	Skip   int
	Limit  int
}

// TransactionService drives the fulfillment lifecycle. Every status change
// goes through the transition table; vendors act only on their own assigned
// transactions, donors may only flag issues on their own, and recovery from
// issue_reported is an admin restore to the recorded previous status.
type TransactionService interface {
	GetByID(ctx context.Context, callerID uuid.UUID, role string, id uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, callerID uuid.UUID, role string, query TransactionListQuery) ([]model.Transaction, int64, error)
	AssignVendor(ctx context.Context, id uuid.UUID, req AssignVendorRequest) (*model.Transaction, error)
	Transition(ctx context.Context, callerID uuid.UUID, role string, id uuid.UUID, req TransitionRequest) (*model.Transaction, error)
	Restore(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
}

type transactionService struct {
	transactionRepo repository.TransactionRepository
	packageRepo     repository.PackageRepository
	vendorRepo      repository.VendorRepository
	ngoRepo         repository.NGORepository
	txManager       repository.TransactionManager
	hub             *ws.Hub
}

func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	packageRepo repository.PackageRepository,
	vendorRepo repository.VendorRepository,
	ngoRepo repository.NGORepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) TransactionService {
	return &transactionService{
		transactionRepo: transactionRepo,
		packageRepo:     packageRepo,
		vendorRepo:      vendorRepo,
		ngoRepo:         ngoRepo,
		txManager:       txManager,
		hub:             hub,
	}
}

// canView checks role-scoped read access to a transaction.
func (s *transactionService) canView(ctx context.Context, callerID uuid.UUID, role string, tx *model.Transaction) bool {
	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleUser:
		return tx.DonorUserID == callerID
	case model.RoleVendor:
		vendor, err := s.vendorRepo.FindByUserID(ctx, callerID)
		return err == nil && tx.VendorID != nil && *tx.VendorID == vendor.ID
	case model.RoleNGO:
		ngo, err := s.ngoRepo.FindByUserID(ctx, callerID)
		return err == nil && tx.NGOID == ngo.ID
	}
	return false
}

func (s *transactionService) GetByID(ctx context.Context, callerID uuid.UUID, role string, id uuid.UUID) (*model.Transaction, error) {
	tx, err := s.transactionRepo.FindByIDWithVendor(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("transaction not found")
	}
	if !s.canView(ctx, callerID, role, tx) {
		return nil, apperror.Forbiddenf("access denied")
	}
	return tx, nil
}

func (s *transactionService) List(ctx context.Context, callerID uuid.UUID, role string, query TransactionListQuery) ([]model.Transaction, int64, error) {
	if query.Status != "" && !model.ValidTransactionStatus(query.Status) {
		return nil, 0, apperror.Validationf("invalid status filter %q", query.Status)
	}

	filter := repository.TransactionListFilter{
		Status: query.Status,
		Skip:   query.Skip,
		Limit:  query.Limit,
	}

	switch role {
	case model.RoleAdmin:
	case model.RoleUser:
		filter.DonorUserID = &callerID
	case model.RoleVendor:
		vendor, err := s.vendorRepo.FindByUserID(ctx, callerID)
		if err != nil {
			return nil, 0, apperror.Forbiddenf("no vendor registered for this account")
		}
		filter.VendorID = &vendor.ID
	case model.RoleNGO:
		ngo, err := s.ngoRepo.FindByUserID(ctx, callerID)
		if err != nil {
			return nil, 0, apperror.Forbiddenf("no ngo registered for this account")
		}
		filter.NGOID = &ngo.ID
	default:
		return nil, 0, apperror.Forbiddenf("access denied")
	}

	return s.transactionRepo.List(ctx, filter)
}

// AssignVendor moves a pending transaction to assigned_to_vendor. The target
// vendor must exist and be verified.
func (s *transactionService) AssignVendor(ctx context.Context, id uuid.UUID, req AssignVendorRequest) (*model.Transaction, error) {
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return nil, apperror.Validationf("invalid vendor_id")
	}

	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, apperror.NotFoundf("vendor not found")
	}
	if !vendor.Verified {
		return nil, apperror.Validationf("vendor is not verified")
	}

	var tx *model.Transaction
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		tx, findErr = s.transactionRepo.FindByID(txCtx, id)
		if findErr != nil {
			return apperror.NotFoundf("transaction not found")
		}

		if !model.TransitionAllowed(tx.Status, model.TxAssignedToVendor) {
			return apperror.Validationf("cannot assign vendor while transaction is %s", tx.Status)
		}

		tx.Status = model.TxAssignedToVendor
		tx.VendorID = &vendor.ID
		if req.AdminNotes != "" {
			tx.AdminNotes = req.AdminNotes
		}
		stampMilestone(tx, model.TxAssignedToVendor)

		return s.transactionRepo.Update(txCtx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStatus(tx)
	return tx, nil
}

// stampMilestone records the first time a transaction reaches a milestone
// status. Timestamps are never overwritten, so a restore after an issue does
// not move history.
func stampMilestone(tx *model.Transaction, status string) {
	now := time.Now()
	switch status {
	case model.TxAssignedToVendor:
		if tx.AssignedAt == nil {
			tx.AssignedAt = &now
		}
	case model.TxShipped:
		if tx.ShippedAt == nil {
			tx.ShippedAt = &now
		}
	case model.TxDelivered:
		if tx.DeliveredAt == nil {
			tx.DeliveredAt = &now
		}
	case model.TxCompleted:
		if tx.CompletedAt == nil {
			tx.CompletedAt = &now
		}
	}
}

// roleMayTransition enforces who may request which target status. Table
// validity is checked separately against the current status.
func roleMayTransition(role, target string) bool {
	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleVendor:
		switch target {
		case model.TxVendorProcessing, model.TxShipped, model.TxDelivered, model.TxCompleted, model.TxIssueReported:
			return true
		}
	case model.RoleUser:
		return target == model.TxIssueReported
	}
	return false
}

func (s *transactionService) Transition(ctx context.Context, callerID uuid.UUID, role string, id uuid.UUID, req TransitionRequest) (*model.Transaction, error) {
	if !model.ValidTransactionStatus(req.Status) {
		return nil, apperror.Validationf("invalid status %q", req.Status)
	}
	if req.Status == model.TxAssignedToVendor {
		return nil, apperror.Validationf("vendor assignment has its own endpoint")
	}
	if !roleMayTransition(role, req.Status) {
		return nil, apperror.Forbiddenf("role %s may not set status %s", role, req.Status)
	}

	var tx *model.Transaction
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		tx, findErr = s.transactionRepo.FindByID(txCtx, id)
		if findErr != nil {
			return apperror.NotFoundf("transaction not found")
		}

		switch role {
		case model.RoleVendor:
			vendor, vendorErr := s.vendorRepo.FindByUserID(txCtx, callerID)
			if vendorErr != nil || tx.VendorID == nil || *tx.VendorID != vendor.ID {
				return apperror.Forbiddenf("transaction is not assigned to this vendor")
			}
		case model.RoleUser:
			if tx.DonorUserID != callerID {
				return apperror.Forbiddenf("access denied")
			}
		}

		if !model.TransitionAllowed(tx.Status, req.Status) {
			return apperror.Validationf("cannot move transaction from %s to %s", tx.Status, req.Status)
		}

		// A shipment without a tracking number cannot be followed.
		if req.Status == model.TxShipped && req.TrackingNumber == "" && tx.TrackingNumber == "" {
			return apperror.Validationf("tracking_number is required before shipping")
		}

		if req.Status == model.TxIssueReported {
			tx.PreviousStatus = tx.Status
		}
		tx.Status = req.Status
		stampMilestone(tx, req.Status)

		if req.TrackingNumber != "" {
			tx.TrackingNumber = req.TrackingNumber
		}
		if req.DeliveryNoteURL != "" {
			tx.DeliveryNoteURL = req.DeliveryNoteURL
		}
		if req.VendorNotes != "" {
			tx.VendorNotes = req.VendorNotes
		}
		if req.AdminNotes != "" && role == model.RoleAdmin {
			tx.AdminNotes = req.AdminNotes
		}

		if updateErr := s.transactionRepo.Update(txCtx, tx); updateErr != nil {
			return updateErr
		}

		if req.Status == model.TxCompleted {
			return s.closePackageIfFunded(txCtx, tx.PackageID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStatus(tx)
	return tx, nil
}

// closePackageIfFunded flips the package to completed once fulfillment has
// caught up with a reached target.
func (s *transactionService) closePackageIfFunded(ctx context.Context, packageID uuid.UUID) error {
	pkg, err := s.packageRepo.FindByID(ctx, packageID)
	if err != nil {
		return err
	}
	if pkg.TargetQuantity > 0 && pkg.CurrentQuantity >= pkg.TargetQuantity && pkg.Status == model.PackageActive {
		pkg.Status = model.PackageCompleted
		return s.packageRepo.Update(ctx, pkg)
	}
	return nil
}

// Restore is the admin path out of issue_reported, returning the transaction
// to the status it held when the issue was raised.
func (s *transactionService) Restore(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var tx *model.Transaction
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		tx, findErr = s.transactionRepo.FindByID(txCtx, id)
		if findErr != nil {
			return apperror.NotFoundf("transaction not found")
		}

		if tx.Status != model.TxIssueReported {
			return apperror.Validationf("transaction is not in issue_reported")
		}
		if tx.PreviousStatus == "" {
			return apperror.Validationf("transaction has no recorded previous status")
		}

		tx.Status = tx.PreviousStatus
		tx.PreviousStatus = ""

		return s.transactionRepo.Update(txCtx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStatus(tx)
	return tx, nil
}

func (s *transactionService) broadcastStatus(tx *model.Transaction) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastEvent(ws.Event{
		Type:     ws.EventTransactionStatusChanged,
		EntityID: tx.ID.String(),
		Status:   tx.Status,
		Message:  fmt.Sprintf("transaction %s is now %s", tx.ID, tx.Status),
	})
}
