package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backend/pkg/apperror"
)

type CreateDonationRequest struct {
	PackageID        string `json:"package_id" binding:"required"`
	Quantity         int    `json:"quantity" binding:"required,min=1"`
	PaymentMethod    string `json:"payment_method"`
	PaymentStatus    string `json:"payment_status"`
	PaymentReference string `json:"payment_reference"`
}

type UpdateDonationRequest struct {
	PaymentStatus    *string `json:"payment_status"`
	PaymentReference *string `json:"payment_reference"`
}

type DonationListQuery struct {
	UserID        *uuid.UUID
	PackageID     string
	PaymentStatus string
	Skip          int
	Limit         int
}

// DonationService records donor pledges and keeps two derived facts in sync
// with the payment status: the package's current_quantity and the existence
// of a fulfillment Transaction. Both move inside the same database
// transaction as the status change.
type DonationService interface {
	Create(ctx context.Context, donorID uuid.UUID, req CreateDonationRequest) (*model.Donation, error)
	GetByID(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) (*model.Donation, error)
	List(ctx context.Context, query DonationListQuery) ([]model.Donation, int64, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateDonationRequest) (*model.Donation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type donationService struct {
	donationRepo    repository.DonationRepository
	packageRepo     repository.PackageRepository
	transactionRepo repository.TransactionRepository
	txManager       repository.TransactionManager
}

func NewDonationService(
	donationRepo repository.DonationRepository,
	packageRepo repository.PackageRepository,
	transactionRepo repository.TransactionRepository,
	txManager repository.TransactionManager,
) DonationService {
	return &donationService{
		donationRepo:    donationRepo,
		packageRepo:     packageRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
	}
}

func generateInvoiceNumber() string {
	return fmt.Sprintf("DON-%s-%s", time.Now().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]))
}

func (s *donationService) Create(ctx context.Context, donorID uuid.UUID, req CreateDonationRequest) (*model.Donation, error) {
	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, apperror.Validationf("invalid package_id")
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = model.PaymentPending
	}
	if !model.ValidPaymentStatus(paymentStatus) {
		return nil, apperror.Validationf("invalid payment_status %q", paymentStatus)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "card"
	}

	pkg, err := s.packageRepo.FindByID(ctx, packageID)
	if err != nil {
		return nil, apperror.NotFoundf("package not found")
	}
	if pkg.Status != model.PackageActive {
		return nil, apperror.Validationf("package is not accepting donations")
	}

	donation := &model.Donation{
		UserID:           donorID,
		NGOID:            pkg.NGOID,
		PackageID:        pkg.ID,
		PackageTitle:     pkg.Title,
		PackageAmount:    pkg.Amount,
		Quantity:         req.Quantity,
		TotalAmount:      pkg.Amount.Mul(decimal.NewFromInt(int64(req.Quantity))),
		PaymentMethod:    paymentMethod,
		PaymentStatus:    paymentStatus,
		PaymentReference: req.PaymentReference,
		InvoiceNumber:    generateInvoiceNumber(),
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.donationRepo.Create(txCtx, donation); err != nil {
			return err
		}
		if donation.PaymentStatus == model.PaymentCompleted {
			return s.onPaymentCompleted(txCtx, donation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return donation, nil
}

// onPaymentCompleted applies the side effects of a donation reaching
// completed payment: the package quantity grows by the donated amount and a
// fulfillment transaction is opened if none exists yet.
func (s *donationService) onPaymentCompleted(ctx context.Context, donation *model.Donation) error {
	if err := s.packageRepo.AdjustQuantity(ctx, donation.PackageID, donation.Quantity); err != nil {
		return err
	}

	_, err := s.transactionRepo.FindByDonationID(ctx, donation.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.transactionRepo.Create(ctx, &model.Transaction{
		DonationID:  donation.ID,
		PackageID:   donation.PackageID,
		NGOID:       donation.NGOID,
		DonorUserID: donation.UserID,
		Status:      model.TxPendingAssignment,
	})
}

func (s *donationService) GetByID(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) (*model.Donation, error) {
	donation, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("donation not found")
	}
	if !isAdmin && donation.UserID != callerID {
		return nil, apperror.Forbiddenf("cannot view another donor's donation")
	}
	return donation, nil
}

func (s *donationService) List(ctx context.Context, query DonationListQuery) ([]model.Donation, int64, error) {
	filter := repository.DonationListFilter{
		UserID:        query.UserID,
		PaymentStatus: query.PaymentStatus,
		Skip:          query.Skip,
		Limit:         query.Limit,
	}
	if query.PackageID != "" {
		packageID, err := uuid.Parse(query.PackageID)
		if err != nil {
			return nil, 0, apperror.Validationf("invalid package_id")
		}
		filter.PackageID = &packageID
	}
	if filter.PaymentStatus != "" && !model.ValidPaymentStatus(filter.PaymentStatus) {
		return nil, 0, apperror.Validationf("invalid payment_status filter %q", filter.PaymentStatus)
	}
	return s.donationRepo.List(ctx, filter)
}

// Update is the payment reconciliation entry point. Moving into completed
// applies the completed side effects; moving out of completed returns the
// quantity to the package.
func (s *donationService) Update(ctx context.Context, id uuid.UUID, req UpdateDonationRequest) (*model.Donation, error) {
	var donation *model.Donation
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		donation, findErr = s.donationRepo.FindByID(txCtx, id)
		if findErr != nil {
			return apperror.NotFoundf("donation not found")
		}

		wasCompleted := donation.PaymentStatus == model.PaymentCompleted

		if req.PaymentStatus != nil {
			if !model.ValidPaymentStatus(*req.PaymentStatus) {
				return apperror.Validationf("invalid payment_status %q", *req.PaymentStatus)
			}
			donation.PaymentStatus = *req.PaymentStatus
		}
		if req.PaymentReference != nil {
			donation.PaymentReference = *req.PaymentReference
		}

		if updateErr := s.donationRepo.Update(txCtx, donation); updateErr != nil {
			return updateErr
		}

		isCompleted := donation.PaymentStatus == model.PaymentCompleted
		switch {
		case !wasCompleted && isCompleted:
			return s.onPaymentCompleted(txCtx, donation)
		case wasCompleted && !isCompleted:
			return s.packageRepo.AdjustQuantity(txCtx, donation.PackageID, -donation.Quantity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return donation, nil
}

func (s *donationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		donation, err := s.donationRepo.FindByID(txCtx, id)
		if err != nil {
			return apperror.NotFoundf("donation not found")
		}

		if donation.PaymentStatus == model.PaymentCompleted {
			if err := s.packageRepo.AdjustQuantity(txCtx, donation.PackageID, -donation.Quantity); err != nil {
				return err
			}
		}
		return s.donationRepo.Delete(txCtx, donation.ID)
	})
}
