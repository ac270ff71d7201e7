package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"backend/pkg/apperror"
)

// VendorDashboardStats summarizes a vendor's fulfillment workload.
type VendorDashboardStats struct {
	TotalOrders      int64 `json:"total_orders"`
	ActiveOrders     int64 `json:"active_orders"`
	ShippedOrders    int64 `json:"shipped_orders"`
	DeliveredOrders  int64 `json:"delivered_orders"`
	CompletedOrders  int64 `json:"completed_orders"`
	PendingInvoices  int64 `json:"pending_invoices"`
	ApprovedInvoices int64 `json:"approved_invoices"`
}

// NGODashboardStats summarizes an NGO's fundraising and fulfillment state.
type NGODashboardStats struct {
	TotalPackages       int64           `json:"total_packages"`
	ActivePackages      int64           `json:"active_packages"`
	CompletedPackages   int64           `json:"completed_packages"`
	TotalDonations      int64           `json:"total_donations"`
	CompletedDonations  int64           `json:"completed_donations"`
	TotalRaised         decimal.Decimal `json:"total_raised"`
	OpenTransactions    int64           `json:"open_transactions"`
	CompletedDeliveries int64           `json:"completed_deliveries"`
}

// DashboardService aggregates per-role counters for dashboard screens.
type DashboardService interface {
	VendorStats(ctx context.Context, vendorUserID uuid.UUID) (*VendorDashboardStats, error)
	NGOStats(ctx context.Context, ngoUserID uuid.UUID) (*NGODashboardStats, error)
}

type dashboardService struct {
	transactionRepo repository.TransactionRepository
	invoiceRepo     repository.VendorInvoiceRepository
	vendorRepo      repository.VendorRepository
	ngoRepo         repository.NGORepository
	packageRepo     repository.PackageRepository
	donationRepo    repository.DonationRepository
}

func NewDashboardService(
	transactionRepo repository.TransactionRepository,
	invoiceRepo repository.VendorInvoiceRepository,
	vendorRepo repository.VendorRepository,
	ngoRepo repository.NGORepository,
	packageRepo repository.PackageRepository,
	donationRepo repository.DonationRepository,
) DashboardService {
	return &dashboardService{
		transactionRepo: transactionRepo,
		invoiceRepo:     invoiceRepo,
		vendorRepo:      vendorRepo,
		ngoRepo:         ngoRepo,
		packageRepo:     packageRepo,
		donationRepo:    donationRepo,
	}
}

func (s *dashboardService) VendorStats(ctx context.Context, vendorUserID uuid.UUID) (*VendorDashboardStats, error) {
	vendor, err := s.vendorRepo.FindByUserID(ctx, vendorUserID)
	if err != nil {
		return nil, apperror.Forbiddenf("no vendor registered for this account")
	}

	stats := &VendorDashboardStats{}

	if stats.TotalOrders, err = s.transactionRepo.CountByVendor(ctx, vendor.ID, ""); err != nil {
		return nil, err
	}
	var processing, assigned int64
	if assigned, err = s.transactionRepo.CountByVendor(ctx, vendor.ID, model.TxAssignedToVendor); err != nil {
		return nil, err
	}
	if processing, err = s.transactionRepo.CountByVendor(ctx, vendor.ID, model.TxVendorProcessing); err != nil {
		return nil, err
	}
	stats.ActiveOrders = assigned + processing
	if stats.ShippedOrders, err = s.transactionRepo.CountByVendor(ctx, vendor.ID, model.TxShipped); err != nil {
		return nil, err
	}
	if stats.DeliveredOrders, err = s.transactionRepo.CountByVendor(ctx, vendor.ID, model.TxDelivered); err != nil {
		return nil, err
	}
	if stats.CompletedOrders, err = s.transactionRepo.CountByVendor(ctx, vendor.ID, model.TxCompleted); err != nil {
		return nil, err
	}
	if stats.PendingInvoices, err = s.invoiceRepo.CountByVendor(ctx, vendor.ID, model.InvoicePending); err != nil {
		return nil, err
	}
	if stats.ApprovedInvoices, err = s.invoiceRepo.CountByVendor(ctx, vendor.ID, model.InvoiceApproved); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *dashboardService) NGOStats(ctx context.Context, ngoUserID uuid.UUID) (*NGODashboardStats, error) {
	ngo, err := s.ngoRepo.FindByUserID(ctx, ngoUserID)
	if err != nil {
		return nil, apperror.Forbiddenf("no ngo registered for this account")
	}

	stats := &NGODashboardStats{}

	if stats.TotalPackages, err = s.packageRepo.CountByNGO(ctx, ngo.ID, ""); err != nil {
		return nil, err
	}
	if stats.ActivePackages, err = s.packageRepo.CountByNGO(ctx, ngo.ID, model.PackageActive); err != nil {
		return nil, err
	}
	if stats.CompletedPackages, err = s.packageRepo.CountByNGO(ctx, ngo.ID, model.PackageCompleted); err != nil {
		return nil, err
	}
	if stats.TotalDonations, err = s.donationRepo.CountByNGO(ctx, ngo.ID, ""); err != nil {
		return nil, err
	}
	if stats.CompletedDonations, err = s.donationRepo.CountByNGO(ctx, ngo.ID, model.PaymentCompleted); err != nil {
		return nil, err
	}
	if stats.TotalRaised, err = s.donationRepo.SumCompletedAmountByNGO(ctx, ngo.ID); err != nil {
		return nil, err
	}

	var total, completed, cancelled int64
	if total, err = s.transactionRepo.CountByNGO(ctx, ngo.ID, ""); err != nil {
		return nil, err
	}
	if completed, err = s.transactionRepo.CountByNGO(ctx, ngo.ID, model.TxCompleted); err != nil {
		return nil, err
	}
	if cancelled, err = s.transactionRepo.CountByNGO(ctx, ngo.ID, model.TxCancelled); err != nil {
		return nil, err
	}
	stats.CompletedDeliveries = completed
	stats.OpenTransactions = total - completed - cancelled

	return stats, nil
}
