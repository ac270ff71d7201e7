package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"backend/pkg/apperror"
)

type CreateDonationPackageRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description" binding:"required"`
	Amount           string `json:"amount" binding:"required"`
	ImageURL         string `json:"image_url"`
	Category         string `json:"category" binding:"required"`
	TargetQuantity   int    `json:"target_quantity" binding:"required,min=1"`
	AssignedVendorID string `json:"assigned_vendor_id"`
}

type UpdateDonationPackageRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	Amount           *string `json:"amount"`
	ImageURL         *string `json:"image_url"`
	Category         *string `json:"category"`
	TargetQuantity   *int    `json:"target_quantity"`
	AssignedVendorID *string `json:"assigned_vendor_id"`
	Status           *string `json:"status"`
}

type DonationPackageListQuery struct {
	Status string
	Skip   int
	Limit  int
}

// DonationPackageService manages the centrally curated packages an admin
// creates and optionally assigns to a vendor for fulfillment.
type DonationPackageService interface {
	Create(ctx context.Context, adminUserID uuid.UUID, req CreateDonationPackageRequest) (*model.DonationPackage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.DonationPackage, error)
	List(ctx context.Context, query DonationPackageListQuery) ([]model.DonationPackage, int64, error)
	ListForVendor(ctx context.Context, vendorUserID uuid.UUID, query DonationPackageListQuery) ([]model.DonationPackage, int64, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateDonationPackageRequest) (*model.DonationPackage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type donationPackageService struct {
	donationPackageRepo repository.DonationPackageRepository
	vendorRepo          repository.VendorRepository
}

func NewDonationPackageService(donationPackageRepo repository.DonationPackageRepository, vendorRepo repository.VendorRepository) DonationPackageService {
	return &donationPackageService{donationPackageRepo: donationPackageRepo, vendorRepo: vendorRepo}
}

// resolveVendor validates an optional vendor assignment.
func (s *donationPackageService) resolveVendor(ctx context.Context, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	vendorID, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.Validationf("invalid assigned_vendor_id")
	}
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, apperror.NotFoundf("vendor not found")
	}
	if !vendor.Verified {
		return nil, apperror.Validationf("vendor is not verified")
	}
	return &vendor.ID, nil
}

func (s *donationPackageService) Create(ctx context.Context, adminUserID uuid.UUID, req CreateDonationPackageRequest) (*model.DonationPackage, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.Validationf("amount must be a positive number")
	}

	vendorID, err := s.resolveVendor(ctx, req.AssignedVendorID)
	if err != nil {
		return nil, err
	}

	pkg := &model.DonationPackage{
		Title:            req.Title,
		Description:      req.Description,
		Amount:           amount,
		ImageURL:         req.ImageURL,
		Category:         req.Category,
		TargetQuantity:   req.TargetQuantity,
		AssignedVendorID: vendorID,
		Status:           model.PackageActive,
		CreatedBy:        adminUserID,
	}
	if err := s.donationPackageRepo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *donationPackageService) GetByID(ctx context.Context, id uuid.UUID) (*model.DonationPackage, error) {
	pkg, err := s.donationPackageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("donation package not found")
	}
	return pkg, nil
}

func (s *donationPackageService) List(ctx context.Context, query DonationPackageListQuery) ([]model.DonationPackage, int64, error) {
	if query.Status != "" && !model.ValidPackageStatus(query.Status) {
		return nil, 0, apperror.Validationf("invalid status filter %q", query.Status)
	}
	return s.donationPackageRepo.List(ctx, repository.DonationPackageListFilter{
		Status: query.Status,
		Skip:   query.Skip,
		Limit:  query.Limit,
	})
}

func (s *donationPackageService) ListForVendor(ctx context.Context, vendorUserID uuid.UUID, query DonationPackageListQuery) ([]model.DonationPackage, int64, error) {
	vendor, err := s.vendorRepo.FindByUserID(ctx, vendorUserID)
	if err != nil {
		return nil, 0, apperror.Forbiddenf("no vendor registered for this account")
	}
	return s.donationPackageRepo.List(ctx, repository.DonationPackageListFilter{
		AssignedVendorID: &vendor.ID,
		Status:           query.Status,
		Skip:             query.Skip,
		Limit:            query.Limit,
	})
}

func (s *donationPackageService) Update(ctx context.Context, id uuid.UUID, req UpdateDonationPackageRequest) (*model.DonationPackage, error) {
	pkg, err := s.donationPackageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("donation package not found")
	}

	if req.Title != nil {
		pkg.Title = *req.Title
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.Amount != nil {
		amount, parseErr := decimal.NewFromString(*req.Amount)
		if parseErr != nil || amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperror.Validationf("amount must be a positive number")
		}
		pkg.Amount = amount
	}
	if req.ImageURL != nil {
		pkg.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		pkg.Category = *req.Category
	}
	if req.TargetQuantity != nil {
		if *req.TargetQuantity < 1 {
			return nil, apperror.Validationf("target_quantity must be at least 1")
		}
		pkg.TargetQuantity = *req.TargetQuantity
	}
	if req.AssignedVendorID != nil {
		if *req.AssignedVendorID == "" {
			pkg.AssignedVendorID = nil
		} else {
			vendorID, resolveErr := s.resolveVendor(ctx, *req.AssignedVendorID)
			if resolveErr != nil {
				return nil, resolveErr
			}
			pkg.AssignedVendorID = vendorID
		}
	}
	if req.Status != nil {
		if !model.ValidPackageStatus(*req.Status) {
			return nil, apperror.Validationf("invalid status %q", *req.Status)
		}
		pkg.Status = *req.Status
	}

	if err := s.donationPackageRepo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *donationPackageService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.donationPackageRepo.FindByID(ctx, id); err != nil {
		return apperror.NotFoundf("donation package not found")
	}
	return s.donationPackageRepo.Delete(ctx, id)
}
