package service

import (
	"context"
	"log"
	"time"

	"backend/internal/mailer"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"

	"backend/pkg/apperror"
)

// VendorResponse is the external vendor shape. The API speaks
// shop_name/shop_location while storage uses company_name/address; this DTO
// and vendorResponse below are the single place that mapping happens.
type VendorResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ShopName        string    `json:"shop_name"`
	OwnerName       string    `json:"owner_name"`
	Description     string    `json:"description"`
	Website         string    `json:"website"`
	LogoURL         string    `json:"logo_url"`
	ShopLocation    string    `json:"shop_location"`
	PinCode         string    `json:"pin_code"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Country         string    `json:"country"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	GSTNumber       string    `json:"gst_number"`
	BusinessType    string    `json:"business_type"`
	BusinessLicense string    `json:"business_license"`
	Verified        bool      `json:"verified"`
	CreatedAt       string    `json:"created_at"`
	UpdatedAt       string    `json:"updated_at"`
}

type UpdateVendorRequest struct {
	ShopName        *string `json:"shop_name"`
	OwnerName       *string `json:"owner_name"`
	Description     *string `json:"description"`
	Website         *string `json:"website"`
	LogoURL         *string `json:"logo_url"`
	ShopLocation    *string `json:"shop_location"`
	PinCode         *string `json:"pin_code"`
	City            *string `json:"city"`
	State           *string `json:"state"`
	Country         *string `json:"country"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email" binding:"omitempty,email"`
	GSTNumber       *string `json:"gst_number"`
	BusinessType    *string `json:"business_type"`
	BusinessLicense *string `json:"business_license"`
}

type VendorListQuery struct {
	BusinessType string
	Skip         int
	Limit        int
}

// VendorService mirrors NGOService for the vendor side of the platform.
type VendorService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VendorResponse, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*VendorResponse, error)
	List(ctx context.Context, query VendorListQuery, includeUnverified bool) ([]VendorResponse, int64, error)
	ListPendingApproval(ctx context.Context) ([]VendorResponse, error)
	Update(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error)
	SetVerified(ctx context.Context, id uuid.UUID, approved bool, notes string) (*VendorResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type vendorService struct {
	vendorRepo  repository.VendorRepository
	profileRepo repository.ProfileRepository
	txManager   repository.TransactionManager
	notifier    mailer.Notifier
}

func NewVendorService(
	vendorRepo repository.VendorRepository,
	profileRepo repository.ProfileRepository,
	txManager repository.TransactionManager,
	notifier mailer.Notifier,
) VendorService {
	return &vendorService{vendorRepo: vendorRepo, profileRepo: profileRepo, txManager: txManager, notifier: notifier}
}

func vendorResponse(v *model.Vendor) *VendorResponse {
	return &VendorResponse{
		ID:              v.ID,
		UserID:          v.UserID,
		ShopName:        v.CompanyName,
		OwnerName:       v.OwnerName,
		Description:     v.Description,
		Website:         v.Website,
		LogoURL:         v.LogoURL,
		ShopLocation:    v.Address,
		PinCode:         v.PinCode,
		City:            v.City,
		State:           v.State,
		Country:         v.Country,
		Phone:           v.Phone,
		Email:           v.Email,
		GSTNumber:       v.GSTNumber,
		BusinessType:    v.BusinessType,
		BusinessLicense: v.BusinessLicense,
		Verified:        v.Verified,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       v.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *vendorService) GetByID(ctx context.Context, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("vendor not found")
	}
	return vendorResponse(vendor), nil
}

func (s *vendorService) GetByUserID(ctx context.Context, userID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFoundf("no vendor registered for this account")
	}
	return vendorResponse(vendor), nil
}

func (s *vendorService) List(ctx context.Context, query VendorListQuery, includeUnverified bool) ([]VendorResponse, int64, error) {
	vendors, total, err := s.vendorRepo.List(ctx, repository.VendorListFilter{
		VerifiedOnly: !includeUnverified,
		BusinessType: query.BusinessType,
		Skip:         query.Skip,
		Limit:        query.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	result := make([]VendorResponse, 0, len(vendors))
	for i := range vendors {
		result = append(result, *vendorResponse(&vendors[i]))
	}
	return result, total, nil
}

func (s *vendorService) ListPendingApproval(ctx context.Context) ([]VendorResponse, error) {
	vendors, err := s.vendorRepo.ListUnverified(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]VendorResponse, 0, len(vendors))
	for i := range vendors {
		result = append(result, *vendorResponse(&vendors[i]))
	}
	return result, nil
}

func (s *vendorService) Update(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("vendor not found")
	}
	if !isAdmin && vendor.UserID != callerID {
		return nil, apperror.Forbiddenf("cannot modify another vendor")
	}

	if req.ShopName != nil {
		vendor.CompanyName = *req.ShopName
	}
	if req.OwnerName != nil {
		vendor.OwnerName = *req.OwnerName
	}
	if req.Description != nil {
		vendor.Description = *req.Description
	}
	if req.Website != nil {
		vendor.Website = *req.Website
	}
	if req.LogoURL != nil {
		vendor.LogoURL = *req.LogoURL
	}
	if req.ShopLocation != nil {
		vendor.Address = *req.ShopLocation
	}
	if req.PinCode != nil {
		vendor.PinCode = *req.PinCode
	}
	if req.City != nil {
		vendor.City = *req.City
	}
	if req.State != nil {
		vendor.State = *req.State
	}
	if req.Country != nil {
		vendor.Country = *req.Country
	}
	if req.Phone != nil {
		vendor.Phone = *req.Phone
	}
	if req.Email != nil {
		vendor.Email = *req.Email
	}
	if req.GSTNumber != nil {
		vendor.GSTNumber = *req.GSTNumber
	}
	if req.BusinessType != nil {
		vendor.BusinessType = *req.BusinessType
	}
	if req.BusinessLicense != nil {
		vendor.BusinessLicense = *req.BusinessLicense
	}

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendorResponse(vendor), nil
}

func (s *vendorService) SetVerified(ctx context.Context, id uuid.UUID, approved bool, notes string) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("vendor not found")
	}

	vendor.Verified = approved
	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	if !s.notifier.ApprovalResult(ctx, vendor.CompanyName, vendor.Email, model.RoleVendor, approved, notes) {
		log.Printf("vendor: approval result email not delivered for %s", vendor.ID)
	}
	return vendorResponse(vendor), nil
}

// Delete removes the vendor together with its owning identity. The profile
// row goes first and the FK cascade takes the vendor record with it, so no
// orphaned vendor-role login survives.
func (s *vendorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		vendor, err := s.vendorRepo.FindByID(txCtx, id)
		if err != nil {
			return apperror.NotFoundf("vendor not found")
		}
		return s.profileRepo.DeleteByUserID(txCtx, vendor.UserID)
	})
}
