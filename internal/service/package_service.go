package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"backend/pkg/apperror"
)

type CreatePackageRequest struct {
	NGOID          string `json:"ngo_id"`
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	Amount         string `json:"amount" binding:"required"`
	ImageURL       string `json:"image_url"`
	Category       string `json:"category"`
	TargetQuantity int    `json:"target_quantity"`
}

type UpdatePackageRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Amount         *string `json:"amount"`
	ImageURL       *string `json:"image_url"`
	Category       *string `json:"category"`
	TargetQuantity *int    `json:"target_quantity"`
	Status         *string `json:"status"`
}

type PackageListQuery struct {
	NGOID    string
	Status   string
	Category string
	Skip     int
	Limit    int
}

// PackageService manages NGO fundraising packages. CurrentQuantity is never
// writable here; it only moves through donation payment reconciliation.
type PackageService interface {
	Create(ctx context.Context, callerID uuid.UUID, isAdmin bool, req CreatePackageRequest) (*model.Package, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Package, error)
	List(ctx context.Context, query PackageListQuery) ([]model.Package, int64, error)
	Update(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID, req UpdatePackageRequest) (*model.Package, error)
	Delete(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) error
}

type packageService struct {
	packageRepo repository.PackageRepository
	ngoRepo     repository.NGORepository
}

func NewPackageService(packageRepo repository.PackageRepository, ngoRepo repository.NGORepository) PackageService {
	return &packageService{packageRepo: packageRepo, ngoRepo: ngoRepo}
}

// resolveOwnedNGO maps the caller to the NGO a package operation applies to.
// NGO users always act on their own organization; admins name one explicitly.
func (s *packageService) resolveOwnedNGO(ctx context.Context, callerID uuid.UUID, isAdmin bool, ngoIDParam string) (*model.NGO, error) {
	if isAdmin {
		if ngoIDParam == "" {
			return nil, apperror.Validationf("ngo_id is required")
		}
		ngoID, err := uuid.Parse(ngoIDParam)
		if err != nil {
			return nil, apperror.Validationf("invalid ngo_id")
		}
		ngo, err := s.ngoRepo.FindByID(ctx, ngoID)
		if err != nil {
			return nil, apperror.NotFoundf("ngo not found")
		}
		return ngo, nil
	}

	ngo, err := s.ngoRepo.FindByUserID(ctx, callerID)
	if err != nil {
		return nil, apperror.Forbiddenf("no ngo registered for this account")
	}
	return ngo, nil
}

func (s *packageService) Create(ctx context.Context, callerID uuid.UUID, isAdmin bool, req CreatePackageRequest) (*model.Package, error) {
	ngo, err := s.resolveOwnedNGO(ctx, callerID, isAdmin, req.NGOID)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.Validationf("amount must be a positive number")
	}
	if req.TargetQuantity < 0 {
		return nil, apperror.Validationf("target_quantity cannot be negative")
	}

	pkg := &model.Package{
		NGOID:          ngo.ID,
		Title:          req.Title,
		Description:    req.Description,
		Amount:         amount,
		ImageURL:       req.ImageURL,
		Category:       req.Category,
		TargetQuantity: req.TargetQuantity,
		Status:         model.PackageActive,
	}
	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *packageService) GetByID(ctx context.Context, id uuid.UUID) (*model.Package, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("package not found")
	}
	return pkg, nil
}

func (s *packageService) List(ctx context.Context, query PackageListQuery) ([]model.Package, int64, error) {
	filter := repository.PackageListFilter{
		Status:   query.Status,
		Category: query.Category,
		Skip:     query.Skip,
		Limit:    query.Limit,
	}
	if query.NGOID != "" {
		ngoID, err := uuid.Parse(query.NGOID)
		if err != nil {
			return nil, 0, apperror.Validationf("invalid ngo_id")
		}
		filter.NGOID = &ngoID
	}
	if filter.Status != "" && !model.ValidPackageStatus(filter.Status) {
		return nil, 0, apperror.Validationf("invalid status filter %q", filter.Status)
	}
	return s.packageRepo.List(ctx, filter)
}

// checkOwnership loads the package and verifies the caller owns its NGO.
func (s *packageService) checkOwnership(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) (*model.Package, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("package not found")
	}
	if isAdmin {
		return pkg, nil
	}

	ngo, err := s.ngoRepo.FindByID(ctx, pkg.NGOID)
	if err != nil {
		return nil, apperror.NotFoundf("ngo not found")
	}
	if ngo.UserID != callerID {
		return nil, apperror.Forbiddenf("cannot modify another organization's package")
	}
	return pkg, nil
}

func (s *packageService) Update(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID, req UpdatePackageRequest) (*model.Package, error) {
	pkg, err := s.checkOwnership(ctx, callerID, isAdmin, id)
	if err != nil {
		return nil, err
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
		if *req.TargetQuantity < 0 {
			return nil, apperror.Validationf("target_quantity cannot be negative")
		}
		pkg.TargetQuantity = *req.TargetQuantity
	}
	if req.Status != nil {
		if !model.ValidPackageStatus(*req.Status) {
			return nil, apperror.Validationf("invalid status %q", *req.Status)
		}
		pkg.Status = *req.Status
	}

	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *packageService) Delete(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	if _, err := s.checkOwnership(ctx, callerID, isAdmin, id); err != nil {
		return err
	}
	return s.packageRepo.Delete(ctx, id)
}
