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

type UpdateNGORequest struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	Mission            *string `json:"mission"`
	Website            *string `json:"website"`
	LogoURL            *string `json:"logo_url"`
	GalleryImages      *string `json:"gallery_images"`
	StartedDate        *string `json:"started_date"`
	LicenseNumber      *string `json:"license_number"`
	TotalMembers       *int    `json:"total_members"`
	FullAddress        *string `json:"full_address"`
	PinCode            *string `json:"pin_code"`
	City               *string `json:"city"`
	State              *string `json:"state"`
	Country            *string `json:"country"`
	Phone              *string `json:"phone"`
	Email              *string `json:"email" binding:"omitempty,email"`
	RegistrationNumber *string `json:"registration_number"`
}

type NGOListQuery struct {
	City  string
	Skip  int
	Limit int
}

// NGOService exposes public verified listings, owner self-service and the
// admin approval flow.
type NGOService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.NGO, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.NGO, error)
	List(ctx context.Context, query NGOListQuery, includeUnverified bool) ([]model.NGO, int64, error)
	ListPendingApproval(ctx context.Context) ([]model.NGO, error)
	Update(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID, req UpdateNGORequest) (*model.NGO, error)
	SetVerified(ctx context.Context, id uuid.UUID, approved bool, notes string) (*model.NGO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ngoService struct {
	ngoRepo     repository.NGORepository
	profileRepo repository.ProfileRepository
	txManager   repository.TransactionManager
	notifier    mailer.Notifier
}

func NewNGOService(
	ngoRepo repository.NGORepository,
	profileRepo repository.ProfileRepository,
	txManager repository.TransactionManager,
	notifier mailer.Notifier,
) NGOService {
	return &ngoService{ngoRepo: ngoRepo, profileRepo: profileRepo, txManager: txManager, notifier: notifier}
}

func (s *ngoService) GetByID(ctx context.Context, id uuid.UUID) (*model.NGO, error) {
	ngo, err := s.ngoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("ngo not found")
	}
	return ngo, nil
}

func (s *ngoService) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.NGO, error) {
	ngo, err := s.ngoRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFoundf("no ngo registered for this account")
	}
	return ngo, nil
}

func (s *ngoService) List(ctx context.Context, query NGOListQuery, includeUnverified bool) ([]model.NGO, int64, error) {
	return s.ngoRepo.List(ctx, repository.NGOListFilter{
		VerifiedOnly: !includeUnverified,
		City:         query.City,
		Skip:         query.Skip,
		Limit:        query.Limit,
	})
}

func (s *ngoService) ListPendingApproval(ctx context.Context) ([]model.NGO, error) {
	return s.ngoRepo.ListUnverified(ctx)
}

func (s *ngoService) Update(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID, req UpdateNGORequest) (*model.NGO, error) {
	ngo, err := s.ngoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("ngo not found")
	}
	if !isAdmin && ngo.UserID != callerID {
		return nil, apperror.Forbiddenf("cannot modify another organization")
	}

	if req.Name != nil {
		ngo.Name = *req.Name
	}
	if req.Description != nil {
		ngo.Description = *req.Description
	}
	if req.Mission != nil {
		ngo.Mission = *req.Mission
	}
	if req.Website != nil {
		ngo.Website = *req.Website
	}
	if req.LogoURL != nil {
		ngo.LogoURL = *req.LogoURL
	}
	if req.GalleryImages != nil {
		ngo.GalleryImages = *req.GalleryImages
	}
	if req.StartedDate != nil {
		if *req.StartedDate == "" {
			ngo.StartedDate = nil
		} else {
			parsed, parseErr := time.Parse("2006-01-02", *req.StartedDate)
			if parseErr != nil {
				return nil, apperror.Validationf("invalid started_date, expected YYYY-MM-DD")
			}
			ngo.StartedDate = &parsed
		}
	}
	if req.LicenseNumber != nil {
		ngo.LicenseNumber = *req.LicenseNumber
	}
	if req.TotalMembers != nil {
		if *req.TotalMembers < 0 {
			return nil, apperror.Validationf("total_members cannot be negative")
		}
		ngo.TotalMembers = *req.TotalMembers
	}
	if req.FullAddress != nil {
		ngo.FullAddress = *req.FullAddress
	}
	if req.PinCode != nil {
		ngo.PinCode = *req.PinCode
	}
	if req.City != nil {
		ngo.City = *req.City
	}
	if req.State != nil {
		ngo.State = *req.State
	}
	if req.Country != nil {
		ngo.Country = *req.Country
	}
	if req.Phone != nil {
		ngo.Phone = *req.Phone
	}
	if req.Email != nil {
		ngo.Email = *req.Email
	}
	if req.RegistrationNumber != nil {
		ngo.RegistrationNumber = *req.RegistrationNumber
	}

	if err := s.ngoRepo.Update(ctx, ngo); err != nil {
		return nil, err
	}
	return ngo, nil
}

// SetVerified records the admin's approval decision and notifies the
// applicant. A rejected NGO stays unverified but keeps its record.
func (s *ngoService) SetVerified(ctx context.Context, id uuid.UUID, approved bool, notes string) (*model.NGO, error) {
	ngo, err := s.ngoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFoundf("ngo not found")
	}

	ngo.Verified = approved
	if err := s.ngoRepo.Update(ctx, ngo); err != nil {
		return nil, err
	}

	if !s.notifier.ApprovalResult(ctx, ngo.Name, ngo.Email, model.RoleNGO, approved, notes) {
		log.Printf("ngo: approval result email not delivered for %s", ngo.ID)
	}
	return ngo, nil
}

// Delete removes the organization together with its owning identity. The
// profile row goes first and the FK cascade takes the ngo record with it, so
// no orphaned ngo-role login survives.
func (s *ngoService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		ngo, err := s.ngoRepo.FindByID(txCtx, id)
		if err != nil {
			return apperror.NotFoundf("ngo not found")
		}
		return s.profileRepo.DeleteByUserID(txCtx, ngo.UserID)
	})
}
