package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"

	"backend/pkg/apperror"
)

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
}

// ProfileService is the admin-facing user management surface plus profile
// self-service updates.
type ProfileService interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error)
	List(ctx context.Context, role string, skip, limit int) ([]ProfileResponse, int64, error)
	Update(ctx context.Context, callerID uuid.UUID, isAdmin bool, userID uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error)
	Delete(ctx context.Context, callerID, userID uuid.UUID) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
	txManager   repository.TransactionManager
}

func NewProfileService(profileRepo repository.ProfileRepository, txManager repository.TransactionManager) ProfileService {
	return &profileService{profileRepo: profileRepo, txManager: txManager}
}

func (s *profileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFoundf("user not found")
	}
	return toProfileResponse(profile), nil
}

func (s *profileService) List(ctx context.Context, role string, skip, limit int) ([]ProfileResponse, int64, error) {
	if role != "" && !model.ValidRole(role) {
		return nil, 0, apperror.Validationf("invalid role filter %q", role)
	}

	profiles, total, err := s.profileRepo.List(ctx, role, skip, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		result = append(result, *toProfileResponse(&profiles[i]))
	}
	return result, total, nil
}

func (s *profileService) Update(ctx context.Context, callerID uuid.UUID, isAdmin bool, userID uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error) {
	if !isAdmin && callerID != userID {
		return nil, apperror.Forbiddenf("cannot modify another user's profile")
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFoundf("user not found")
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Role != nil {
		// Role reassignment is an admin action.
		if !isAdmin {
			return nil, apperror.Forbiddenf("only admins can change roles")
		}
		if !model.ValidRole(*req.Role) {
			return nil, apperror.Validationf("invalid role %q", *req.Role)
		}
		profile.Role = *req.Role
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}

func (s *profileService) Delete(ctx context.Context, callerID, userID uuid.UUID) error {
	if callerID == userID {
		return apperror.Validationf("admins cannot delete their own account")
	}

	if _, err := s.profileRepo.FindByUserID(ctx, userID); err != nil {
		return apperror.NotFoundf("user not found")
	}

	// Owned NGO/Vendor rows go with the profile via FK cascade.
	return s.profileRepo.DeleteByUserID(ctx, userID)
}
