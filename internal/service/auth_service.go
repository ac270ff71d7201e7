package service

import (
	"context"
	"errors"
	"log"
	"time"

	"backend/internal/mailer"
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"backend/pkg/apperror"
)

// DTOs for Request validation

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

type RegisterNGORequest struct {
	RegisterRequest
	NGOName            string `json:"ngo_name" binding:"required"`
	Description        string `json:"description" binding:"required"`
	Mission            string `json:"mission"`
	Website            string `json:"website"`
	FullAddress        string `json:"full_address" binding:"required"`
	PinCode            string `json:"pin_code" binding:"required"`
	City               string `json:"city" binding:"required"`
	State              string `json:"state" binding:"required"`
	Country            string `json:"country"`
	ContactPhone       string `json:"contact_phone"`
	ContactEmail       string `json:"contact_email"`
	LicenseNumber      string `json:"license_number"`
	RegistrationNumber string `json:"registration_number"`
}

type RegisterVendorRequest struct {
	RegisterRequest
	ShopName     string `json:"shop_name" binding:"required"`
	OwnerName    string `json:"owner_name"`
	Description  string `json:"description"`
	Website      string `json:"website"`
	ShopLocation string `json:"shop_location" binding:"required"`
	PinCode      string `json:"pin_code"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	Country      string `json:"country"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
	GSTNumber    string `json:"gst_number"`
	BusinessType string `json:"business_type" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ProfileResponse returns identity data without exposing the password hash.
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// AuthService covers registration in all three roles, login, and identity
// lookup for the authenticated caller.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*ProfileResponse, error)
	RegisterNGO(ctx context.Context, req RegisterNGORequest) (*ProfileResponse, error)
	RegisterVendor(ctx context.Context, req RegisterVendorRequest) (*ProfileResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error)
}

type authService struct {
	profileRepo repository.ProfileRepository
	ngoRepo     repository.NGORepository
	vendorRepo  repository.VendorRepository
	txManager   repository.TransactionManager
	notifier    mailer.Notifier
}

func NewAuthService(
	profileRepo repository.ProfileRepository,
	ngoRepo repository.NGORepository,
	vendorRepo repository.VendorRepository,
	txManager repository.TransactionManager,
	notifier mailer.Notifier,
) AuthService {
	return &authService{
		profileRepo: profileRepo,
		ngoRepo:     ngoRepo,
		vendorRepo:  vendorRepo,
		txManager:   txManager,
		notifier:    notifier,
	}
}

func toProfileResponse(p *model.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Role:      p.Role,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

// mapDuplicateEmail turns the unique-index violation into the same conflict
// the pre-check reports. Two concurrent registrations can both pass the
// pre-check; the index catches the loser.
func mapDuplicateEmail(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Conflictf("email already registered")
	}
	return err
}

// newProfile hashes the password and builds the identity record with a fresh
// external user id.
func (s *authService) newProfile(ctx context.Context, req RegisterRequest, role string) (*model.Profile, error) {
	if _, err := s.profileRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperror.Conflictf("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Validationf("failed to hash password")
	}

	return &model.Profile{
		UserID:       uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hashed),
		Role:         role,
	}, nil
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*ProfileResponse, error) {
	profile, err := s.newProfile(ctx, req, model.RoleUser)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, mapDuplicateEmail(err)
	}
	return toProfileResponse(profile), nil
}

func (s *authService) RegisterNGO(ctx context.Context, req RegisterNGORequest) (*ProfileResponse, error) {
	profile, err := s.newProfile(ctx, req.RegisterRequest, model.RoleNGO)
	if err != nil {
		return nil, err
	}

	contactPhone := req.ContactPhone
	if contactPhone == "" {
		contactPhone = req.Phone
	}
	contactEmail := req.ContactEmail
	if contactEmail == "" {
		contactEmail = req.Email
	}
	country := req.Country
	if country == "" {
		country = "India"
	}

	ngo := &model.NGO{
		UserID:             profile.UserID,
		Name:               req.NGOName,
		Description:        req.Description,
		Mission:            req.Mission,
		Website:            req.Website,
		FullAddress:        req.FullAddress,
		PinCode:            req.PinCode,
		City:               req.City,
		State:              req.State,
		Country:            country,
		Phone:              contactPhone,
		Email:              contactEmail,
		LicenseNumber:      req.LicenseNumber,
		RegistrationNumber: req.RegistrationNumber,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.profileRepo.Create(txCtx, profile); err != nil {
			return err
		}
		return s.ngoRepo.Create(txCtx, ngo)
	})
	if err != nil {
		return nil, mapDuplicateEmail(err)
	}

	if !s.notifier.RegistrationApprovalRequest(ctx, req.NGOName, req.Email, model.RoleNGO, map[string]string{
		"City":           req.City,
		"License number": req.LicenseNumber,
	}) {
		log.Printf("auth: approval request email not delivered for ngo %s", ngo.ID)
	}

	return toProfileResponse(profile), nil
}

func (s *authService) RegisterVendor(ctx context.Context, req RegisterVendorRequest) (*ProfileResponse, error) {
	profile, err := s.newProfile(ctx, req.RegisterRequest, model.RoleVendor)
	if err != nil {
		return nil, err
	}

	contactPhone := req.ContactPhone
	if contactPhone == "" {
		contactPhone = req.Phone
	}
	contactEmail := req.ContactEmail
	if contactEmail == "" {
		contactEmail = req.Email
	}
	country := req.Country
	if country == "" {
		country = "India"
	}
	ownerName := req.OwnerName
	if ownerName == "" {
		ownerName = req.FirstName + " " + req.LastName
	}

	vendor := &model.Vendor{
		UserID:       profile.UserID,
		CompanyName:  req.ShopName,
		OwnerName:    ownerName,
		Description:  req.Description,
		Website:      req.Website,
		Address:      req.ShopLocation,
		PinCode:      req.PinCode,
		City:         req.City,
		State:        req.State,
		Country:      country,
		Phone:        contactPhone,
		Email:        contactEmail,
		GSTNumber:    req.GSTNumber,
		BusinessType: req.BusinessType,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.profileRepo.Create(txCtx, profile); err != nil {
			return err
		}
		return s.vendorRepo.Create(txCtx, vendor)
	})
	if err != nil {
		return nil, mapDuplicateEmail(err)
	}

	if !s.notifier.RegistrationApprovalRequest(ctx, req.ShopName, req.Email, model.RoleVendor, map[string]string{
		"City":          req.City,
		"Business type": req.BusinessType,
	}) {
		log.Printf("auth: approval request email not delivered for vendor %s", vendor.ID)
	}

	return toProfileResponse(profile), nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	// The same message covers unknown email and wrong password so the
	// endpoint does not reveal which addresses are registered.
	profile, err := s.profileRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Unauthorizedf("incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorizedf("incorrect email or password")
	}

	token, err := middleware.GenerateToken(profile.UserID, profile.Email, profile.Role)
	if err != nil {
		return nil, apperror.Dependencyf("failed to generate token")
	}

	if !s.notifier.LoginWelcome(ctx, profile.FirstName, profile.Email, profile.Role) {
		log.Printf("auth: welcome email not delivered for %s", profile.UserID)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(middleware.TokenTTL.Seconds()),
	}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFoundf("user not found")
	}
	return toProfileResponse(profile), nil
}
