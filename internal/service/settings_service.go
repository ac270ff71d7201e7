package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"

	"backend/pkg/apperror"
)

type UpdateSettingsRequest struct {
	AppName        *string `json:"app_name"`
	AppLogoURL     *string `json:"app_logo_url"`
	AppDescription *string `json:"app_description"`
	AdminEmail     *string `json:"admin_email" binding:"omitempty,email"`
	SMTPHost       *string `json:"smtp_host"`
	SMTPPort       *int    `json:"smtp_port"`
	SMTPUsername   *string `json:"smtp_username"`
	SMTPPassword   *string `json:"smtp_password"`
}

// SettingsService exposes the admin-managed application settings singleton.
type SettingsService interface {
	Get(ctx context.Context) (*model.ApplicationSettings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (*model.ApplicationSettings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) Get(ctx context.Context) (*model.ApplicationSettings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *settingsService) Update(ctx context.Context, req UpdateSettingsRequest) (*model.ApplicationSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.AppName != nil {
		if *req.AppName == "" {
			return nil, apperror.Validationf("app_name cannot be empty")
		}
		settings.AppName = *req.AppName
	}
	if req.AppLogoURL != nil {
		settings.AppLogoURL = *req.AppLogoURL
	}
	if req.AppDescription != nil {
		settings.AppDescription = *req.AppDescription
	}
	if req.AdminEmail != nil {
		if *req.AdminEmail == "" {
			return nil, apperror.Validationf("admin_email cannot be empty")
		}
		settings.AdminEmail = *req.AdminEmail
	}
	if req.SMTPHost != nil {
		settings.SMTPHost = *req.SMTPHost
	}
	if req.SMTPPort != nil {
		if *req.SMTPPort < 0 || *req.SMTPPort > 65535 {
			return nil, apperror.Validationf("smtp_port out of range")
		}
		settings.SMTPPort = *req.SMTPPort
	}
	if req.SMTPUsername != nil {
		settings.SMTPUsername = *req.SMTPUsername
	}
	if req.SMTPPassword != nil {
		settings.SMTPPassword = *req.SMTPPassword
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
