package repository

import (
	"context"
	"errors"

	"backend/internal/model"

	"gorm.io/gorm"
)

// SettingsRepository manages the singleton application settings row,
// lazily creating it with defaults on first read.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.ApplicationSettings, error)
	Update(ctx context.Context, settings *model.ApplicationSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*model.ApplicationSettings, error) {
	var settings model.ApplicationSettings
	err := GetDB(ctx, r.db).Order("created_at ASC").First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = model.ApplicationSettings{
		AppName:    model.DefaultAppName,
		AdminEmail: model.DefaultAdminEmail,
	}
	if err := GetDB(ctx, r.db).Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *model.ApplicationSettings) error {
	return GetDB(ctx, r.db).Save(settings).Error
}
