package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NGOListFilter narrows NGO listings.
type NGOListFilter struct {
	VerifiedOnly bool
	City         string
	Skip         int
	Limit        int
}

type NGORepository interface {
	Create(ctx context.Context, ngo *model.NGO) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.NGO, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.NGO, error)
	List(ctx context.Context, filter NGOListFilter) ([]model.NGO, int64, error)
	ListUnverified(ctx context.Context) ([]model.NGO, error)
	Update(ctx context.Context, ngo *model.NGO) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ngoRepository struct {
	db *gorm.DB
}

func NewNGORepository(db *gorm.DB) NGORepository {
	return &ngoRepository{db: db}
}

func (r *ngoRepository) Create(ctx context.Context, ngo *model.NGO) error {
	return GetDB(ctx, r.db).Create(ngo).Error
}

func (r *ngoRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.NGO, error) {
	var ngo model.NGO
	if err := GetDB(ctx, r.db).First(&ngo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ngo, nil
}

func (r *ngoRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.NGO, error) {
	var ngo model.NGO
	if err := GetDB(ctx, r.db).First(&ngo, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &ngo, nil
}

func (r *ngoRepository) List(ctx context.Context, filter NGOListFilter) ([]model.NGO, int64, error) {
	var ngos []model.NGO
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if filter.VerifiedOnly {
			q = q.Where("verified = ?", true)
		}
		if filter.City != "" {
			q = q.Where("city = ?", filter.City)
		}
		return q
	}

	if err := apply(db.Model(&model.NGO{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := apply(db.Order("created_at DESC")).Offset(filter.Skip).Limit(filter.Limit).Find(&ngos).Error; err != nil {
		return nil, 0, err
	}

	return ngos, total, nil
}

func (r *ngoRepository) ListUnverified(ctx context.Context) ([]model.NGO, error) {
	var ngos []model.NGO
	if err := GetDB(ctx, r.db).Where("verified = ?", false).Order("created_at DESC").Find(&ngos).Error; err != nil {
		return nil, err
	}
	return ngos, nil
}

func (r *ngoRepository) Update(ctx context.Context, ngo *model.NGO) error {
	return GetDB(ctx, r.db).Save(ngo).Error
}

func (r *ngoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.NGO{}).Error
}
