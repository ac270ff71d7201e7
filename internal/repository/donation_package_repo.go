package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationPackageListFilter narrows centrally managed package listings.
type DonationPackageListFilter struct {
	AssignedVendorID *uuid.UUID
	Status           string
	Skip             int
	Limit            int
}

type DonationPackageRepository interface {
	Create(ctx context.Context, pkg *model.DonationPackage) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DonationPackage, error)
	List(ctx context.Context, filter DonationPackageListFilter) ([]model.DonationPackage, int64, error)
	Update(ctx context.Context, pkg *model.DonationPackage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type donationPackageRepository struct {
	db *gorm.DB
}

func NewDonationPackageRepository(db *gorm.DB) DonationPackageRepository {
	return &donationPackageRepository{db: db}
}

func (r *donationPackageRepository) Create(ctx context.Context, pkg *model.DonationPackage) error {
	return GetDB(ctx, r.db).Create(pkg).Error
}

func (r *donationPackageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.DonationPackage, error) {
	var pkg model.DonationPackage
	if err := GetDB(ctx, r.db).First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *donationPackageRepository) List(ctx context.Context, filter DonationPackageListFilter) ([]model.DonationPackage, int64, error) {
	var packages []model.DonationPackage
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if filter.AssignedVendorID != nil {
			q = q.Where("assigned_vendor_id = ?", *filter.AssignedVendorID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q
	}

	if err := apply(db.Model(&model.DonationPackage{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := apply(db.Order("created_at DESC")).Offset(filter.Skip).Limit(filter.Limit).Find(&packages).Error; err != nil {
		return nil, 0, err
	}

	return packages, total, nil
}

func (r *donationPackageRepository) Update(ctx context.Context, pkg *model.DonationPackage) error {
	return GetDB(ctx, r.db).Save(pkg).Error
}

func (r *donationPackageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.DonationPackage{}).Error
}
