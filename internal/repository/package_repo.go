package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PackageListFilter narrows package listings.
type PackageListFilter struct {
	NGOID    *uuid.UUID
	Status   string
	Category string
	Skip     int
	Limit    int
}

type PackageRepository interface {
	Create(ctx context.Context, pkg *model.Package) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Package, error)
	List(ctx context.Context, filter PackageListFilter) ([]model.Package, int64, error)
	Update(ctx context.Context, pkg *model.Package) error
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error
	CountByNGO(ctx context.Context, ngoID uuid.UUID, status string) (int64, error)
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) Create(ctx context.Context, pkg *model.Package) error {
	return GetDB(ctx, r.db).Create(pkg).Error
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Package, error) {
	var pkg model.Package
	if err := GetDB(ctx, r.db).First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) List(ctx context.Context, filter PackageListFilter) ([]model.Package, int64, error) {
	var packages []model.Package
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if filter.NGOID != nil {
			q = q.Where("ngo_id = ?", *filter.NGOID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		return q
	}

	if err := apply(db.Model(&model.Package{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := apply(db.Order("created_at DESC")).Offset(filter.Skip).Limit(filter.Limit).Find(&packages).Error; err != nil {
		return nil, 0, err
	}

	return packages, total, nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *model.Package) error {
	return GetDB(ctx, r.db).Save(pkg).Error
}

func (r *packageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Package{}).Error
}

// AdjustQuantity applies an atomic increment to current_quantity so that
// concurrent donation completions on the same package never lose updates.
func (r *packageRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error {
	return GetDB(ctx, r.db).Model(&model.Package{}).
		Where("id = ?", id).
		UpdateColumn("current_quantity", gorm.Expr("current_quantity + ?", delta)).Error
}

func (r *packageRepository) CountByNGO(ctx context.Context, ngoID uuid.UUID, status string) (int64, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.Package{}).Where("ngo_id = ?", ngoID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
