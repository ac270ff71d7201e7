package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DonationListFilter narrows donation listings. UserID non-nil restricts the
// result to rows owned by that donor.
type DonationListFilter struct {
	UserID        *uuid.UUID
	PackageID     *uuid.UUID
	PaymentStatus string
	Skip          int
	Limit         int
}

type DonationRepository interface {
	Create(ctx context.Context, donation *model.Donation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Donation, error)
	List(ctx context.Context, filter DonationListFilter) ([]model.Donation, int64, error)
	Update(ctx context.Context, donation *model.Donation) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByNGO(ctx context.Context, ngoID uuid.UUID, paymentStatus string) (int64, error)
	SumCompletedAmountByNGO(ctx context.Context, ngoID uuid.UUID) (decimal.Decimal, error)
}

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *model.Donation) error {
	return GetDB(ctx, r.db).Create(donation).Error
}

func (r *donationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	var donation model.Donation
	if err := GetDB(ctx, r.db).First(&donation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) List(ctx context.Context, filter DonationListFilter) ([]model.Donation, int64, error) {
	var donations []model.Donation
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if filter.UserID != nil {
			q = q.Where("user_id = ?", *filter.UserID)
		}
		if filter.PackageID != nil {
			q = q.Where("package_id = ?", *filter.PackageID)
		}
		if filter.PaymentStatus != "" {
			q = q.Where("payment_status = ?", filter.PaymentStatus)
		}
		return q
	}

	if err := apply(db.Model(&model.Donation{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := apply(db.Order("created_at DESC")).Offset(filter.Skip).Limit(filter.Limit).Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}

func (r *donationRepository) Update(ctx context.Context, donation *model.Donation) error {
	return GetDB(ctx, r.db).Save(donation).Error
}

func (r *donationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Donation{}).Error
}

func (r *donationRepository) CountByNGO(ctx context.Context, ngoID uuid.UUID, paymentStatus string) (int64, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.Donation{}).Where("ngo_id = ?", ngoID)
	if paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumCompletedAmountByNGO totals the money actually raised: only donations
// whose payment has completed count.
func (r *donationRepository) SumCompletedAmountByNGO(ctx context.Context, ngoID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := GetDB(ctx, r.db).Model(&model.Donation{}).
		Where("ngo_id = ? AND payment_status = ?", ngoID, model.PaymentCompleted).
		Select("SUM(total_amount)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
