package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionListFilter narrows transaction listings. DonorUserID non-nil
// restricts to a donor's own rows; VendorID to a vendor's assigned orders.
type TransactionListFilter struct {
	DonorUserID *uuid.UUID
	VendorID    *uuid.UUID
	NGOID       *uuid.UUID
	Status      string
	Skip        int
	Limit       int
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	FindByIDWithVendor(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	FindByDonationID(ctx context.Context, donationID uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, filter TransactionListFilter) ([]model.Transaction, int64, error)
	Update(ctx context.Context, tx *model.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByVendor(ctx context.Context, vendorID uuid.UUID, status string) (int64, error)
	CountByNGO(ctx context.Context, ngoID uuid.UUID, status string) (int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	return GetDB(ctx, r.db).Create(tx).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var tx model.Transaction
	if err := GetDB(ctx, r.db).First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) FindByIDWithVendor(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var tx model.Transaction
	if err := GetDB(ctx, r.db).Preload("Vendor").First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) FindByDonationID(ctx context.Context, donationID uuid.UUID) (*model.Transaction, error) {
	var tx model.Transaction
	if err := GetDB(ctx, r.db).First(&tx, "donation_id = ?", donationID).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionListFilter) ([]model.Transaction, int64, error) {
	var txs []model.Transaction
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if filter.DonorUserID != nil {
			q = q.Where("donor_user_id = ?", *filter.DonorUserID)
		}
		if filter.VendorID != nil {
			q = q.Where("vendor_id = ?", *filter.VendorID)
		}
		if filter.NGOID != nil {
			q = q.Where("ngo_id = ?", *filter.NGOID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q
	}

	if err := apply(db.Model(&model.Transaction{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := apply(db.Order("created_at DESC")).Offset(filter.Skip).Limit(filter.Limit).Find(&txs).Error; err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

func (r *transactionRepository) Update(ctx context.Context, tx *model.Transaction) error {
	return GetDB(ctx, r.db).Save(tx).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Transaction{}).Error
}

func (r *transactionRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID, status string) (int64, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.Transaction{}).Where("vendor_id = ?", vendorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *transactionRepository) CountByNGO(ctx context.Context, ngoID uuid.UUID, status string) (int64, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.Transaction{}).Where("ngo_id = ?", ngoID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
