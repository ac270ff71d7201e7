package repository

import (
	"context"
	"errors"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorInvoiceListFilter narrows invoice listings. VendorID non-nil
// restricts the result to a vendor's own submissions.
type VendorInvoiceListFilter struct {
	VendorID *uuid.UUID
	Status   string
	Skip     int
	Limit    int
}

type VendorInvoiceRepository interface {
	Create(ctx context.Context, invoice *model.VendorInvoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.VendorInvoice, error)
	ExistsForTransaction(ctx context.Context, transactionID uuid.UUID) (bool, error)
	List(ctx context.Context, filter VendorInvoiceListFilter) ([]model.VendorInvoice, int64, error)
	Update(ctx context.Context, invoice *model.VendorInvoice) error
	CountByVendor(ctx context.Context, vendorID uuid.UUID, status string) (int64, error)
}

type vendorInvoiceRepository struct {
	db *gorm.DB
}

func NewVendorInvoiceRepository(db *gorm.DB) VendorInvoiceRepository {
	return &vendorInvoiceRepository{db: db}
}

func (r *vendorInvoiceRepository) Create(ctx context.Context, invoice *model.VendorInvoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *vendorInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.VendorInvoice, error) {
	var invoice model.VendorInvoice
	if err := GetDB(ctx, r.db).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *vendorInvoiceRepository) ExistsForTransaction(ctx context.Context, transactionID uuid.UUID) (bool, error) {
	var invoice model.VendorInvoice
	err := GetDB(ctx, r.db).First(&invoice, "transaction_id = ?", transactionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *vendorInvoiceRepository) List(ctx context.Context, filter VendorInvoiceListFilter) ([]model.VendorInvoice, int64, error) {
	var invoices []model.VendorInvoice
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if filter.VendorID != nil {
			q = q.Where("vendor_id = ?", *filter.VendorID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q
	}

	if err := apply(db.Model(&model.VendorInvoice{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := apply(db.Order("created_at DESC")).Offset(filter.Skip).Limit(filter.Limit).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

func (r *vendorInvoiceRepository) Update(ctx context.Context, invoice *model.VendorInvoice) error {
	return GetDB(ctx, r.db).Save(invoice).Error
}

func (r *vendorInvoiceRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID, status string) (int64, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.VendorInvoice{}).Where("vendor_id = ?", vendorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
