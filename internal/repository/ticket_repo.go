package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketListFilter narrows ticket listings. CreatedBy non-nil restricts the
// result to tickets raised by that user.
type TicketListFilter struct {
	CreatedBy     *uuid.UUID
	TransactionID *uuid.UUID
	Status        string
	Priority      string
	Skip          int
	Limit         int
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	List(ctx context.Context, filter TicketListFilter) ([]model.Ticket, int64, error)
	Update(ctx context.Context, ticket *model.Ticket) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	return GetDB(ctx, r.db).Create(ticket).Error
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := GetDB(ctx, r.db).First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketListFilter) ([]model.Ticket, int64, error) {
	var tickets []model.Ticket
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if filter.CreatedBy != nil {
			q = q.Where("created_by_user_id = ?", *filter.CreatedBy)
		}
		if filter.TransactionID != nil {
			q = q.Where("transaction_id = ?", *filter.TransactionID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.Priority != "" {
			q = q.Where("priority = ?", filter.Priority)
		}
		return q
	}

	if err := apply(db.Model(&model.Ticket{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := apply(db.Order("created_at DESC")).Offset(filter.Skip).Limit(filter.Limit).Find(&tickets).Error; err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *model.Ticket) error {
	return GetDB(ctx, r.db).Save(ticket).Error
}

func (r *ticketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Ticket{}).Error
}
