package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
	domainRepo "github.com/opticadev/optica-api/internal/domain/repository"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *orderRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var orders []entity.Order
	err := r.conn(ctx).
		Preload("Customer").
		Preload("Lines.Product").
		Where("id IN ?", ids).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListCandidates(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, error) {
	var orders []entity.Order

	query := r.conn(ctx).Model(&entity.Order{}).
		Where("orders.status IN ?", []enum.OrderStatus{
			enum.OrderStatusOrdered,
			enum.OrderStatusPrescriptionDone,
		})

	if params.StoreID != nil {
		query = query.Where("orders.store_id = ?", *params.StoreID)
	}

	if params.CustomerID != nil {
		query = query.Where("orders.customer_id = ?", *params.CustomerID)
	}

	if params.CustomerName != "" {
		query = query.Joins("JOIN customers ON customers.id = orders.customer_id").
			Where("customers.name ILIKE ? OR customers.name_kana ILIKE ?",
				"%"+params.CustomerName+"%", "%"+params.CustomerName+"%")
	}

	if params.StartDate != nil {
		query = query.Where("orders.order_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("orders.order_date <= ?", *params.EndDate)
	}

	err := query.
		Preload("Customer").
		Preload("Lines.Product").
		Order("orders.order_date ASC, orders.created_at ASC").
		Find(&orders).Error

	return orders, err
}

func (r *orderRepository) UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, status enum.OrderStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return r.conn(ctx).Model(&entity.Order{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}
