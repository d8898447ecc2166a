package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
	domainRepo "github.com/opticadev/optica-api/internal/domain/repository"
	"gorm.io/gorm"
)

type serializedItemRepository struct {
	db *gorm.DB
}

// NewSerializedItemRepository creates a new serialized item repository
func NewSerializedItemRepository(db *gorm.DB) domainRepo.SerializedItemRepository {
	return &serializedItemRepository{db: db}
}

func (r *serializedItemRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *serializedItemRepository) CreateBatch(ctx context.Context, items []entity.SerializedItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&items).Error
}

func (r *serializedItemRepository) GetBySerialNumber(ctx context.Context, serialNumber string) (*entity.SerializedItem, error) {
	var item entity.SerializedItem
	err := r.conn(ctx).
		Preload("Product").
		First(&item, "serial_number = ?", serialNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *serializedItemRepository) List(ctx context.Context, params *domainRepo.SerializedItemFilterParams) ([]entity.SerializedItem, int64, error) {
	var items []entity.SerializedItem
	var total int64

	query := r.conn(ctx).Model(&entity.SerializedItem{})

	if params.StoreID != nil {
		query = query.Where("store_id = ?", *params.StoreID)
	}

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Search != "" {
		query = query.Where("serial_number ILIKE ?", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error

	return items, total, err
}

func (r *serializedItemRepository) CountByPurchaseOrderLine(ctx context.Context, lineID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&entity.SerializedItem{}).
		Where("purchase_order_line_id = ?", lineID).
		Count(&count).Error
	return count, err
}

func (r *serializedItemRepository) ExistingSerialNumbers(ctx context.Context, serials []string) ([]string, error) {
	if len(serials) == 0 {
		return nil, nil
	}
	var existing []string
	err := r.conn(ctx).Model(&entity.SerializedItem{}).
		Where("serial_number IN ?", serials).
		Pluck("serial_number", &existing).Error
	return existing, err
}

func (r *serializedItemRepository) CountByStatusForStore(ctx context.Context, storeID uuid.UUID) (map[enum.SerializedItemStatus]int64, error) {
	type statusCount struct {
		Status enum.SerializedItemStatus
		Count  int64
	}
	var rows []statusCount
	err := r.conn(ctx).Model(&entity.SerializedItem{}).
		Select("status, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enum.SerializedItemStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
