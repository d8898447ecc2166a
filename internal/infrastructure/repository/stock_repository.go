package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	domainRepo "github.com/opticadev/optica-api/internal/domain/repository"
	"github.com/opticadev/optica-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type stockLevelRepository struct {
	db *gorm.DB
}

// NewStockLevelRepository creates a new stock level repository
func NewStockLevelRepository(db *gorm.DB) domainRepo.StockLevelRepository {
	return &stockLevelRepository{db: db}
}

func (r *stockLevelRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *stockLevelRepository) Create(ctx context.Context, level *entity.StockLevel) error {
	return r.conn(ctx).Create(level).Error
}

func (r *stockLevelRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockLevel, error) {
	var level entity.StockLevel
	err := r.conn(ctx).
		Preload("Product").
		First(&level, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &level, err
}

func (r *stockLevelRepository) GetByStoreAndProduct(ctx context.Context, storeID, productID uuid.UUID) (*entity.StockLevel, error) {
	var level entity.StockLevel
	err := r.conn(ctx).
		First(&level, "store_id = ? AND product_id = ?", storeID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &level, err
}

func (r *stockLevelRepository) GetByStoreAndProductForUpdate(ctx context.Context, storeID, productID uuid.UUID) (*entity.StockLevel, error) {
	var level entity.StockLevel
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&level, "store_id = ? AND product_id = ?", storeID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &level, err
}

func (r *stockLevelRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.conn(ctx).Model(&entity.StockLevel{}).
		Where("id = ?", id).
		Update("current_quantity", quantity).Error
}

func (r *stockLevelRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]entity.StockLevel, error) {
	var levels []entity.StockLevel
	err := r.conn(ctx).
		Where("store_id = ?", storeID).
		Preload("Product").
		Order("created_at ASC").
		Find(&levels).Error
	return levels, err
}

func (r *stockLevelRepository) ListBelowSafety(ctx context.Context, storeID uuid.UUID) ([]entity.StockLevel, error) {
	var levels []entity.StockLevel
	err := r.conn(ctx).
		Where("store_id = ? AND current_quantity <= safety_stock", storeID).
		Preload("Product").
		Find(&levels).Error
	return levels, err
}

type stockAdjustmentRepository struct {
	db *gorm.DB
}

// NewStockAdjustmentRepository creates a new stock adjustment repository
func NewStockAdjustmentRepository(db *gorm.DB) domainRepo.StockAdjustmentRepository {
	return &stockAdjustmentRepository{db: db}
}

func (r *stockAdjustmentRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *stockAdjustmentRepository) Create(ctx context.Context, adjustment *entity.StockAdjustment) error {
	return r.conn(ctx).Create(adjustment).Error
}

func (r *stockAdjustmentRepository) ListByStockLevel(ctx context.Context, stockLevelID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockAdjustment, int64, error) {
	var adjustments []entity.StockAdjustment
	var total int64

	query := r.conn(ctx).Model(&entity.StockAdjustment{}).
		Where("stock_level_id = ?", stockLevelID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&adjustments).Error

	return adjustments, total, err
}
