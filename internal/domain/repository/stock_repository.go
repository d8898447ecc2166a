package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/pkg/pagination"
)

// StockLevelRepository defines the interface for stock level data operations
type StockLevelRepository interface {
	Create(ctx context.Context, level *entity.StockLevel) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockLevel, error)
	GetByStoreAndProduct(ctx context.Context, storeID, productID uuid.UUID) (*entity.StockLevel, error)
	// GetByStoreAndProductForUpdate locks the stock level row for the
	// duration of the surrounding transaction so concurrent adjustments
	// cannot lose updates.
	GetByStoreAndProductForUpdate(ctx context.Context, storeID, productID uuid.UUID) (*entity.StockLevel, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]entity.StockLevel, error)
	// ListBelowSafety returns levels with current quantity at or under the
	// safety stock threshold.
	ListBelowSafety(ctx context.Context, storeID uuid.UUID) ([]entity.StockLevel, error)
}

// StockAdjustmentRepository defines the interface for the append-only stock
// audit trail. There is deliberately no update or delete.
type StockAdjustmentRepository interface {
	Create(ctx context.Context, adjustment *entity.StockAdjustment) error
	ListByStockLevel(ctx context.Context, stockLevelID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockAdjustment, int64, error)
}
