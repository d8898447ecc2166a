package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"github.com/opticadev/optica-api/pkg/pagination"
)

// SerializedItemFilterParams contains filtering parameters for serialized
// item list queries
type SerializedItemFilterParams struct {
	Pagination *pagination.PaginationParams
	StoreID    *uuid.UUID
	ProductID  *uuid.UUID
	Status     *enum.SerializedItemStatus
	Search     string
}

// SerializedItemRepository defines the interface for serialized item data
// operations
type SerializedItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.SerializedItem) error
	GetBySerialNumber(ctx context.Context, serialNumber string) (*entity.SerializedItem, error)
	List(ctx context.Context, params *SerializedItemFilterParams) ([]entity.SerializedItem, int64, error)
	// CountByPurchaseOrderLine returns how many items were already minted
	// for the given purchase order line (the pre-mint check).
	CountByPurchaseOrderLine(ctx context.Context, lineID uuid.UUID) (int64, error)
	// ExistingSerialNumbers returns which of the given serial numbers are
	// already taken.
	ExistingSerialNumbers(ctx context.Context, serials []string) ([]string, error)
	CountByStatusForStore(ctx context.Context, storeID uuid.UUID) (map[enum.SerializedItemStatus]int64, error)
}
