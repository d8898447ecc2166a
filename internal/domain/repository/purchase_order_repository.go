package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"github.com/opticadev/optica-api/pkg/pagination"
)

// PurchaseOrderFilterParams contains filtering parameters for purchase order
// list queries
type PurchaseOrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.PurchaseOrderStatus
	StoreID    *uuid.UUID
	SupplierID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// PurchaseOrderRepository defines the interface for purchase order data
// operations
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	// GetWithLinesForUpdate loads the purchase order and its lines under a
	// row lock, serializing concurrent receivings against the same order.
	GetWithLinesForUpdate(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	List(ctx context.Context, params *PurchaseOrderFilterParams) ([]entity.PurchaseOrder, int64, error)
	// ListPendingForStore returns orders awaiting goods: sent, confirmed or
	// partially delivered.
	ListPendingForStore(ctx context.Context, storeID uuid.UUID) ([]entity.PurchaseOrder, error)
	Update(ctx context.Context, po *entity.PurchaseOrder) error
	UpdateTotals(ctx context.Context, id uuid.UUID, subtotal, tax, total int64) error
	// NextSequence returns the 1-based sequence for the next purchase order
	// of the store on the given day. It locks the store row for the duration
	// of the surrounding transaction so two concurrent creations for the
	// same store cannot claim the same sequence.
	NextSequence(ctx context.Context, storeID uuid.UUID, day time.Time) (int, error)
}

// OrderLinePurchaseRef is one existing purchase order line reference to a
// customer order line, carrying the owning purchase order's status so callers
// can distinguish cancelled references.
type OrderLinePurchaseRef struct {
	OrderLineID         uuid.UUID
	PurchaseOrderStatus enum.PurchaseOrderStatus
}

// PurchaseOrderLineRepository defines the interface for purchase order line
// data operations
type PurchaseOrderLineRepository interface {
	CreateBatch(ctx context.Context, lines []entity.PurchaseOrderLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrderLine, error)
	// ListReferences returns every purchase order line referencing one of
	// the given customer order lines, with the owning order's status.
	ListReferences(ctx context.Context, orderLineIDs []uuid.UUID) ([]OrderLinePurchaseRef, error)
	// AddReceivedQuantity atomically increments the cumulative received
	// quantity of a line.
	AddReceivedQuantity(ctx context.Context, id uuid.UUID, quantity int) error
}
