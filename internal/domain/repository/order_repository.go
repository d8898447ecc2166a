package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
)

// OrderFilterParams contains filtering parameters for purchasable-order
// queries. Nil/empty fields are not applied.
type OrderFilterParams struct {
	StoreID      *uuid.UUID
	CustomerID   *uuid.UUID
	CustomerName string
	StartDate    *time.Time
	EndDate      *time.Time
}

// OrderRepository defines read access to customer orders plus the status
// transitions driven by the purchasing core.
type OrderRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Order, error)
	// ListCandidates returns orders whose status still allows purchasing
	// (ordered or prescription_done), with lines and products preloaded.
	ListCandidates(ctx context.Context, params *OrderFilterParams) ([]entity.Order, error)
	UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, status enum.OrderStatus) error
}
