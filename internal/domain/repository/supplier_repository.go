package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
)

// SupplierRepository defines read access to the supplier master
type SupplierRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	List(ctx context.Context, activeOnly bool) ([]entity.Supplier, error)
}
