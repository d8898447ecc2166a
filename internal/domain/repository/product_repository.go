package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"github.com/opticadev/optica-api/pkg/pagination"
)

// ProductFilterParams contains filtering parameters for product list queries
type ProductFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	Category       *enum.ProductCategory
	ManagementType *enum.ManagementType
}

// ProductRepository defines read access to the product catalog. Master
// maintenance happens outside this service.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
}
