package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/repository"
	"github.com/opticadev/optica-api/pkg/apperror"
	"github.com/opticadev/optica-api/pkg/pagination"
)

// CatalogService exposes read-only lookups over the product, supplier and
// store masters. Master maintenance is handled by a separate back-office
// system.
type CatalogService struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	storeRepo    repository.StoreRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	storeRepo repository.StoreRepository,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		storeRepo:    storeRepo,
	}
}

// ListProducts returns catalog products matching the filter
func (s *CatalogService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetProduct returns one product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListSuppliers returns suppliers, optionally only active ones
func (s *CatalogService) ListSuppliers(ctx context.Context, activeOnly bool) ([]entity.Supplier, error) {
	return s.supplierRepo.List(ctx, activeOnly)
}

// GetSupplier returns one supplier by ID
func (s *CatalogService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// ListStores returns all stores
func (s *CatalogService) ListStores(ctx context.Context) ([]entity.Store, error) {
	return s.storeRepo.List(ctx)
}

// GetStore returns one store by ID
func (s *CatalogService) GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	return store, nil
}
