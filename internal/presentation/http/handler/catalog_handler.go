package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/application/service"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"github.com/opticadev/optica-api/internal/domain/repository"
	"github.com/opticadev/optica-api/internal/presentation/http/dto/request"
	"github.com/opticadev/optica-api/internal/presentation/http/dto/response"
	"github.com/opticadev/optica-api/pkg/pagination"
)

// CatalogHandler handles product, supplier and store master lookups
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts handles listing catalog products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
	}

	if filter.Category != "" {
		category := enum.ProductCategory(filter.Category)
		if category.Valid() {
			params.Category = &category
		}
	}

	if filter.ManagementType != "" {
		managementType := enum.ManagementType(filter.ManagementType)
		if managementType.Valid() {
			params.ManagementType = &managementType
		}
	}

	result, err := h.catalogService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// GetProduct handles retrieving one product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// ListSuppliers handles listing suppliers
func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	suppliers, err := h.catalogService.ListSuppliers(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Suppliers retrieved successfully", suppliers)
}

// GetSupplier handles retrieving one supplier
func (h *CatalogHandler) GetSupplier(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.catalogService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier retrieved successfully", supplier)
}

// ListStores handles listing stores
func (h *CatalogHandler) ListStores(c *gin.Context) {
	stores, err := h.catalogService.ListStores(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stores retrieved successfully", stores)
}

// GetStore handles retrieving one store
func (h *CatalogHandler) GetStore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return
	}

	store, err := h.catalogService.GetStore(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store retrieved successfully", store)
}
