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

// SerializedItemHandler handles serialized item HTTP requests
type SerializedItemHandler struct {
	itemService *service.SerializedItemService
}

// NewSerializedItemHandler creates a new serialized item handler
func NewSerializedItemHandler(itemService *service.SerializedItemService) *SerializedItemHandler {
	return &SerializedItemHandler{itemService: itemService}
}

// Mint handles registering received units as serialized items
func (h *SerializedItemHandler) Mint(c *gin.Context) {
	actorID := GetActorID(c)
	if actorID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req request.MintSerializedItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.MintInput{PurchaseOrderLineID: req.PurchaseOrderLineID}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.MintItemInput{
			SerialNumber: item.SerialNumber,
			Color:        item.Color,
			Size:         item.Size,
			Status:       enum.SerializedItemStatus(item.Status),
			Location:     item.Location,
		})
	}

	items, err := h.itemService.Mint(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Serialized items registered successfully", items)
}

// List handles listing serialized items
func (h *SerializedItemHandler) List(c *gin.Context) {
	var filter request.SerializedItemFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SerializedItemFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		StoreID:   parseUUIDQuery(filter.StoreID),
		ProductID: parseUUIDQuery(filter.ProductID),
		Search:    filter.Search,
	}

	if filter.Status != "" {
		status := enum.SerializedItemStatus(filter.Status)
		if status.Valid() {
			params.Status = &status
		}
	}

	result, err := h.itemService.ListItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Serialized items retrieved successfully", result)
}

// GetBySerial handles looking a unit up by serial number
func (h *SerializedItemHandler) GetBySerial(c *gin.Context) {
	serial := c.Param("serial")
	if serial == "" {
		response.BadRequest(c, "Serial number is required")
		return
	}

	item, err := h.itemService.GetBySerial(c.Request.Context(), serial)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Serialized item retrieved successfully", item)
}

// MintedCount handles reporting how many units a purchase order line has minted
func (h *SerializedItemHandler) MintedCount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order line ID")
		return
	}

	count, err := h.itemService.MintedCount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Minted count retrieved successfully", gin.H{"minted_count": count})
}

// StoreSummary handles reporting per-status unit counts for a store
func (h *SerializedItemHandler) StoreSummary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return
	}

	summary, err := h.itemService.StoreSummary(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Serialized item summary retrieved successfully", summary)
}
