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

// PurchaseOrderHandler handles purchase order HTTP requests
type PurchaseOrderHandler struct {
	poService *service.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(poService *service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{poService: poService}
}

// Create handles creating a purchase order from customer orders
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	actorID := GetActorID(c)
	if actorID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req request.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	po, err := h.poService.CreatePurchaseOrder(c.Request.Context(), &service.CreatePurchaseOrderInput{
		SupplierID:           req.SupplierID,
		StoreID:              req.StoreID,
		OrderIDs:             req.OrderIDs,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		Notes:                req.Notes,
		ActorID:              *actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase order created successfully", po)
}

// List handles listing purchase orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var filter request.PurchaseOrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.PurchaseOrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		StoreID:    parseUUIDQuery(filter.StoreID),
		SupplierID: parseUUIDQuery(filter.SupplierID),
		StartDate:  parseDateQuery(filter.StartDate),
		EndDate:    parseDateQuery(filter.EndDate),
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	if filter.Status != "" {
		status := enum.PurchaseOrderStatus(filter.Status)
		if status.Valid() {
			params.Status = &status
		}
	}

	result, err := h.poService.ListPurchaseOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchase orders retrieved successfully", result)
}

// Get handles retrieving one purchase order with its lines
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	po, err := h.poService.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order retrieved successfully", po)
}

// Send handles issuing a draft purchase order to its supplier
func (h *PurchaseOrderHandler) Send(c *gin.Context) {
	actorID := GetActorID(c)
	if actorID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	po, err := h.poService.SendPurchaseOrder(c.Request.Context(), id, *actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order sent successfully", po)
}

// UpdateStatus handles transitioning a purchase order's status
func (h *PurchaseOrderHandler) UpdateStatus(c *gin.Context) {
	actorID := GetActorID(c)
	if actorID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req request.UpdatePurchaseOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	po, err := h.poService.UpdateStatus(c.Request.Context(), id, enum.PurchaseOrderStatus(req.Status), *actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order status updated successfully", po)
}
