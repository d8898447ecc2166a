package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/application/service"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"github.com/opticadev/optica-api/internal/presentation/http/dto/request"
	"github.com/opticadev/optica-api/internal/presentation/http/dto/response"
)

// ReceivingHandler handles receiving HTTP requests
type ReceivingHandler struct {
	receivingService *service.ReceivingService
}

// NewReceivingHandler creates a new receiving handler
func NewReceivingHandler(receivingService *service.ReceivingService) *ReceivingHandler {
	return &ReceivingHandler{receivingService: receivingService}
}

// Create handles posting a delivery against a purchase order
func (h *ReceivingHandler) Create(c *gin.Context) {
	actorID := GetActorID(c)
	if actorID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req request.CreateReceivingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateReceivingInput{
		PurchaseOrderID: req.PurchaseOrderID,
		ActorID:         *actorID,
		Notes:           req.Notes,
	}
	for _, line := range req.Lines {
		qualityStatus := enum.QualityStatus(line.QualityStatus)
		if line.QualityStatus == "" {
			qualityStatus = enum.QualityStatusPending
		}
		input.Lines = append(input.Lines, service.ReceivingLineInput{
			PurchaseOrderLineID: line.PurchaseOrderLineID,
			ReceivedQuantity:    line.ReceivedQuantity,
			QualityStatus:       qualityStatus,
			Notes:               line.Notes,
		})
	}

	receiving, err := h.receivingService.CreateReceiving(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receiving posted successfully", receiving)
}

// Pending handles listing purchase orders awaiting goods for the actor's store
func (h *ReceivingHandler) Pending(c *gin.Context) {
	storeID := parseUUIDQuery(c.Query("store_id"))
	if storeID == nil {
		storeID = GetActorStoreID(c)
	}
	if storeID == nil {
		response.BadRequest(c, "store_id is required")
		return
	}

	orders, err := h.receivingService.PendingPurchaseOrders(c.Request.Context(), *storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pending purchase orders retrieved successfully", orders)
}

// Target handles preparing a purchase order for the receiving screen
func (h *ReceivingHandler) Target(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	target, err := h.receivingService.GetReceivingTarget(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receiving target retrieved successfully", target)
}

// History handles listing the receivings of a purchase order
func (h *ReceivingHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	receivings, err := h.receivingService.ListReceivings(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receivings retrieved successfully", receivings)
}

// Get handles retrieving one receiving with its lines
func (h *ReceivingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receiving ID")
		return
	}

	receiving, err := h.receivingService.GetReceiving(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receiving retrieved successfully", receiving)
}

// UpdateQualityStatus handles recording a quality inspection result
func (h *ReceivingHandler) UpdateQualityStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receiving line ID")
		return
	}

	var req request.UpdateQualityStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	line, err := h.receivingService.UpdateQualityStatus(c.Request.Context(), id, enum.QualityStatus(req.QualityStatus), req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quality status updated successfully", line)
}
