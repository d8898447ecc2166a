package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/application/service"
	"github.com/opticadev/optica-api/internal/presentation/http/dto/request"
	"github.com/opticadev/optica-api/internal/presentation/http/dto/response"
	"github.com/opticadev/optica-api/pkg/pagination"
)

// StockHandler handles stock level HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// Adjust handles a manual stock adjustment
func (h *StockHandler) Adjust(c *gin.Context) {
	actorID := GetActorID(c)
	if actorID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	level, err := h.stockService.Adjust(c.Request.Context(), &service.AdjustStockInput{
		StoreID:   req.StoreID,
		ProductID: req.ProductID,
		Delta:     req.Delta,
		Reason:    req.Reason,
		ActorID:   *actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", level)
}

// Levels handles listing a store's stock levels
func (h *StockHandler) Levels(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return
	}

	levels, err := h.stockService.Levels(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock levels retrieved successfully", levels)
}

// Alerts handles listing a store's stock levels at or below safety stock
func (h *StockHandler) Alerts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return
	}

	levels, err := h.stockService.Alerts(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock alerts retrieved successfully", levels)
}

// Suggestions handles proposing replenishment for a store's low stock
func (h *StockHandler) Suggestions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return
	}

	suggestions, err := h.stockService.SuggestReplenishment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Replenishment suggestions retrieved successfully", suggestions)
}

// AdjustmentHistory handles listing the audit trail of a stock level
func (h *StockHandler) AdjustmentHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stock level ID")
		return
	}

	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.stockService.AdjustmentHistory(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock adjustments retrieved successfully", result)
}
