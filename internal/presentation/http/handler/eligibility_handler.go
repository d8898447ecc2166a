package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/opticadev/optica-api/internal/application/service"
	"github.com/opticadev/optica-api/internal/domain/repository"
	"github.com/opticadev/optica-api/internal/presentation/http/dto/request"
	"github.com/opticadev/optica-api/internal/presentation/http/dto/response"
)

// EligibilityHandler handles purchasable-order HTTP requests
type EligibilityHandler struct {
	eligibilityService *service.EligibilityService
}

// NewEligibilityHandler creates a new eligibility handler
func NewEligibilityHandler(eligibilityService *service.EligibilityService) *EligibilityHandler {
	return &EligibilityHandler{eligibilityService: eligibilityService}
}

// ListPurchasable handles listing orders with lines eligible for purchasing
func (h *EligibilityHandler) ListPurchasable(c *gin.Context) {
	var filter request.PurchasableOrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.OrderFilterParams{
		StoreID:      parseUUIDQuery(filter.StoreID),
		CustomerID:   parseUUIDQuery(filter.CustomerID),
		CustomerName: filter.CustomerName,
		StartDate:    parseDateQuery(filter.StartDate),
		EndDate:      parseDateQuery(filter.EndDate),
	}

	orders, err := h.eligibilityService.ListPurchasable(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchasable orders retrieved successfully", orders)
}
