package request

import (
	"time"

	"github.com/google/uuid"
)

// CreatePurchaseOrderRequest represents a purchase order creation request
type CreatePurchaseOrderRequest struct {
	SupplierID           uuid.UUID   `json:"supplier_id" binding:"required"`
	StoreID              uuid.UUID   `json:"store_id" binding:"required"`
	OrderIDs             []uuid.UUID `json:"order_ids" binding:"required,min=1"`
	ExpectedDeliveryDate *time.Time  `json:"expected_delivery_date"`
	Notes                *string     `json:"notes" binding:"omitempty,max=1000"`
}

// UpdatePurchaseOrderStatusRequest represents a status transition request
type UpdatePurchaseOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PurchaseOrderFilterRequest represents purchase order filter parameters
type PurchaseOrderFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	StoreID    string `form:"store_id"`
	SupplierID string `form:"supplier_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// PurchasableOrderFilterRequest represents filter parameters for the
// purchasable order listing
type PurchasableOrderFilterRequest struct {
	StoreID      string `form:"store_id"`
	CustomerID   string `form:"customer_id"`
	CustomerName string `form:"customer_name"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
}
