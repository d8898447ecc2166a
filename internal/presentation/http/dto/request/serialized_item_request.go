package request

import "github.com/google/uuid"

// MintItemRequest describes one unit to register. An empty serial number
// asks the server to generate one; an empty status means in_stock.
type MintItemRequest struct {
	SerialNumber string  `json:"serial_number" binding:"omitempty,max=100"`
	Color        string  `json:"color" binding:"required,max=100"`
	Size         *string `json:"size" binding:"omitempty,max=100"`
	Status       string  `json:"status" binding:"omitempty,max=50"`
	Location     *string `json:"location" binding:"omitempty,max=255"`
}

// MintSerializedItemsRequest represents a serialized item registration request
type MintSerializedItemsRequest struct {
	PurchaseOrderLineID uuid.UUID         `json:"purchase_order_line_id" binding:"required"`
	Items               []MintItemRequest `json:"items" binding:"required,min=1"`
}

// SerializedItemFilterRequest represents serialized item filter parameters
type SerializedItemFilterRequest struct {
	StoreID   string `form:"store_id"`
	ProductID string `form:"product_id"`
	Status    string `form:"status"`
	Search    string `form:"search"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
