package request

import "github.com/google/uuid"

// ReceivingLineRequest is one line of a delivery being posted
type ReceivingLineRequest struct {
	PurchaseOrderLineID uuid.UUID `json:"purchase_order_line_id" binding:"required"`
	ReceivedQuantity    int       `json:"received_quantity" binding:"min=0"`
	QualityStatus       string    `json:"quality_status"`
	Notes               *string   `json:"notes" binding:"omitempty,max=1000"`
}

// CreateReceivingRequest represents a receiving creation request
type CreateReceivingRequest struct {
	PurchaseOrderID uuid.UUID              `json:"purchase_order_id" binding:"required"`
	Notes           *string                `json:"notes" binding:"omitempty,max=1000"`
	Lines           []ReceivingLineRequest `json:"lines" binding:"required,min=1"`
}

// UpdateQualityStatusRequest represents a quality inspection result
type UpdateQualityStatusRequest struct {
	QualityStatus string  `json:"quality_status" binding:"required"`
	Notes         *string `json:"notes" binding:"omitempty,max=1000"`
}
