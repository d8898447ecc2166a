package request

import "github.com/google/uuid"

// AdjustStockRequest represents a manual stock adjustment request
type AdjustStockRequest struct {
	StoreID   uuid.UUID `json:"store_id" binding:"required"`
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Delta     int       `json:"delta" binding:"required"`
	Reason    string    `json:"reason" binding:"required,max=255"`
}
