package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockLevel tracks the on-hand count of a quantity-managed product at one
// store. CurrentQuantity never goes negative.
type StockLevel struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StoreID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_stock_store_product" json:"store_id"`
	ProductID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_stock_store_product" json:"product_id"`
	CurrentQuantity  int            `gorm:"not null;default:0" json:"current_quantity"`
	SafetyStock      int            `gorm:"not null;default:0" json:"safety_stock"`
	MaxStock         int            `gorm:"not null;default:0" json:"max_stock"`
	AverageUsage     float64        `gorm:"default:0" json:"average_usage"`
	AutoOrderEnabled bool           `gorm:"default:false" json:"auto_order_enabled"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Store       Store             `gorm:"foreignKey:StoreID" json:"-"`
	Product     Product           `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Adjustments []StockAdjustment `gorm:"foreignKey:StockLevelID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock level
func (sl *StockLevel) BeforeCreate(tx *gorm.DB) error {
	if sl.ID == uuid.Nil {
		sl.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockLevel model
func (StockLevel) TableName() string {
	return "stock_levels"
}

// BelowSafetyStock reports whether the level is at or under its threshold
func (sl *StockLevel) BelowSafetyStock() bool {
	return sl.CurrentQuantity <= sl.SafetyStock
}

// StockAdjustment is the immutable audit row appended on every stock level
// mutation. Rows are only ever inserted, never updated or deleted.
type StockAdjustment struct {
	ID             uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	StockLevelID   uuid.UUID                `gorm:"type:uuid;not null;index" json:"stock_level_id"`
	QuantityBefore int                      `gorm:"not null" json:"quantity_before"`
	QuantityAfter  int                      `gorm:"not null" json:"quantity_after"`
	Delta          int                      `gorm:"not null" json:"delta"`
	Type           enum.StockAdjustmentType `gorm:"size:50;not null" json:"type"`
	Reason         string                   `gorm:"size:255;not null" json:"reason"`
	AdjustedByID   uuid.UUID                `gorm:"type:uuid;not null;column:adjusted_by" json:"adjusted_by"`
	CreatedAt      time.Time                `json:"created_at"`

	// Relationships
	StockLevel StockLevel `gorm:"foreignKey:StockLevelID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock adjustment
func (sa *StockAdjustment) BeforeCreate(tx *gorm.DB) error {
	if sa.ID == uuid.Nil {
		sa.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockAdjustment model
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}
