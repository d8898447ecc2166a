package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"gorm.io/gorm"
)

// SerializedItem is one uniquely identified physical unit of an individually
// managed product, minted exactly once during receiving. The serial number is
// unique across the whole system. PurchaseOrderLineID links the unit back to
// the line that produced it so minting can be capped per line.
type SerializedItem struct {
	ID                  uuid.UUID                 `gorm:"type:uuid;primary_key" json:"id"`
	SerialNumber        string                    `gorm:"size:100;unique;not null" json:"serial_number"`
	ProductID           uuid.UUID                 `gorm:"type:uuid;not null;index" json:"product_id"`
	StoreID             uuid.UUID                 `gorm:"type:uuid;not null;index" json:"store_id"`
	PurchaseOrderLineID *uuid.UUID                `gorm:"type:uuid;index" json:"purchase_order_line_id,omitempty"`
	Color               string                    `gorm:"size:100;not null" json:"color"`
	Size                *string                   `gorm:"size:100" json:"size,omitempty"`
	Status              enum.SerializedItemStatus `gorm:"size:50;not null;default:'in_stock';index" json:"status"`
	Location            *string                   `gorm:"size:255" json:"location,omitempty"`
	PurchasePrice       int64                     `gorm:"default:0" json:"purchase_price"`
	CreatedAt           time.Time                 `json:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at"`
	DeletedAt           gorm.DeletedAt            `gorm:"index" json:"-"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Store   Store   `gorm:"foreignKey:StoreID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new serialized item
func (si *SerializedItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SerializedItem model
func (SerializedItem) TableName() string {
	return "serialized_items"
}
