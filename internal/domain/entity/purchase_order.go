package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PurchaseOrder aggregates customer order lines to be procured together from
// one supplier. Subtotal, tax and total are derived from the persisted lines
// and never taken from caller input. Amounts are in yen.
type PurchaseOrder struct {
	ID                   uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	StoreID              uuid.UUID                `gorm:"type:uuid;not null;index" json:"store_id"`
	SupplierID           uuid.UUID                `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Number               string                   `gorm:"size:100;unique;not null" json:"number"`
	OrderDate            time.Time                `gorm:"type:date;not null" json:"order_date"`
	ExpectedDeliveryDate *time.Time               `gorm:"type:date" json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *time.Time               `gorm:"type:date" json:"actual_delivery_date,omitempty"`
	Status               enum.PurchaseOrderStatus `gorm:"size:50;not null;default:'draft';index" json:"status"`
	Subtotal             int64                    `gorm:"default:0" json:"subtotal"`
	Tax                  int64                    `gorm:"default:0" json:"tax"`
	Total                int64                    `gorm:"default:0" json:"total"`
	Notes                *string                  `gorm:"type:text" json:"notes,omitempty"`
	SentAt               *time.Time               `json:"sent_at,omitempty"`
	CreatedByID          *uuid.UUID               `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	UpdatedByID          *uuid.UUID               `gorm:"type:uuid;column:updated_by" json:"updated_by,omitempty"`
	CreatedAt            time.Time                `json:"created_at"`
	UpdatedAt            time.Time                `json:"updated_at"`
	DeletedAt            gorm.DeletedAt           `gorm:"index" json:"-"`

	// Relationships
	Store    Store               `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Supplier Supplier            `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Lines    []PurchaseOrderLine `gorm:"foreignKey:PurchaseOrderID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase order
func (po *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderLine is one line of a purchase order, referencing the customer
// order line it procures. ReceivedQuantity is the running sum across all
// receivings for this line and never exceeds Quantity.
type PurchaseOrderLine struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseOrderID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	OrderLineID      *uuid.UUID     `gorm:"type:uuid;index" json:"order_line_id,omitempty"`
	ProductID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	PrescriptionID   *uuid.UUID     `gorm:"type:uuid" json:"prescription_id,omitempty"`
	Quantity         int            `gorm:"not null" json:"quantity"`
	UnitCost         int64          `gorm:"not null" json:"unit_cost"`
	TotalCost        int64          `gorm:"not null" json:"total_cost"`
	ReceivedQuantity int            `gorm:"default:0" json:"received_quantity"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	PurchaseOrder PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"-"`
	OrderLine     *OrderLine    `gorm:"foreignKey:OrderLineID" json:"order_line,omitempty"`
	Product       Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase order line
func (pol *PurchaseOrderLine) BeforeCreate(tx *gorm.DB) error {
	if pol.ID == uuid.Nil {
		pol.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrderLine model
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// FullyReceived reports whether the line's ordered quantity has arrived
func (pol *PurchaseOrderLine) FullyReceived() bool {
	return pol.ReceivedQuantity >= pol.Quantity
}

// RemainingQuantity returns how many units are still expected
func (pol *PurchaseOrderLine) RemainingQuantity() int {
	if remaining := pol.Quantity - pol.ReceivedQuantity; remaining > 0 {
		return remaining
	}
	return 0
}
