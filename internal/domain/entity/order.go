package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a customer order placed at a store
type Order struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	StoreID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"store_id"`
	CustomerID uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	OrderDate  time.Time        `gorm:"type:date;not null" json:"order_date"`
	Status     enum.OrderStatus `gorm:"size:50;not null;index" json:"status"`
	Notes      *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	DeletedAt  gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Store    Store       `gorm:"foreignKey:StoreID" json:"-"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderLine represents one product line of a customer order. A frame line
// satisfied from existing stock carries the chosen SerializedItemID; such a
// line is never purchased again.
type OrderLine struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	PrescriptionID   *uuid.UUID     `gorm:"type:uuid" json:"prescription_id,omitempty"`
	SerializedItemID *uuid.UUID     `gorm:"type:uuid" json:"serialized_item_id,omitempty"`
	Quantity         int            `gorm:"not null" json:"quantity"`
	UnitPrice        int64          `gorm:"not null" json:"unit_price"`
	TotalPrice       int64          `gorm:"not null" json:"total_price"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order line
func (ol *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if ol.ID == uuid.Nil {
		ol.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}
