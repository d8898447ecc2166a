package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Receiving records one delivery event against a purchase order. A purchase
// order may have several receivings when goods arrive in parts.
type Receiving struct {
	ID              uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseOrderID uuid.UUID            `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ReceivedByID    uuid.UUID            `gorm:"type:uuid;not null;column:received_by" json:"received_by"`
	ReceivedAt      time.Time            `gorm:"not null" json:"received_at"`
	Status          enum.ReceivingStatus `gorm:"size:50;not null;default:'completed'" json:"status"`
	Notes           *string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	DeletedAt       gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	PurchaseOrder PurchaseOrder   `gorm:"foreignKey:PurchaseOrderID" json:"-"`
	Lines         []ReceivingLine `gorm:"foreignKey:ReceivingID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receiving
func (r *Receiving) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receiving model
func (Receiving) TableName() string {
	return "receivings"
}

// ReceivingLine records the received quantity and inspection outcome for one
// purchase order line within a receiving. A zero quantity is a valid explicit
// short receipt.
type ReceivingLine struct {
	ID                  uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ReceivingID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"receiving_id"`
	PurchaseOrderLineID uuid.UUID          `gorm:"type:uuid;not null;index" json:"purchase_order_line_id"`
	ReceivedQuantity    int                `gorm:"not null" json:"received_quantity"`
	QualityStatus       enum.QualityStatus `gorm:"size:50;not null;default:'pending'" json:"quality_status"`
	Notes               *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	DeletedAt           gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Receiving         Receiving         `gorm:"foreignKey:ReceivingID" json:"-"`
	PurchaseOrderLine PurchaseOrderLine `gorm:"foreignKey:PurchaseOrderLineID" json:"purchase_order_line,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receiving line
func (rl *ReceivingLine) BeforeCreate(tx *gorm.DB) error {
	if rl.ID == uuid.Nil {
		rl.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceivingLine model
func (ReceivingLine) TableName() string {
	return "receiving_lines"
}
