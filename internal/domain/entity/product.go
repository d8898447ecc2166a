package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Product represents a catalog product. Prices are stored in yen.
type Product struct {
	ID             uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Code           string               `gorm:"size:100;unique;not null" json:"code"`
	Name           string               `gorm:"size:255;not null" json:"name"`
	Brand          *string              `gorm:"size:255" json:"brand,omitempty"`
	Category       enum.ProductCategory `gorm:"size:50;not null;index" json:"category"`
	ManagementType enum.ManagementType  `gorm:"size:50;not null;default:'quantity'" json:"management_type"`
	CostPrice      int64                `gorm:"default:0" json:"cost_price"`
	RetailPrice    int64                `gorm:"default:0" json:"retail_price"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	DeletedAt      gorm.DeletedAt       `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IndividuallyManaged reports whether each physical unit of the product is
// tracked with its own serial number.
func (p *Product) IndividuallyManaged() bool {
	return p.ManagementType == enum.ManagementTypeIndividual
}
