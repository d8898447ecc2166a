package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store represents one shop of the chain. The short code is embedded in
// purchase order numbers and generated serial numbers.
type Store struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Code      string         `gorm:"size:10;unique;not null" json:"code"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new store
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Store model
func (Store) TableName() string {
	return "stores"
}
