package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	domainRepo "github.com/opticadev/optica-api/internal/domain/repository"
	"gorm.io/gorm"
)

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.conn(ctx).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) List(ctx context.Context, activeOnly bool) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier
	query := r.conn(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Find(&suppliers).Error
	return suppliers, err
}
