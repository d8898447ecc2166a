package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	domainRepo "github.com/opticadev/optica-api/internal/domain/repository"
	"gorm.io/gorm"
)

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *gorm.DB) domainRepo.StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var store entity.Store
	err := r.conn(ctx).First(&store, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &store, err
}

func (r *storeRepository) List(ctx context.Context) ([]entity.Store, error) {
	var stores []entity.Store
	err := r.conn(ctx).Order("code ASC").Find(&stores).Error
	return stores, err
}
