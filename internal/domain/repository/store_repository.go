package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
)

// StoreRepository defines read access to the store master
type StoreRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	List(ctx context.Context) ([]entity.Store, error)
}
