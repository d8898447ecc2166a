package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
)

// ReceivingRepository defines the interface for receiving data operations.
// Create persists the receiving together with its nested lines.
type ReceivingRepository interface {
	Create(ctx context.Context, receiving *entity.Receiving) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receiving, error)
	ListByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]entity.Receiving, error)
}

// ReceivingLineRepository defines the interface for receiving line data
// operations
type ReceivingLineRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReceivingLine, error)
	UpdateQualityStatus(ctx context.Context, id uuid.UUID, status enum.QualityStatus, notes *string) error
}
