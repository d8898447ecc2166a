package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
	domainRepo "github.com/opticadev/optica-api/internal/domain/repository"
	"gorm.io/gorm"
)

type receivingRepository struct {
	db *gorm.DB
}

// NewReceivingRepository creates a new receiving repository
func NewReceivingRepository(db *gorm.DB) domainRepo.ReceivingRepository {
	return &receivingRepository{db: db}
}

func (r *receivingRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *receivingRepository) Create(ctx context.Context, receiving *entity.Receiving) error {
	// Nested lines are persisted in the same insert.
	return r.conn(ctx).Create(receiving).Error
}

func (r *receivingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receiving, error) {
	var receiving entity.Receiving
	err := r.conn(ctx).
		Preload("Lines.PurchaseOrderLine.Product").
		First(&receiving, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receiving, err
}

func (r *receivingRepository) ListByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]entity.Receiving, error) {
	var receivings []entity.Receiving
	err := r.conn(ctx).
		Where("purchase_order_id = ?", purchaseOrderID).
		Preload("Lines").
		Order("received_at DESC").
		Find(&receivings).Error
	return receivings, err
}

type receivingLineRepository struct {
	db *gorm.DB
}

// NewReceivingLineRepository creates a new receiving line repository
func NewReceivingLineRepository(db *gorm.DB) domainRepo.ReceivingLineRepository {
	return &receivingLineRepository{db: db}
}

func (r *receivingLineRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *receivingLineRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReceivingLine, error) {
	var line entity.ReceivingLine
	err := r.conn(ctx).
		Preload("PurchaseOrderLine.Product").
		First(&line, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &line, err
}

func (r *receivingLineRepository) UpdateQualityStatus(ctx context.Context, id uuid.UUID, status enum.QualityStatus, notes *string) error {
	updates := map[string]interface{}{"quality_status": status}
	if notes != nil {
		updates["notes"] = *notes
	}
	return r.conn(ctx).Model(&entity.ReceivingLine{}).
		Where("id = ?", id).
		Updates(updates).Error
}
