package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
	domainRepo "github.com/opticadev/optica-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type purchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *gorm.DB) domainRepo.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *purchaseOrderRepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.conn(ctx).Create(po).Error
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.conn(ctx).
		Preload("Store").
		Preload("Supplier").
		First(&po, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &po, err
}

func (r *purchaseOrderRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.conn(ctx).
		Preload("Store").
		Preload("Supplier").
		Preload("Lines.Product").
		Preload("Lines.OrderLine").
		First(&po, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &po, err
}

func (r *purchaseOrderRepository) GetWithLinesForUpdate(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	// The lock is taken on the purchase order row only; lines are loaded in a
	// second query after the lock is held.
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&po, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	err = r.conn(ctx).
		Preload("Product").
		Preload("OrderLine").
		Where("purchase_order_id = ?", id).
		Find(&po.Lines).Error
	return &po, err
}

func (r *purchaseOrderRepository) List(ctx context.Context, params *domainRepo.PurchaseOrderFilterParams) ([]entity.PurchaseOrder, int64, error) {
	var orders []entity.PurchaseOrder
	var total int64

	query := r.conn(ctx).Model(&entity.PurchaseOrder{})

	if params.Search != "" {
		query = query.Where("number ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.StoreID != nil {
		query = query.Where("store_id = ?", *params.StoreID)
	}

	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}

	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Store").
		Preload("Supplier").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

func (r *purchaseOrderRepository) ListPendingForStore(ctx context.Context, storeID uuid.UUID) ([]entity.PurchaseOrder, error) {
	var orders []entity.PurchaseOrder
	err := r.conn(ctx).
		Where("store_id = ? AND status IN ?", storeID, []enum.PurchaseOrderStatus{
			enum.PurchaseOrderStatusSent,
			enum.PurchaseOrderStatusConfirmed,
			enum.PurchaseOrderStatusPartiallyDelivered,
		}).
		Preload("Supplier").
		Order("order_date ASC, number ASC").
		Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepository) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.conn(ctx).Omit("Store", "Supplier", "Lines").Save(po).Error
}

func (r *purchaseOrderRepository) UpdateTotals(ctx context.Context, id uuid.UUID, subtotal, tax, total int64) error {
	return r.conn(ctx).Model(&entity.PurchaseOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"subtotal": subtotal,
			"tax":      tax,
			"total":    total,
		}).Error
}

func (r *purchaseOrderRepository) NextSequence(ctx context.Context, storeID uuid.UUID, day time.Time) (int, error) {
	// Lock the store row so concurrent creations for the same store wait
	// here; the count below then cannot be observed twice.
	var store entity.Store
	if err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&store, "id = ?", storeID).Error; err != nil {
		return 0, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	err := r.conn(ctx).Model(&entity.PurchaseOrder{}).
		Where("store_id = ? AND created_at >= ? AND created_at < ?", storeID, dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count) + 1, nil
}

type purchaseOrderLineRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderLineRepository creates a new purchase order line repository
func NewPurchaseOrderLineRepository(db *gorm.DB) domainRepo.PurchaseOrderLineRepository {
	return &purchaseOrderLineRepository{db: db}
}

func (r *purchaseOrderLineRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *purchaseOrderLineRepository) CreateBatch(ctx context.Context, lines []entity.PurchaseOrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&lines).Error
}

func (r *purchaseOrderLineRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrderLine, error) {
	var line entity.PurchaseOrderLine
	err := r.conn(ctx).
		Preload("Product").
		Preload("PurchaseOrder").
		First(&line, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &line, err
}

func (r *purchaseOrderLineRepository) ListReferences(ctx context.Context, orderLineIDs []uuid.UUID) ([]domainRepo.OrderLinePurchaseRef, error) {
	if len(orderLineIDs) == 0 {
		return nil, nil
	}
	var refs []domainRepo.OrderLinePurchaseRef
	err := r.conn(ctx).Model(&entity.PurchaseOrderLine{}).
		Select("purchase_order_lines.order_line_id AS order_line_id, purchase_orders.status AS purchase_order_status").
		Joins("JOIN purchase_orders ON purchase_orders.id = purchase_order_lines.purchase_order_id").
		Where("purchase_order_lines.order_line_id IN ?", orderLineIDs).
		Scan(&refs).Error
	return refs, err
}

func (r *purchaseOrderLineRepository) AddReceivedQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.conn(ctx).Model(&entity.PurchaseOrderLine{}).
		Where("id = ?", id).
		Update("received_quantity", gorm.Expr("received_quantity + ?", quantity)).Error
}
