package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"github.com/opticadev/optica-api/internal/domain/repository"
	"github.com/opticadev/optica-api/pkg/apperror"
	"github.com/opticadev/optica-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// taxRate is the consumption tax applied to purchase order subtotals
var taxRate = decimal.RequireFromString("0.10")

// PurchaseOrderService aggregates eligible order lines into purchase orders
// and drives them through their lifecycle.
type PurchaseOrderService struct {
	tx           repository.TxManager
	poRepo       repository.PurchaseOrderRepository
	poLineRepo   repository.PurchaseOrderLineRepository
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	storeRepo    repository.StoreRepository
	eligibility  *EligibilityService
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(
	tx repository.TxManager,
	poRepo repository.PurchaseOrderRepository,
	poLineRepo repository.PurchaseOrderLineRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	storeRepo repository.StoreRepository,
	eligibility *EligibilityService,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		tx:           tx,
		poRepo:       poRepo,
		poLineRepo:   poLineRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		storeRepo:    storeRepo,
		eligibility:  eligibility,
	}
}

// CreatePurchaseOrderInput represents the create purchase order input
type CreatePurchaseOrderInput struct {
	SupplierID           uuid.UUID
	StoreID              uuid.UUID
	OrderIDs             []uuid.UUID
	ExpectedDeliveryDate *time.Time
	Notes                *string
	ActorID              uuid.UUID
}

// RecomputeTotals derives subtotal, tax and total from the persisted lines.
// Totals are never taken from caller input; the tax is 10% of the subtotal,
// floored to whole yen.
func RecomputeTotals(lines []entity.PurchaseOrderLine) (subtotal, tax, total int64) {
	for _, line := range lines {
		subtotal += line.TotalCost
	}
	tax = decimal.NewFromInt(subtotal).Mul(taxRate).Floor().IntPart()
	total = subtotal + tax
	return subtotal, tax, total
}

// FormatNumber builds the human-readable purchase order number
// PO<yy><mm><dd><storeCode><seq>, with the sequence zero-padded to 3 digits.
func FormatNumber(day time.Time, storeCode string, seq int) string {
	return fmt.Sprintf("PO%s%s%03d", day.Format("060102"), storeCode, seq)
}

// CreatePurchaseOrder aggregates the eligible lines of the given orders into
// one new draft purchase order. Number generation, line creation, totals and
// the source orders' status flip all run in a single transaction; nothing is
// left behind on failure.
func (s *PurchaseOrderService) CreatePurchaseOrder(ctx context.Context, input *CreatePurchaseOrderInput) (*entity.PurchaseOrder, error) {
	if len(input.OrderIDs) == 0 {
		return nil, apperror.NewBadRequestError("At least one order is required")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	store, err := s.storeRepo.GetByID(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	var created uuid.UUID
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		now := time.Now()
		// NextSequence locks the store row, so concurrent creations for the
		// same store serialize here; the eligibility check below then cannot
		// run twice against the same unclaimed lines.
		seq, err := s.poRepo.NextSequence(ctx, input.StoreID, now)
		if err != nil {
			return err
		}

		eligible, invalid, err := s.eligibility.EligibleLinesForOrders(ctx, input.StoreID, input.OrderIDs)
		if err != nil {
			return err
		}
		if len(invalid) > 0 {
			ids := make([]string, len(invalid))
			for i, id := range invalid {
				ids[i] = id.String()
			}
			return apperror.NewBadRequestError(
				"Orders not eligible for purchasing: " + strings.Join(ids, ", "))
		}
		if len(eligible) == 0 {
			return apperror.NewBadRequestError("No purchasable order lines found")
		}

		// Batch fetch products for cost prices
		var productIDs []uuid.UUID
		for _, lines := range eligible {
			for _, line := range lines {
				productIDs = append(productIDs, line.ProductID)
			}
		}
		products, err := s.productRepo.GetByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		productMap := make(map[uuid.UUID]*entity.Product, len(products))
		for i := range products {
			productMap[products[i].ID] = &products[i]
		}

		po := &entity.PurchaseOrder{
			StoreID:              input.StoreID,
			SupplierID:           input.SupplierID,
			Number:               FormatNumber(now, store.Code, seq),
			OrderDate:            now,
			ExpectedDeliveryDate: input.ExpectedDeliveryDate,
			Status:               enum.PurchaseOrderStatusDraft,
			Notes:                input.Notes,
			CreatedByID:          &input.ActorID,
		}
		if err := s.poRepo.Create(ctx, po); err != nil {
			return err
		}

		var lines []entity.PurchaseOrderLine
		for _, orderID := range input.OrderIDs {
			for _, orderLine := range eligible[orderID] {
				product, ok := productMap[orderLine.ProductID]
				if !ok {
					return apperror.NewNotFoundError(fmt.Sprintf("Product %s", orderLine.ProductID))
				}
				lineID := orderLine.ID
				lines = append(lines, entity.PurchaseOrderLine{
					PurchaseOrderID: po.ID,
					OrderLineID:     &lineID,
					ProductID:       orderLine.ProductID,
					PrescriptionID:  orderLine.PrescriptionID,
					Quantity:        orderLine.Quantity,
					UnitCost:        product.CostPrice,
					TotalCost:       product.CostPrice * int64(orderLine.Quantity),
				})
			}
		}
		if err := s.poLineRepo.CreateBatch(ctx, lines); err != nil {
			return err
		}

		subtotal, tax, total := RecomputeTotals(lines)
		if err := s.poRepo.UpdateTotals(ctx, po.ID, subtotal, tax, total); err != nil {
			return err
		}

		orderIDs := make([]uuid.UUID, 0, len(eligible))
		for id := range eligible {
			orderIDs = append(orderIDs, id)
		}
		if err := s.orderRepo.UpdateStatusBatch(ctx, orderIDs, enum.OrderStatusPurchaseOrdered); err != nil {
			return err
		}

		created = po.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.poRepo.GetWithLines(ctx, created)
}

// GetPurchaseOrder retrieves a purchase order with its lines
func (s *PurchaseOrderService) GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	return po, nil
}

// ListPurchaseOrders lists purchase orders with filtering
func (s *PurchaseOrderService) ListPurchaseOrders(ctx context.Context, params *repository.PurchaseOrderFilterParams) (*pagination.PaginatedResult[entity.PurchaseOrder], error) {
	orders, total, err := s.poRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// SendPurchaseOrder marks a draft purchase order as sent to its supplier
func (s *PurchaseOrderService) SendPurchaseOrder(ctx context.Context, id, actorID uuid.UUID) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	if po.Status != enum.PurchaseOrderStatusDraft {
		return nil, apperror.NewBadRequestError("Only draft purchase orders may be sent")
	}

	now := time.Now()
	po.Status = enum.PurchaseOrderStatusSent
	po.SentAt = &now
	po.UpdatedByID = &actorID
	if err := s.poRepo.Update(ctx, po); err != nil {
		return nil, err
	}
	return s.poRepo.GetWithLines(ctx, id)
}

// UpdateStatus moves a purchase order to the given status. Transitions are
// validated against the state machine; totals are recomputed from the
// persisted lines on every status write. Setting the status to delivered
// additionally moves every referenced customer order to lens_received.
func (s *PurchaseOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseOrderStatus, actorID uuid.UUID) (*entity.PurchaseOrder, error) {
	if !status.Valid() {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown status %q", status))
	}

	po, err := s.poRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	if !po.Status.CanTransitionTo(status) {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("Cannot change status from %s to %s", po.Status, status))
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		po.Status = status
		po.UpdatedByID = &actorID
		po.Subtotal, po.Tax, po.Total = RecomputeTotals(po.Lines)
		if status == enum.PurchaseOrderStatusDelivered && po.ActualDeliveryDate == nil {
			now := time.Now()
			po.ActualDeliveryDate = &now
		}
		if err := s.poRepo.Update(ctx, po); err != nil {
			return err
		}

		if status == enum.PurchaseOrderStatusDelivered {
			return s.cascadeDelivered(ctx, po)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.poRepo.GetWithLines(ctx, id)
}

// cascadeDelivered moves every distinct customer order referenced by the
// purchase order's lines to lens_received.
func (s *PurchaseOrderService) cascadeDelivered(ctx context.Context, po *entity.PurchaseOrder) error {
	seen := make(map[uuid.UUID]bool)
	var orderIDs []uuid.UUID
	for _, line := range po.Lines {
		if line.OrderLine == nil {
			continue
		}
		if !seen[line.OrderLine.OrderID] {
			seen[line.OrderLine.OrderID] = true
			orderIDs = append(orderIDs, line.OrderLine.OrderID)
		}
	}
	return s.orderRepo.UpdateStatusBatch(ctx, orderIDs, enum.OrderStatusLensReceived)
}
