package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"github.com/opticadev/optica-api/internal/domain/repository"
	"github.com/opticadev/optica-api/pkg/apperror"
)

// ReceivingService records deliveries against purchase orders and keeps the
// owning order's status and quantity-managed stock in step.
type ReceivingService struct {
	tx                repository.TxManager
	receivingRepo     repository.ReceivingRepository
	receivingLineRepo repository.ReceivingLineRepository
	poRepo            repository.PurchaseOrderRepository
	poLineRepo        repository.PurchaseOrderLineRepository
	itemRepo          repository.SerializedItemRepository
	stockService      *StockService
}

// NewReceivingService creates a new receiving service
func NewReceivingService(
	tx repository.TxManager,
	receivingRepo repository.ReceivingRepository,
	receivingLineRepo repository.ReceivingLineRepository,
	poRepo repository.PurchaseOrderRepository,
	poLineRepo repository.PurchaseOrderLineRepository,
	itemRepo repository.SerializedItemRepository,
	stockService *StockService,
) *ReceivingService {
	return &ReceivingService{
		tx:                tx,
		receivingRepo:     receivingRepo,
		receivingLineRepo: receivingLineRepo,
		poRepo:            poRepo,
		poLineRepo:        poLineRepo,
		itemRepo:          itemRepo,
		stockService:      stockService,
	}
}

// ReceivingLineInput is one line of a delivery being posted
type ReceivingLineInput struct {
	PurchaseOrderLineID uuid.UUID
	ReceivedQuantity    int
	QualityStatus       enum.QualityStatus
	Notes               *string
}

// CreateReceivingInput represents the create receiving input
type CreateReceivingInput struct {
	PurchaseOrderID uuid.UUID
	ActorID         uuid.UUID
	Notes           *string
	Lines           []ReceivingLineInput
}

// receivable is the set of statuses a purchase order may be in to accept goods
func receivable(status enum.PurchaseOrderStatus) bool {
	switch status {
	case enum.PurchaseOrderStatusSent,
		enum.PurchaseOrderStatusConfirmed,
		enum.PurchaseOrderStatusPartiallyDelivered:
		return true
	}
	return false
}

// CreateReceiving posts one delivery event. Cumulative received quantity per
// line may never exceed the ordered quantity; a zero quantity is an explicit
// short receipt. Quantity-managed products have their stock level increased
// in the same transaction. The purchase order's status is derived afterwards:
// delivered when every line is fully received, partially_delivered when
// anything has arrived, unchanged when nothing has arrived yet.
func (s *ReceivingService) CreateReceiving(ctx context.Context, input *CreateReceivingInput) (*entity.Receiving, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("At least one receiving line is required")
	}
	for _, line := range input.Lines {
		if line.ReceivedQuantity < 0 {
			return nil, apperror.NewBadRequestError("Received quantity cannot be negative")
		}
		if !line.QualityStatus.Valid() {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown quality status %q", line.QualityStatus))
		}
	}

	var created uuid.UUID
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		po, err := s.poRepo.GetWithLinesForUpdate(ctx, input.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return apperror.NewNotFoundError("Purchase order")
		}
		if !receivable(po.Status) {
			return apperror.NewBadRequestError(
				fmt.Sprintf("Purchase order %s cannot receive goods in status %s", po.Number, po.Status))
		}

		poLines := make(map[uuid.UUID]*entity.PurchaseOrderLine, len(po.Lines))
		for i := range po.Lines {
			poLines[po.Lines[i].ID] = &po.Lines[i]
		}

		// All checks before any write. Quantities are accumulated per line so
		// a request repeating the same line cannot slip past the cap.
		planned := make(map[uuid.UUID]int, len(input.Lines))
		for _, line := range input.Lines {
			poLine, ok := poLines[line.PurchaseOrderLineID]
			if !ok {
				return apperror.NewNotFoundError(
					fmt.Sprintf("Purchase order line %s", line.PurchaseOrderLineID))
			}
			planned[line.PurchaseOrderLineID] += line.ReceivedQuantity
			if poLine.ReceivedQuantity+planned[line.PurchaseOrderLineID] > poLine.Quantity {
				return apperror.NewBadRequestError(fmt.Sprintf(
					"Line %s would exceed ordered quantity: ordered %d, already received %d, receiving %d",
					poLine.ID, poLine.Quantity, poLine.ReceivedQuantity, planned[line.PurchaseOrderLineID]))
			}
		}

		receiving := &entity.Receiving{
			PurchaseOrderID: po.ID,
			ReceivedByID:    input.ActorID,
			ReceivedAt:      time.Now(),
			Status:          enum.ReceivingStatusCompleted,
			Notes:           input.Notes,
		}
		for _, line := range input.Lines {
			receiving.Lines = append(receiving.Lines, entity.ReceivingLine{
				PurchaseOrderLineID: line.PurchaseOrderLineID,
				ReceivedQuantity:    line.ReceivedQuantity,
				QualityStatus:       line.QualityStatus,
				Notes:               line.Notes,
			})
		}
		if err := s.receivingRepo.Create(ctx, receiving); err != nil {
			return err
		}

		for _, line := range input.Lines {
			if line.ReceivedQuantity == 0 {
				continue
			}
			poLine := poLines[line.PurchaseOrderLineID]
			if err := s.poLineRepo.AddReceivedQuantity(ctx, poLine.ID, line.ReceivedQuantity); err != nil {
				return err
			}
			poLine.ReceivedQuantity += line.ReceivedQuantity

			// Quantity-managed goods go straight onto the stock ledger;
			// individually managed ones wait for serial minting.
			if poLine.Product.ManagementType == enum.ManagementTypeQuantity {
				_, err := s.stockService.Adjust(ctx, &AdjustStockInput{
					StoreID:   po.StoreID,
					ProductID: poLine.ProductID,
					Delta:     line.ReceivedQuantity,
					Reason:    fmt.Sprintf("receiving for %s", po.Number),
					ActorID:   input.ActorID,
				})
				if err != nil {
					return err
				}
			}
		}

		allReceived := true
		anyReceived := false
		for i := range po.Lines {
			if po.Lines[i].ReceivedQuantity > 0 {
				anyReceived = true
			}
			if !po.Lines[i].FullyReceived() {
				allReceived = false
			}
		}

		po.Subtotal, po.Tax, po.Total = RecomputeTotals(po.Lines)
		switch {
		case allReceived:
			po.Status = enum.PurchaseOrderStatusDelivered
			if po.ActualDeliveryDate == nil {
				now := time.Now()
				po.ActualDeliveryDate = &now
			}
		case anyReceived:
			po.Status = enum.PurchaseOrderStatusPartiallyDelivered
		}
		po.UpdatedByID = &input.ActorID
		if err := s.poRepo.Update(ctx, po); err != nil {
			return err
		}

		created = receiving.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.receivingRepo.GetByID(ctx, created)
}

// PendingPurchaseOrders returns the purchase orders of a store that still
// await goods.
func (s *ReceivingService) PendingPurchaseOrders(ctx context.Context, storeID uuid.UUID) ([]entity.PurchaseOrder, error) {
	return s.poRepo.ListPendingForStore(ctx, storeID)
}

// ReceivingTargetLine is one purchase order line prepared for the receiving
// screen, with remaining and minted counts.
type ReceivingTargetLine struct {
	Line        entity.PurchaseOrderLine `json:"line"`
	Remaining   int                      `json:"remaining"`
	MintedCount int64                    `json:"minted_count"`
}

// ReceivingTarget is a purchase order prepared for receiving
type ReceivingTarget struct {
	PurchaseOrder entity.PurchaseOrder  `json:"purchase_order"`
	Lines         []ReceivingTargetLine `json:"lines"`
}

// GetReceivingTarget returns a purchase order with per-line remaining
// quantities and, for individually managed products, how many serialized
// items were already minted, so callers can reconcile receiving and minting.
func (s *ReceivingService) GetReceivingTarget(ctx context.Context, purchaseOrderID uuid.UUID) (*ReceivingTarget, error) {
	po, err := s.poRepo.GetWithLines(ctx, purchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	target := &ReceivingTarget{PurchaseOrder: *po}
	target.PurchaseOrder.Lines = nil
	for _, line := range po.Lines {
		targetLine := ReceivingTargetLine{
			Line:      line,
			Remaining: line.RemainingQuantity(),
		}
		if line.Product.IndividuallyManaged() {
			minted, err := s.itemRepo.CountByPurchaseOrderLine(ctx, line.ID)
			if err != nil {
				return nil, err
			}
			targetLine.MintedCount = minted
		}
		target.Lines = append(target.Lines, targetLine)
	}
	return target, nil
}

// ListReceivings returns the receiving history of a purchase order
func (s *ReceivingService) ListReceivings(ctx context.Context, purchaseOrderID uuid.UUID) ([]entity.Receiving, error) {
	po, err := s.poRepo.GetByID(ctx, purchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	return s.receivingRepo.ListByPurchaseOrder(ctx, purchaseOrderID)
}

// GetReceiving retrieves one receiving with its lines
func (s *ReceivingService) GetReceiving(ctx context.Context, id uuid.UUID) (*entity.Receiving, error) {
	receiving, err := s.receivingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receiving == nil {
		return nil, apperror.NewNotFoundError("Receiving")
	}
	return receiving, nil
}

// UpdateQualityStatus changes the inspection outcome of one receiving line.
// Quality never blocks acceptance; it feeds quality reporting.
func (s *ReceivingService) UpdateQualityStatus(ctx context.Context, lineID uuid.UUID, status enum.QualityStatus, notes *string) (*entity.ReceivingLine, error) {
	if !status.Valid() {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown quality status %q", status))
	}

	line, err := s.receivingLineRepo.GetByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, apperror.NewNotFoundError("Receiving line")
	}

	if err := s.receivingLineRepo.UpdateQualityStatus(ctx, lineID, status, notes); err != nil {
		return nil, err
	}
	return s.receivingLineRepo.GetByID(ctx, lineID)
}
