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
)

// SerializedItemService mints and queries individually managed inventory
// units. Each physical unit is minted exactly once, against the purchase
// order line that delivered it.
type SerializedItemService struct {
	tx         repository.TxManager
	itemRepo   repository.SerializedItemRepository
	poLineRepo repository.PurchaseOrderLineRepository
	storeRepo  repository.StoreRepository
}

// NewSerializedItemService creates a new serialized item service
func NewSerializedItemService(
	tx repository.TxManager,
	itemRepo repository.SerializedItemRepository,
	poLineRepo repository.PurchaseOrderLineRepository,
	storeRepo repository.StoreRepository,
) *SerializedItemService {
	return &SerializedItemService{
		tx:         tx,
		itemRepo:   itemRepo,
		poLineRepo: poLineRepo,
		storeRepo:  storeRepo,
	}
}

// MintItemInput describes one unit to mint. SerialNumber may be left empty
// to have one generated; Status defaults to in_stock.
type MintItemInput struct {
	SerialNumber string                    `json:"serial_number"`
	Color        string                    `json:"color"`
	Size         *string                   `json:"size"`
	Status       enum.SerializedItemStatus `json:"status"`
	Location     *string                   `json:"location"`
}

// MintInput is a request to register received units of one purchase order
// line as serialized items
type MintInput struct {
	PurchaseOrderLineID uuid.UUID       `json:"purchase_order_line_id"`
	Items               []MintItemInput `json:"items"`
}

// Mint registers the given units as serialized items for a purchase order
// line. The number of units minted for a line can never exceed the quantity
// received on it, serial numbers must be unique system-wide, and every unit
// needs a color. Either all units are minted or none are.
func (s *SerializedItemService) Mint(ctx context.Context, input *MintInput) ([]entity.SerializedItem, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("At least one item is required")
	}

	seen := make(map[string]bool, len(input.Items))
	for i, item := range input.Items {
		if item.Color == "" {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Item %d: color is required", i+1))
		}
		if item.Status != "" && !item.Status.Valid() {
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("Item %d: unknown status %q", i+1, item.Status))
		}
		if item.SerialNumber != "" {
			if seen[item.SerialNumber] {
				return nil, apperror.NewBadRequestError(
					fmt.Sprintf("Duplicate serial number in request: %s", item.SerialNumber))
			}
			seen[item.SerialNumber] = true
		}
	}

	line, err := s.poLineRepo.GetByID(ctx, input.PurchaseOrderLineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, apperror.NewNotFoundError("Purchase order line")
	}
	if !line.Product.IndividuallyManaged() {
		return nil, apperror.NewBadRequestError(
			"Serialized items can only be minted for individually managed products")
	}

	store, err := s.storeRepo.GetByID(ctx, line.PurchaseOrder.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	var minted []entity.SerializedItem
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		already, err := s.itemRepo.CountByPurchaseOrderLine(ctx, line.ID)
		if err != nil {
			return err
		}
		remaining := int64(line.ReceivedQuantity) - already
		if int64(len(input.Items)) > remaining {
			return apperror.NewBadRequestError(fmt.Sprintf(
				"Cannot mint %d items: %d received, %d already registered",
				len(input.Items), line.ReceivedQuantity, already))
		}

		var provided []string
		for _, item := range input.Items {
			if item.SerialNumber != "" {
				provided = append(provided, item.SerialNumber)
			}
		}
		if len(provided) > 0 {
			taken, err := s.itemRepo.ExistingSerialNumbers(ctx, provided)
			if err != nil {
				return err
			}
			if len(taken) > 0 {
				return apperror.NewConflictError(
					"Serial numbers already registered: " + strings.Join(taken, ", "))
			}
		}

		lineID := line.ID
		items := make([]entity.SerializedItem, 0, len(input.Items))
		for i, item := range input.Items {
			serial := item.SerialNumber
			if serial == "" {
				serial = generateSerialNumber(line.Product.Code, store.Code, i)
			}
			status := item.Status
			if status == "" {
				status = enum.SerializedItemStatusInStock
			}
			items = append(items, entity.SerializedItem{
				SerialNumber:        serial,
				ProductID:           line.ProductID,
				StoreID:             store.ID,
				PurchaseOrderLineID: &lineID,
				Color:               item.Color,
				Size:                item.Size,
				Location:            item.Location,
				Status:              status,
				PurchasePrice:       line.UnitCost,
			})
		}

		if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
			return err
		}
		minted = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return minted, nil
}

// generateSerialNumber builds a serial like FR-001-SHJ-20260831143005-A3F9B1-001.
// The timestamp plus random segment keeps generated serials unique even when
// two mints for the same product land in the same second.
func generateSerialNumber(productCode, storeCode string, idx int) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s-%s-%03d",
		productCode, storeCode, time.Now().Format("20060102150405"), random, idx+1)
}

// MintedCount returns how many items were already minted for a purchase
// order line
func (s *SerializedItemService) MintedCount(ctx context.Context, lineID uuid.UUID) (int64, error) {
	line, err := s.poLineRepo.GetByID(ctx, lineID)
	if err != nil {
		return 0, err
	}
	if line == nil {
		return 0, apperror.NewNotFoundError("Purchase order line")
	}
	return s.itemRepo.CountByPurchaseOrderLine(ctx, lineID)
}

// ListItems returns serialized items matching the filter
func (s *SerializedItemService) ListItems(ctx context.Context, params *repository.SerializedItemFilterParams) (*pagination.PaginatedResult[entity.SerializedItem], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	items, total, err := s.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// GetBySerial looks a unit up by its serial number
func (s *SerializedItemService) GetBySerial(ctx context.Context, serialNumber string) (*entity.SerializedItem, error) {
	item, err := s.itemRepo.GetBySerialNumber(ctx, serialNumber)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Serialized item")
	}
	return item, nil
}

// StoreSummary reports per-status unit counts for one store
func (s *SerializedItemService) StoreSummary(ctx context.Context, storeID uuid.UUID) (map[enum.SerializedItemStatus]int64, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	return s.itemRepo.CountByStatusForStore(ctx, storeID)
}
