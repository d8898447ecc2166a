package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"github.com/opticadev/optica-api/internal/domain/repository"
)

// EligibilityService resolves which customer order lines can be put on a
// purchase order right now. It is read-only.
type EligibilityService struct {
	orderRepo  repository.OrderRepository
	poLineRepo repository.PurchaseOrderLineRepository
}

// NewEligibilityService creates a new eligibility service
func NewEligibilityService(
	orderRepo repository.OrderRepository,
	poLineRepo repository.PurchaseOrderLineRepository,
) *EligibilityService {
	return &EligibilityService{
		orderRepo:  orderRepo,
		poLineRepo: poLineRepo,
	}
}

// PurchasableOrder groups the eligible lines of one order
type PurchasableOrder struct {
	Order entity.Order       `json:"order"`
	Lines []entity.OrderLine `json:"lines"`
}

// purchaseRefs captures, per order line, whether any purchase order line
// references it and whether a non-cancelled one does.
type purchaseRefs struct {
	any          map[uuid.UUID]bool
	nonCancelled map[uuid.UUID]bool
}

// ListPurchasable returns the order lines currently eligible for purchasing,
// grouped by their parent order. Filters are optional.
func (s *EligibilityService) ListPurchasable(ctx context.Context, params *repository.OrderFilterParams) ([]PurchasableOrder, error) {
	if params == nil {
		params = &repository.OrderFilterParams{}
	}

	orders, err := s.orderRepo.ListCandidates(ctx, params)
	if err != nil {
		return nil, err
	}

	refs, err := s.loadRefs(ctx, orders)
	if err != nil {
		return nil, err
	}

	result := make([]PurchasableOrder, 0, len(orders))
	for _, order := range orders {
		eligible := eligibleLines(order, refs)
		if len(eligible) == 0 {
			continue
		}
		grouped := order
		grouped.Lines = nil
		result = append(result, PurchasableOrder{Order: grouped, Lines: eligible})
	}
	return result, nil
}

// EligibleLinesForOrders resolves eligibility for an explicit set of order
// ids within one store, as the purchase order aggregator requires. The second
// return value lists ids that do not resolve: unknown orders, orders of
// another store, and orders with no eligible line left.
func (s *EligibilityService) EligibleLinesForOrders(ctx context.Context, storeID uuid.UUID, orderIDs []uuid.UUID) (map[uuid.UUID][]entity.OrderLine, []uuid.UUID, error) {
	orders, err := s.orderRepo.GetByIDs(ctx, orderIDs)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[uuid.UUID]entity.Order, len(orders))
	for _, order := range orders {
		byID[order.ID] = order
	}

	refs, err := s.loadRefs(ctx, orders)
	if err != nil {
		return nil, nil, err
	}

	eligible := make(map[uuid.UUID][]entity.OrderLine, len(orderIDs))
	var invalid []uuid.UUID
	for _, id := range orderIDs {
		order, ok := byID[id]
		if !ok || order.StoreID != storeID {
			invalid = append(invalid, id)
			continue
		}
		lines := eligibleLines(order, refs)
		if len(lines) == 0 {
			invalid = append(invalid, id)
			continue
		}
		eligible[id] = lines
	}

	return eligible, invalid, nil
}

func (s *EligibilityService) loadRefs(ctx context.Context, orders []entity.Order) (purchaseRefs, error) {
	refs := purchaseRefs{
		any:          make(map[uuid.UUID]bool),
		nonCancelled: make(map[uuid.UUID]bool),
	}

	var lineIDs []uuid.UUID
	for _, order := range orders {
		for _, line := range order.Lines {
			lineIDs = append(lineIDs, line.ID)
		}
	}
	if len(lineIDs) == 0 {
		return refs, nil
	}

	rows, err := s.poLineRepo.ListReferences(ctx, lineIDs)
	if err != nil {
		return refs, err
	}
	for _, row := range rows {
		refs.any[row.OrderLineID] = true
		if row.PurchaseOrderStatus != enum.PurchaseOrderStatusCancelled {
			refs.nonCancelled[row.OrderLineID] = true
		}
	}
	return refs, nil
}

func eligibleLines(order entity.Order, refs purchaseRefs) []entity.OrderLine {
	var eligible []entity.OrderLine
	for _, line := range order.Lines {
		if lineEligible(order.Status, line, refs) {
			eligible = append(eligible, line)
		}
	}
	return eligible
}

// lineEligible is the purchasability rule. Lens lines become purchasable once
// the prescription is done, and a cancelled purchase order frees them again.
// Frame, contact and accessory lines are purchasable while the order is open,
// but any purchase reference, cancelled or not, excludes them; a frame line
// satisfied from existing stock (pre-selected serialized item) is never
// purchased.
func lineEligible(orderStatus enum.OrderStatus, line entity.OrderLine, refs purchaseRefs) bool {
	switch line.Product.Category {
	case enum.ProductCategoryLens:
		return orderStatus == enum.OrderStatusPrescriptionDone &&
			!refs.nonCancelled[line.ID]
	case enum.ProductCategoryFrame:
		return (orderStatus == enum.OrderStatusOrdered || orderStatus == enum.OrderStatusPrescriptionDone) &&
			!refs.any[line.ID] &&
			line.SerializedItemID == nil
	case enum.ProductCategoryContact, enum.ProductCategoryAccessory:
		return (orderStatus == enum.OrderStatusOrdered || orderStatus == enum.OrderStatusPrescriptionDone) &&
			!refs.any[line.ID]
	}
	return false
}
