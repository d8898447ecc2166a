package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"github.com/opticadev/optica-api/internal/domain/repository"
	"github.com/opticadev/optica-api/pkg/apperror"
	"github.com/opticadev/optica-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// StockService maintains quantity-managed stock levels with an append-only
// audit trail, and proposes replenishment.
type StockService struct {
	tx             repository.TxManager
	levelRepo      repository.StockLevelRepository
	adjustmentRepo repository.StockAdjustmentRepository
	productRepo    repository.ProductRepository
	storeRepo      repository.StoreRepository
}

// NewStockService creates a new stock service
func NewStockService(
	tx repository.TxManager,
	levelRepo repository.StockLevelRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *StockService {
	return &StockService{
		tx:             tx,
		levelRepo:      levelRepo,
		adjustmentRepo: adjustmentRepo,
		productRepo:    productRepo,
		storeRepo:      storeRepo,
	}
}

// AdjustStockInput represents one stock adjustment request
type AdjustStockInput struct {
	StoreID   uuid.UUID
	ProductID uuid.UUID
	Delta     int
	Reason    string
	ActorID   uuid.UUID
}

// Adjust applies a signed delta to the stock level of a product at a store.
// The resulting quantity must stay non-negative; on success exactly one
// immutable adjustment record is appended in the same transaction. The stock
// level row is locked for the duration so concurrent adjustments cannot lose
// updates.
func (s *StockService) Adjust(ctx context.Context, input *AdjustStockInput) (*entity.StockLevel, error) {
	if input.Delta == 0 {
		return nil, apperror.NewBadRequestError("Delta must not be zero")
	}
	if input.Reason == "" {
		return nil, apperror.NewBadRequestError("Reason is required")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if product.IndividuallyManaged() {
		return nil, apperror.NewBadRequestError(
			"Individually managed products are tracked per serialized item, not by stock level")
	}

	var levelID uuid.UUID
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		level, err := s.levelRepo.GetByStoreAndProductForUpdate(ctx, input.StoreID, input.ProductID)
		if err != nil {
			return err
		}
		if level == nil {
			level = &entity.StockLevel{
				StoreID:   input.StoreID,
				ProductID: input.ProductID,
			}
			if err := s.levelRepo.Create(ctx, level); err != nil {
				return err
			}
		}

		newQuantity := level.CurrentQuantity + input.Delta
		if newQuantity < 0 {
			return apperror.NewBadRequestError(fmt.Sprintf(
				"Stock cannot go negative: current %d, delta %d", level.CurrentQuantity, input.Delta))
		}

		if err := s.levelRepo.UpdateQuantity(ctx, level.ID, newQuantity); err != nil {
			return err
		}

		adjustment := &entity.StockAdjustment{
			StockLevelID:   level.ID,
			QuantityBefore: level.CurrentQuantity,
			QuantityAfter:  newQuantity,
			Delta:          input.Delta,
			Type:           enum.StockAdjustmentTypeFromDelta(input.Delta),
			Reason:         input.Reason,
			AdjustedByID:   input.ActorID,
		}
		if err := s.adjustmentRepo.Create(ctx, adjustment); err != nil {
			return err
		}

		levelID = level.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.levelRepo.GetByID(ctx, levelID)
}

// Levels returns the stock levels of a store
func (s *StockService) Levels(ctx context.Context, storeID uuid.UUID) ([]entity.StockLevel, error) {
	return s.levelRepo.ListByStore(ctx, storeID)
}

// Alerts returns the stock levels at or below their safety stock
func (s *StockService) Alerts(ctx context.Context, storeID uuid.UUID) ([]entity.StockLevel, error) {
	return s.levelRepo.ListBelowSafety(ctx, storeID)
}

// AdjustmentHistory returns the audit trail of one stock level
func (s *StockService) AdjustmentHistory(ctx context.Context, stockLevelID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.StockAdjustment], error) {
	level, err := s.levelRepo.GetByID(ctx, stockLevelID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, apperror.NewNotFoundError("Stock level")
	}

	adjustments, total, err := s.adjustmentRepo.ListByStockLevel(ctx, stockLevelID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(adjustments, pag), nil
}

// ReplenishmentSuggestion proposes a refill for one low stock level
type ReplenishmentSuggestion struct {
	StockLevel        entity.StockLevel `json:"stock_level"`
	SuggestedQuantity int               `json:"suggested_quantity"`
	SuggestedCost     int64             `json:"suggested_cost"`
}

// SuggestReplenishment proposes, for every stock level at or below its
// safety stock, a refill up to max stock (at least 1 unit) and the cost of
// that refill at the product's current cost price. Read-only and advisory.
func (s *StockService) SuggestReplenishment(ctx context.Context, storeID uuid.UUID) ([]ReplenishmentSuggestion, error) {
	levels, err := s.levelRepo.ListBelowSafety(ctx, storeID)
	if err != nil {
		return nil, err
	}

	suggestions := make([]ReplenishmentSuggestion, 0, len(levels))
	for _, level := range levels {
		quantity := level.MaxStock - level.CurrentQuantity
		if quantity < 1 {
			quantity = 1
		}
		cost := decimal.NewFromInt(int64(quantity)).
			Mul(decimal.NewFromInt(level.Product.CostPrice)).
			IntPart()
		suggestions = append(suggestions, ReplenishmentSuggestion{
			StockLevel:        level,
			SuggestedQuantity: quantity,
			SuggestedCost:     cost,
		})
	}
	return suggestions, nil
}
