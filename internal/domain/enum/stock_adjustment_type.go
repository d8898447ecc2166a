package enum

// StockAdjustmentType classifies a stock mutation by the sign of its delta
type StockAdjustmentType string

const (
	StockAdjustmentTypeIncrease StockAdjustmentType = "increase"
	StockAdjustmentTypeDecrease StockAdjustmentType = "decrease"
)

// StockAdjustmentTypeFromDelta derives the adjustment type from a delta sign
func StockAdjustmentTypeFromDelta(delta int) StockAdjustmentType {
	if delta < 0 {
		return StockAdjustmentTypeDecrease
	}
	return StockAdjustmentTypeIncrease
}

func (t StockAdjustmentType) String() string {
	return string(t)
}
