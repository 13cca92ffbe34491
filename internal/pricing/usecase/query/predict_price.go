package query

import (
	"fmt"

	"github.com/periprice/periprice/internal/pricing/domain"
)

// PredictPriceQuery carries the item features of one prediction.
type PredictPriceQuery struct {
	Stock        int
	UnitsSold    int
	DaysLeft     int
	DayOfWeek    int
	DiscountFlag int
}

// PredictPriceHandler handles price predictions. Pure: no store access.
type PredictPriceHandler struct {
	predictor domain.PricePredictor
}

// NewPredictPriceHandler creates a new predict price handler
func NewPredictPriceHandler(predictor domain.PricePredictor) *PredictPriceHandler {
	return &PredictPriceHandler{predictor: predictor}
}

// Handle runs the model and applies the markdown rules to its output.
func (h *PredictPriceHandler) Handle(q PredictPriceQuery) (float64, error) {
	if err := validateFeatures(q); err != nil {
		return 0, err
	}

	base := h.predictor.PredictBasePrice(q.Stock, q.UnitsSold, q.DaysLeft, q.DayOfWeek, q.DiscountFlag)
	return domain.AdjustPrice(base, q.DaysLeft, q.Stock), nil
}

func validateFeatures(q PredictPriceQuery) error {
	if q.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	if q.UnitsSold < 0 {
		return fmt.Errorf("units_sold cannot be negative")
	}
	if q.DayOfWeek < 0 || q.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week must be between 0 and 6")
	}
	if q.DiscountFlag != 0 && q.DiscountFlag != 1 {
		return fmt.Errorf("discount_flag must be 0 or 1")
	}
	return nil
}
