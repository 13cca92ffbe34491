package command

import (
	"context"

	"github.com/periprice/periprice/internal/pricing/domain"
)

// PredictAndUpdateCommand predicts a price for the given item features and
// writes it to the target product. The target is explicit by design: the
// legacy behavior of always writing product 1 was replaced.
type PredictAndUpdateCommand struct {
	ProductID uint
	Features  domain.ItemFeatures
}

// PredictAndUpdateHandler handles model-driven price updates
type PredictAndUpdateHandler struct {
	repo      domain.InventoryRepository
	predictor domain.PricePredictor
	events    EventPublisher
}

// NewPredictAndUpdateHandler creates a new predict-and-update handler
func NewPredictAndUpdateHandler(repo domain.InventoryRepository, predictor domain.PricePredictor, events EventPublisher) *PredictAndUpdateHandler {
	return &PredictAndUpdateHandler{repo: repo, predictor: predictor, events: events}
}

// Handle predicts the base price, applies the markdown rules and persists
// the final price on the target product. Returns the final price.
func (h *PredictAndUpdateHandler) Handle(ctx context.Context, cmd PredictAndUpdateCommand) (float64, error) {
	f := cmd.Features
	base := h.predictor.PredictBasePrice(f.Stock, f.UnitsSold, f.DaysLeft, f.DayOfWeek, f.DiscountFlag)
	finalPrice := domain.AdjustPrice(base, f.DaysLeft, f.Stock)

	if err := h.repo.UpdatePrice(ctx, cmd.ProductID, finalPrice); err != nil {
		return 0, err
	}

	publishPriceUpdated(ctx, h.events, cmd.ProductID, finalPrice, "model")
	return finalPrice, nil
}
