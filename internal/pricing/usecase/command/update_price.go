package command

import (
	"context"

	"github.com/periprice/periprice/internal/pricing/domain"
	"github.com/periprice/periprice/kafka"
	"github.com/periprice/periprice/pkg/logger"
)

// UpdatePriceCommand represents a manual price override
type UpdatePriceCommand struct {
	ProductID uint
	NewPrice  float64
}

// UpdatePriceHandler handles manual price overrides
type UpdatePriceHandler struct {
	repo   domain.InventoryRepository
	events EventPublisher
}

// NewUpdatePriceHandler creates a new update price handler
func NewUpdatePriceHandler(repo domain.InventoryRepository, events EventPublisher) *UpdatePriceHandler {
	return &UpdatePriceHandler{repo: repo, events: events}
}

// Handle executes the price override. Negative prices are rejected before
// any store access; a missing product reports ErrProductNotFound.
func (h *UpdatePriceHandler) Handle(ctx context.Context, cmd UpdatePriceCommand) error {
	if cmd.NewPrice < 0 {
		return domain.ErrInvalidPrice
	}

	if err := h.repo.UpdatePrice(ctx, cmd.ProductID, cmd.NewPrice); err != nil {
		return err
	}

	publishPriceUpdated(ctx, h.events, cmd.ProductID, cmd.NewPrice, "manual")
	return nil
}

func publishPriceUpdated(ctx context.Context, events EventPublisher, productID uint, price float64, source string) {
	if events == nil {
		return
	}
	event := kafka.PriceUpdatedEvent{
		ProductID: productID,
		NewPrice:  price,
		Source:    source,
	}
	if err := events.PublishPriceUpdated(ctx, event); err != nil {
		logger.Logger.Error().
			Err(err).
			Uint("product_id", productID).
			Str("source", source).
			Msg("Failed to publish price updated event")
	}
}
