package command

import (
	"context"
	"time"

	"github.com/periprice/periprice/internal/pricing/domain"
	"github.com/periprice/periprice/kafka"
	"github.com/periprice/periprice/pkg/logger"
)

// EventPublisher publishes pricing domain events after a command commits.
// A nil publisher disables event publishing.
type EventPublisher interface {
	PublishItemSold(ctx context.Context, event kafka.ItemSoldEvent) error
	PublishPriceUpdated(ctx context.Context, event kafka.PriceUpdatedEvent) error
}

// SellItemCommand represents the command to sell units of a product
type SellItemCommand struct {
	ProductID uint
	Quantity  int
}

// SellReceipt reports the outcome of a completed sale.
type SellReceipt struct {
	SaleID         uint
	ProductID      uint
	QuantitySold   int
	PriceSold      float64
	RemainingStock int
	SaleDate       time.Time
}

// SellItemHandler handles the sell command
type SellItemHandler struct {
	repo   domain.InventoryRepository
	events EventPublisher
	now    func() time.Time
}

// NewSellItemHandler creates a new sell item handler
func NewSellItemHandler(repo domain.InventoryRepository, events EventPublisher) *SellItemHandler {
	return &SellItemHandler{repo: repo, events: events, now: time.Now}
}

// Handle executes the sell command. The stock check, the decrement and the
// ledger append all run inside one transaction holding a row lock on the
// product, so concurrent sells on the same product serialize and can never
// oversell against a stale stock value. Success is reported only after the
// transaction commits, which makes the ledger entry durable.
func (h *SellItemHandler) Handle(ctx context.Context, cmd SellItemCommand) (*SellReceipt, error) {
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	saleDate := truncateToDate(h.now())
	var receipt SellReceipt

	err := h.repo.WithTx(ctx, func(tx domain.TxRepository) error {
		product, err := tx.GetProductForUpdate(cmd.ProductID)
		if err != nil {
			return err
		}

		if cmd.Quantity > product.Stock {
			return domain.ErrInsufficientStock
		}

		if err := tx.DecrementStock(cmd.ProductID, cmd.Quantity); err != nil {
			return err
		}

		// Price is snapshotted from the locked row, so a concurrent price
		// override cannot retroactively change the ledger entry.
		sale := &domain.Sale{
			ProductID: cmd.ProductID,
			SaleDate:  saleDate,
			UnitsSold: cmd.Quantity,
			PriceSold: product.Price,
		}
		if err := tx.AppendSale(sale); err != nil {
			return err
		}

		receipt = SellReceipt{
			SaleID:         sale.SaleID,
			ProductID:      cmd.ProductID,
			QuantitySold:   cmd.Quantity,
			PriceSold:      product.Price,
			RemainingStock: product.Stock - cmd.Quantity,
			SaleDate:       saleDate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if h.events != nil {
		event := kafka.ItemSoldEvent{
			SaleID:         receipt.SaleID,
			ProductID:      receipt.ProductID,
			Quantity:       receipt.QuantitySold,
			PriceSold:      receipt.PriceSold,
			RemainingStock: receipt.RemainingStock,
			SaleDate:       saleDate.Format("2006-01-02"),
		}
		if err := h.events.PublishItemSold(ctx, event); err != nil {
			// The sale is committed; the event is advisory.
			logger.Logger.Error().
				Err(err).
				Uint("product_id", receipt.ProductID).
				Uint("sale_id", receipt.SaleID).
				Msg("Failed to publish item sold event")
		}
	}

	return &receipt, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
