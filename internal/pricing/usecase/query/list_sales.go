package query

import (
	"context"
	"fmt"

	"github.com/periprice/periprice/internal/pricing/domain"
)

// SaleRow is one ledger entry as exposed to clients.
type SaleRow struct {
	SaleID    uint    `json:"sale_id"`
	ProductID uint    `json:"product_id"`
	SaleDate  string  `json:"sale_date"`
	UnitsSold int     `json:"units_sold"`
	PriceSold float64 `json:"price_sold"`
}

// ListSalesHandler handles sales ledger listing
type ListSalesHandler struct {
	repo domain.SalesRepository
}

// NewListSalesHandler creates a new list sales handler
func NewListSalesHandler(repo domain.SalesRepository) *ListSalesHandler {
	return &ListSalesHandler{repo: repo}
}

// Handle returns the full ledger in sale_id order.
func (h *ListSalesHandler) Handle(ctx context.Context) ([]SaleRow, error) {
	sales, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	rows := make([]SaleRow, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, SaleRow{
			SaleID:    s.SaleID,
			ProductID: s.ProductID,
			SaleDate:  s.SaleDate.Format("2006-01-02"),
			UnitsSold: s.UnitsSold,
			PriceSold: s.PriceSold,
		})
	}
	return rows, nil
}
