package query

import (
	"context"
	"fmt"

	"github.com/periprice/periprice/internal/pricing/domain"
)

// DailySalesRow aggregates units sold for one calendar date.
type DailySalesRow struct {
	SaleDate   string `json:"sale_date"`
	TotalUnits int    `json:"total_units"`
}

// SalesSummaryHandler handles per-date sales aggregation
type SalesSummaryHandler struct {
	repo domain.SalesRepository
}

// NewSalesSummaryHandler creates a new sales summary handler
func NewSalesSummaryHandler(repo domain.SalesRepository) *SalesSummaryHandler {
	return &SalesSummaryHandler{repo: repo}
}

// Handle returns units sold per date in ascending date order.
func (h *SalesSummaryHandler) Handle(ctx context.Context) ([]DailySalesRow, error) {
	totals, err := h.repo.TotalsByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	rows := make([]DailySalesRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, DailySalesRow{
			SaleDate:   t.SaleDate.Format("2006-01-02"),
			TotalUnits: t.TotalUnits,
		})
	}
	return rows, nil
}
