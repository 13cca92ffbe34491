//go:build wireinject
// +build wireinject

package pricing

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpdelivery "github.com/periprice/periprice/internal/pricing/delivery/http"
	"github.com/periprice/periprice/internal/pricing/domain"
	"github.com/periprice/periprice/internal/pricing/usecase/command"
	"github.com/periprice/periprice/internal/pricing/usecase/query"
	"github.com/periprice/periprice/kafka"
)

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideInventoryRepository,
	ProvideSalesRepository,
)

var UsecaseSet = wire.NewSet(
	command.NewSellItemHandler,
	command.NewUpdatePriceHandler,
	command.NewPredictAndUpdateHandler,
	query.NewPredictPriceHandler,
	query.NewGetInventoryHandler,
	query.NewListSalesHandler,
	query.NewSalesSummaryHandler,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, predictor domain.PricePredictor, publisher *kafka.Publisher) (*httpdelivery.PricingHandler, error) {
	wire.Build(
		RepositorySet,
		ProvideEventPublisher,
		UsecaseSet,
		httpdelivery.NewPricingHandlerWithDI,
	)
	return nil, nil
}
