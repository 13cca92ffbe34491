package domain

// PricePredictor is the opaque trained-model capability the pricing engine
// consumes. Implementations must be pure: same features, same price.
type PricePredictor interface {
	PredictBasePrice(stock, unitsSold, daysLeft, dayOfWeek, discountFlag int) float64
}

// ItemFeatures carries the inputs of one price prediction. Transient, never
// persisted.
type ItemFeatures struct {
	Stock        int
	UnitsSold    int
	DaysLeft     int
	DayOfWeek    int
	DiscountFlag int
}
