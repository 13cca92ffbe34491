package domain

import "math"

// Markdown thresholds and factors. The two rules stack multiplicatively:
// a near-expiry surplus item ends up at 0.63 of its base price.
const (
	NearExpiryDays   = 2
	NearExpiryFactor = 0.70
	SurplusStock     = 80
	SurplusFactor    = 0.90
)

// AdjustPrice applies the markdown rules to a base price, in order:
// near-expiry clearance first, then bulk-surplus discount on the already
// discounted value, then currency rounding. Negative base prices pass
// through unclamped.
func AdjustPrice(basePrice float64, daysLeft, stock int) float64 {
	finalPrice := basePrice
	if daysLeft <= NearExpiryDays {
		finalPrice *= NearExpiryFactor
	}
	if stock >= SurplusStock {
		finalPrice *= SurplusFactor
	}
	return RoundPrice(finalPrice)
}

// RoundPrice rounds to 2 decimal places using round-half-to-even, the
// rounding mode of the ledger's currency amounts.
func RoundPrice(price float64) float64 {
	return math.RoundToEven(price*100) / 100
}
