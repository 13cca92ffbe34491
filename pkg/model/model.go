package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Coefficients holds the weight for each pricing feature, in the order the
// model was trained on.
type Coefficients struct {
	Stock        float64 `json:"stock"`
	UnitsSold    float64 `json:"units_sold"`
	DaysLeft     float64 `json:"days_left"`
	DayOfWeek    float64 `json:"day_of_week"`
	DiscountFlag float64 `json:"discount_flag"`
}

// LinearModel is a trained regression model exported as a JSON artifact.
// It is loaded once at process start; prediction is pure arithmetic.
type LinearModel struct {
	Intercept    float64      `json:"intercept"`
	Coefficients Coefficients `json:"coefficients"`
}

// Load reads a model artifact from disk. An unreadable or malformed artifact
// is a startup-fatal condition for the service.
func Load(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact %s: %w", path, err)
	}

	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact %s: %w", path, err)
	}

	if m.Coefficients == (Coefficients{}) && m.Intercept == 0 {
		return nil, fmt.Errorf("model artifact %s has no trained parameters", path)
	}

	return &m, nil
}

// PredictBasePrice returns the unadjusted price for the given item features.
func (m *LinearModel) PredictBasePrice(stock, unitsSold, daysLeft, dayOfWeek, discountFlag int) float64 {
	c := m.Coefficients
	return m.Intercept +
		c.Stock*float64(stock) +
		c.UnitsSold*float64(unitsSold) +
		c.DaysLeft*float64(daysLeft) +
		c.DayOfWeek*float64(dayOfWeek) +
		c.DiscountFlag*float64(discountFlag)
}
