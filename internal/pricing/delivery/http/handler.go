package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/periprice/periprice/internal/pricing/domain"
	"github.com/periprice/periprice/internal/pricing/usecase/command"
	"github.com/periprice/periprice/internal/pricing/usecase/query"
	"github.com/periprice/periprice/pkg/logger"
)

// Prometheus metrics are package-level so handler construction stays
// idempotent (MustRegister would panic on a second registration).
var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_service_requests_total",
			Help: "Total number of requests to the pricing service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pricing_service_request_duration_seconds",
			Help:    "Duration of pricing service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Summary metric for percentile calculation (p50, p90, p95, p99)
	requestSummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "pricing_service_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	unitsSoldCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pricing_service_units_sold_total",
			Help: "Total units sold through the sell operation",
		},
	)

	revenueCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pricing_service_revenue_total",
			Help: "Total revenue recorded in the sales ledger",
		},
	)
)

func init() {
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)
	prometheus.MustRegister(unitsSoldCounter)
	prometheus.MustRegister(revenueCounter)
}

// PricingHandler handles HTTP requests for the pricing service using the
// CQRS pattern
type PricingHandler struct {
	// Command handlers
	sellHandler             *command.SellItemHandler
	updatePriceHandler      *command.UpdatePriceHandler
	predictAndUpdateHandler *command.PredictAndUpdateHandler

	// Query handlers
	predictHandler      *query.PredictPriceHandler
	inventoryHandler    *query.GetInventoryHandler
	listSalesHandler    *query.ListSalesHandler
	salesSummaryHandler *query.SalesSummaryHandler

	validate *validator.Validate
}

// NewPricingHandler creates a new pricing handler with manual wiring (used
// by tests and as a fallback for Wire)
func NewPricingHandler(
	invRepo domain.InventoryRepository,
	salesRepo domain.SalesRepository,
	predictor domain.PricePredictor,
	events command.EventPublisher,
) *PricingHandler {
	return NewPricingHandlerWithDI(
		command.NewSellItemHandler(invRepo, events),
		command.NewUpdatePriceHandler(invRepo, events),
		command.NewPredictAndUpdateHandler(invRepo, predictor, events),
		query.NewPredictPriceHandler(predictor),
		query.NewGetInventoryHandler(invRepo),
		query.NewListSalesHandler(salesRepo),
		query.NewSalesSummaryHandler(salesRepo),
	)
}

// NewPricingHandlerWithDI creates a new pricing handler using dependency
// injection. This is used by Wire.
func NewPricingHandlerWithDI(
	sellHandler *command.SellItemHandler,
	updatePriceHandler *command.UpdatePriceHandler,
	predictAndUpdateHandler *command.PredictAndUpdateHandler,
	predictHandler *query.PredictPriceHandler,
	inventoryHandler *query.GetInventoryHandler,
	listSalesHandler *query.ListSalesHandler,
	salesSummaryHandler *query.SalesSummaryHandler,
) *PricingHandler {
	return &PricingHandler{
		sellHandler:             sellHandler,
		updatePriceHandler:      updatePriceHandler,
		predictAndUpdateHandler: predictAndUpdateHandler,
		predictHandler:          predictHandler,
		inventoryHandler:        inventoryHandler,
		listSalesHandler:        listSalesHandler,
		salesSummaryHandler:     salesSummaryHandler,
		validate:                validator.New(),
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *PricingHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes keeps the original operation paths so existing dashboard
// clients continue to work unchanged.
func (h *PricingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/predict_price", h.metricsMiddleware("/predict_price", h.PredictPrice)).Methods("POST")
	router.HandleFunc("/get_inventory", h.metricsMiddleware("/get_inventory", h.GetInventory)).Methods("GET")
	router.HandleFunc("/update_price", h.metricsMiddleware("/update_price", h.UpdatePrice)).Methods("POST")
	router.HandleFunc("/predict_and_update", h.metricsMiddleware("/predict_and_update", h.PredictAndUpdate)).Methods("POST")
	router.HandleFunc("/sell_item", h.metricsMiddleware("/sell_item", h.SellItem)).Methods("POST")
	router.HandleFunc("/sales", h.metricsMiddleware("/sales", h.ListSales)).Methods("GET")
	router.HandleFunc("/sales/summary", h.metricsMiddleware("/sales/summary", h.SalesSummary)).Methods("GET")
}

type predictRequest struct {
	Stock        *int `json:"stock" validate:"required,gte=0"`
	UnitsSold    *int `json:"units_sold" validate:"required,gte=0"`
	DaysLeft     *int `json:"days_left" validate:"required"`
	DayOfWeek    *int `json:"day_of_week" validate:"required,gte=0,lte=6"`
	DiscountFlag *int `json:"discount_flag" validate:"required,oneof=0 1"`
}

// PredictPrice handles POST /predict_price
func (h *PricingHandler) PredictPrice(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	price, err := h.predictHandler.Handle(query.PredictPriceQuery{
		Stock:        *req.Stock,
		UnitsSold:    *req.UnitsSold,
		DaysLeft:     *req.DaysLeft,
		DayOfWeek:    *req.DayOfWeek,
		DiscountFlag: *req.DiscountFlag,
	})
	if err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"predicted_price": price})
}

// GetInventory handles GET /get_inventory
func (h *PricingHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.inventoryHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list inventory")
		respondJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to list inventory"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"inventory": rows})
}

type updatePriceRequest struct {
	ProductID *uint    `json:"product_id" validate:"required,gte=1"`
	NewPrice  *float64 `json:"new_price" validate:"required,gte=0"`
}

// UpdatePrice handles POST /update_price
func (h *PricingHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	var req updatePriceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.updatePriceHandler.Handle(r.Context(), command.UpdatePriceCommand{
		ProductID: *req.ProductID,
		NewPrice:  *req.NewPrice,
	})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to update price")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":             "success",
		"updated_product_id": *req.ProductID,
	})
}

type predictAndUpdateRequest struct {
	ProductID    *uint `json:"product_id" validate:"required,gte=1"`
	Stock        *int  `json:"stock" validate:"required,gte=0"`
	UnitsSold    *int  `json:"units_sold" validate:"required,gte=0"`
	DaysLeft     *int  `json:"days_left" validate:"required"`
	DayOfWeek    *int  `json:"day_of_week" validate:"required,gte=0,lte=6"`
	DiscountFlag *int  `json:"discount_flag" validate:"required,oneof=0 1"`
}

// PredictAndUpdate handles POST /predict_and_update
func (h *PricingHandler) PredictAndUpdate(w http.ResponseWriter, r *http.Request) {
	var req predictAndUpdateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	price, err := h.predictAndUpdateHandler.Handle(r.Context(), command.PredictAndUpdateCommand{
		ProductID: *req.ProductID,
		Features: domain.ItemFeatures{
			Stock:        *req.Stock,
			UnitsSold:    *req.UnitsSold,
			DaysLeft:     *req.DaysLeft,
			DayOfWeek:    *req.DayOfWeek,
			DiscountFlag: *req.DiscountFlag,
		},
	})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to predict and update price")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"predicted_price": price,
		"status":          "price_updated",
	})
}

type sellRequest struct {
	ProductID *uint `json:"product_id" validate:"required,gte=1"`
	Quantity  *int  `json:"quantity" validate:"required,gte=1"`
}

// SellItem handles POST /sell_item
func (h *PricingHandler) SellItem(w http.ResponseWriter, r *http.Request) {
	var req sellRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	receipt, err := h.sellHandler.Handle(r.Context(), command.SellItemCommand{
		ProductID: *req.ProductID,
		Quantity:  *req.Quantity,
	})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to sell item")
		return
	}

	unitsSoldCounter.Add(float64(receipt.QuantitySold))
	revenueCounter.Add(receipt.PriceSold * float64(receipt.QuantitySold))

	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "success",
		"product_id":      receipt.ProductID,
		"quantity_sold":   receipt.QuantitySold,
		"remaining_stock": receipt.RemainingStock,
	})
}

// ListSales handles GET /sales
func (h *PricingHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	rows, err := h.listSalesHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list sales")
		respondJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to list sales"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"sales": rows})
}

// SalesSummary handles GET /sales/summary
func (h *PricingHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.salesSummaryHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to aggregate sales")
		respondJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to aggregate sales"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"summary": rows})
}

// RegisterHealthCheck registers the liveness endpoint with a DB ping.
func (h *PricingHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "database unavailable"})
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}).Methods("GET")
}

// decodeAndValidate decodes the request body and runs struct validation.
// Writes the error response itself and returns false on failure.
func (h *PricingHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
		return false
	}
	return true
}

// respondDomainError translates domain errors into the external contract.
// No raw store error ever reaches a client.
func (h *PricingHandler) respondDomainError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		respondJSON(w, http.StatusNotFound, map[string]any{"error": "Product not found"})
	case errors.Is(err, domain.ErrInsufficientStock):
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "Not enough stock"})
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidPrice):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
	default:
		logger.Error(r.Context()).Err(err).Msg(logMsg)
		respondJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
