package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/periprice/periprice/internal/pricing"
	httpDelivery "github.com/periprice/periprice/internal/pricing/delivery/http"
	"github.com/periprice/periprice/internal/pricing/domain"
	"github.com/periprice/periprice/internal/pricing/repository"
	"github.com/periprice/periprice/kafka"
	"github.com/periprice/periprice/pkg/config"
	"github.com/periprice/periprice/pkg/database"
	"github.com/periprice/periprice/pkg/logger"
	"github.com/periprice/periprice/pkg/model"
	"github.com/periprice/periprice/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("pricing-service", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting pricing service")

	// Tracing
	tp, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	// Database
	db, err := database.NewGormConnection(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(&domain.Product{}, &domain.Sale{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if cfg.SeedInventory {
		repo := repository.NewGormInventoryRepository(db)
		seeded, err := repo.SeedIfEmpty(context.Background(), repository.DefaultSeed(time.Now()))
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to seed inventory")
		}
		if seeded {
			logger.Logger.Info().Msg("Inventory seeded with demo catalogue")
		}
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Pricing model: missing artifact is fatal, never a per-request failure.
	predictor, err := model.Load(cfg.ModelPath)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("path", cfg.ModelPath).Msg("Failed to load pricing model")
	}
	logger.Logger.Info().Str("path", cfg.ModelPath).Msg("Pricing model loaded")

	// Kafka publisher is optional; events are disabled without brokers.
	var publisher *kafka.Publisher
	if cfg.KafkaBrokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(cfg.KafkaBrokers, ","))
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer publisher.Close()
	}

	handler, err := pricing.InitializeHTTPHandler(db, predictor, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	// HTTP server
	router := mux.NewRouter()
	mwConfig := httpDelivery.DefaultMiddlewareConfig()

	// Redis-backed rate limiting is optional; disabled without an address.
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			logger.Logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
		}
		cancel()
		defer redisClient.Close()

		mwConfig.RateLimiter = httpDelivery.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute)
		logger.Logger.Info().
			Str("addr", cfg.RedisAddr).
			Int("limit_per_minute", cfg.RateLimitPerMinute).
			Msg("Rate limiting enabled")
	}

	httpDelivery.RegisterMiddlewares(router, mwConfig)

	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router, sqlDB)
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: httpDelivery.SetupCORS(mwConfig)(router),
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}
