package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the pricing service.
type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"pricing-service"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPPort    string `envconfig:"HTTP_PORT" default:"8000"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"perishables"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// Path to the trained pricing model artifact. Missing or unreadable
	// artifact is fatal at startup.
	ModelPath string `envconfig:"MODEL_PATH" default:"model/model.json"`

	// Seed the inventory table from the bundled dataset when it is empty.
	SeedInventory bool `envconfig:"SEED_INVENTORY" default:"false"`

	JaegerEndpoint string `envconfig:"JAEGER_ENDPOINT" default:"http://localhost:14268/api/traces"`

	// Redis backs the request rate limiter. Empty address disables limiting.
	RedisAddr          string `envconfig:"REDIS_ADDR" default:""`
	RateLimitPerMinute int    `envconfig:"RATE_LIMIT_PER_MINUTE" default:"100"`

	// Comma-separated Kafka brokers. Event publishing is disabled when empty.
	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:""`
}

// Load reads configuration from a local .env file (if present) and the
// process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
