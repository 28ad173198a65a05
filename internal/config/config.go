package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"emoji-arpg/internal/itemdb"
)

// Config holds the application configuration
type Config struct {
	InventorySize  int           `validate:"min=1,max=200"`
	EquipSlots     int           `validate:"min=4,max=32"`
	RarityWeights  itemdb.RarityWeights
	Seed           uint64 // 0 picks a time-based seed
	TemplatesPath  string // empty uses the embedded set
	PickupRadius   float64       `validate:"gt=0"`
	PickupLifetime time.Duration `validate:"gte=0"`
	PickupGrace    time.Duration `validate:"gte=0"`
	Tick           time.Duration `validate:"gt=0"`

	Environment string `validate:"oneof=development production"`
	LogLevel    slog.Level
	LogFile     string

	SSHPort     int `validate:"min=1,max=65535"`
	SSHHostKey  string
	MetricsAddr string `validate:"omitempty,hostname_port"`
}

var validate = validator.New()

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	var errs []error
	cfg := &Config{
		InventorySize:  getEnvInt("ARPG_INVENTORY_SIZE", 20, &errs),
		EquipSlots:     getEnvInt("ARPG_EQUIP_SLOTS", 10, &errs),
		Seed:           getEnvUint("ARPG_SEED", 0, &errs),
		TemplatesPath:  getEnv("ARPG_TEMPLATES", ""),
		PickupRadius:   getEnvFloat("ARPG_PICKUP_RADIUS", 1.5, &errs),
		PickupLifetime: getEnvDuration("ARPG_PICKUP_LIFETIME", 2*time.Minute, &errs),
		PickupGrace:    getEnvDuration("ARPG_PICKUP_GRACE", 500*time.Millisecond, &errs),
		Tick:           getEnvDuration("ARPG_TICK", 100*time.Millisecond, &errs),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:        getEnv("ARPG_LOG_FILE", ""),
		SSHPort:        getEnvInt("SSH_PORT", 2222, &errs),
		SSHHostKey:     getEnv("SSH_HOST_KEY", "server_host_key"),
		MetricsAddr:    getEnv("METRICS_ADDR", ""),
	}

	weights, err := itemdb.ParseWeights(getEnv("ARPG_RARITY_WEIGHTS", itemdb.DefaultWeights().String()))
	if err != nil {
		errs = append(errs, fmt.Errorf("ARPG_RARITY_WEIGHTS: %w", err))
	}
	cfg.RarityWeights = weights

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether structured JSON logging should be used.
func (c *Config) IsProduction() bool { return c.Environment == "production" }

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int, errs *[]error) int {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s value: %w", key, err))
		return defaultValue
	}
	return v
}

func getEnvFloat(key string, defaultValue float64, errs *[]error) float64 {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s value: %w", key, err))
		return defaultValue
	}
	return v
}

func getEnvUint(key string, defaultValue uint64, errs *[]error) uint64 {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s value: %w", key, err))
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s value: %w", key, err))
		return defaultValue
	}
	return v
}
