package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port          string
	Environment   string
	LoggingConfig LoggingConfig
	RedisConfig   RedisConfig
	ProviderConfig ProviderConfig
	SearchConfig  SearchConfig
	CacheEnabled  bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns the host:port address for the Redis client.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// ProviderConfig holds upstream flight-price provider configuration.
// Credentials are opaque to the core.
type ProviderConfig struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	RetryMax int
}

// SearchConfig holds the deal search budget, curation limits, and the
// strategy thresholds. Thresholds live here so tests can drive edge cases.
type SearchConfig struct {
	// MaxCallsPerSearch caps upstream calls issued for one query.
	MaxCallsPerSearch int
	// MaxResults caps the curated output size.
	MaxResults int
	// CacheTTL is how long provider responses stay valid.
	CacheTTL time.Duration

	// Minimum baseline prices below which a strategy is not worth its calls.
	NearbyMinBase      float64
	SplitMinBase       float64
	HiddenCityMinBase  float64
	HubMinBase         float64
	PositioningMinBase float64

	// Price ratios an alternative must beat to count as a deal.
	NearbyMaxRatio      float64
	SplitMaxRatio       float64
	PositioningMaxRatio float64
	ConnectingMaxRatio  float64
}

// DefaultSearchConfig returns the production search parameters.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxCallsPerSearch:   15,
		MaxResults:          35,
		CacheTTL:            5 * time.Minute,
		NearbyMinBase:       70,
		SplitMinBase:        90,
		HiddenCityMinBase:   100,
		HubMinBase:          120,
		PositioningMinBase:  300,
		NearbyMaxRatio:      0.85,
		SplitMaxRatio:       0.85,
		PositioningMaxRatio: 0.75,
		ConnectingMaxRatio:  0.90,
	}
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	port := getEnv("PORT", "8080")
	environment := getEnv("ENVIRONMENT", "development")
	cacheEnabled, _ := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))

	loggingConfig := LoggingConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisConfig := RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	providerTimeout, err := time.ParseDuration(getEnv("PROVIDER_TIMEOUT", "90s"))
	if err != nil {
		providerTimeout = 90 * time.Second
	}
	providerRetryMax, _ := strconv.Atoi(getEnv("PROVIDER_RETRY_MAX", "3"))
	providerConfig := ProviderConfig{
		BaseURL:  getEnv("PROVIDER_BASE_URL", "https://api.flightprices.example.com"),
		APIKey:   getEnv("PROVIDER_API_KEY", ""),
		Timeout:  providerTimeout,
		RetryMax: providerRetryMax,
	}

	searchConfig := DefaultSearchConfig()
	if maxCalls, err := strconv.Atoi(getEnv("SEARCH_MAX_CALLS", "")); err == nil && maxCalls > 0 {
		searchConfig.MaxCallsPerSearch = maxCalls
	}
	if maxResults, err := strconv.Atoi(getEnv("SEARCH_MAX_RESULTS", "")); err == nil && maxResults > 0 {
		searchConfig.MaxResults = maxResults
	}
	if ttl, err := time.ParseDuration(getEnv("SEARCH_CACHE_TTL", "")); err == nil && ttl > 0 {
		searchConfig.CacheTTL = ttl
	}

	return &Config{
		Port:           port,
		Environment:    environment,
		LoggingConfig:  loggingConfig,
		RedisConfig:    redisConfig,
		ProviderConfig: providerConfig,
		SearchConfig:   searchConfig,
		CacheEnabled:   cacheEnabled,
	}, nil
}

// TestConfig returns a default test configuration
func TestConfig() *Config {
	return &Config{
		Port:        "8080",
		Environment: "test",
		LoggingConfig: LoggingConfig{
			Level:  "error",
			Format: "text",
		},
		RedisConfig: RedisConfig{
			Host: getEnv("REDIS_HOST", "localhost"),
			Port: getEnv("REDIS_PORT", "6379"),
		},
		SearchConfig: DefaultSearchConfig(),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}
