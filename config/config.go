package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"gamblebot/database"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken      string
	GuildID           string // Guild to register commands in, empty registers globally
	AnnounceChannelID string // Channel for big win announcements, empty disables them

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Redis configuration (optional, enables the shared concurrency gate)
	RedisURL string

	// Economy configuration
	StartingBalance  decimal.Decimal
	DailyCooldown    time.Duration
	WorkCooldown     time.Duration
	RakebackCooldown time.Duration
	BigWinMultiplier float64 // Payout/stake ratio that triggers an announcement

	// Interactive sessions
	SessionTimeout time.Duration // Inactivity window for blackjack and road sessions
	RainWindow     time.Duration // How long a rain collects reactions

	// Logging
	LogLevel log.Level

	// OpenTelemetry metrics
	OTelEnabled        bool
	OTelExporterType   string // "console", "otlp" or "none"
	OTelOTLPEndpoint   string
	OTelServiceName    string
	OTelExportInterval time.Duration

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from a .env file (if present) and environment variables
func load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment variables")
	}

	config := &Config{
		// Discord
		DiscordToken:      os.Getenv("DISCORD_TOKEN"),
		GuildID:           os.Getenv("GUILD_ID"),
		AnnounceChannelID: os.Getenv("ANNOUNCE_CHANNEL_ID"),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Redis
		RedisURL: os.Getenv("REDIS_URL"),

		// Economy defaults
		StartingBalance:  decimal.NewFromInt(50),
		DailyCooldown:    24 * time.Hour,
		WorkCooldown:     time.Hour,
		RakebackCooldown: 2 * time.Minute,
		BigWinMultiplier: 10,

		// Sessions
		SessionTimeout: 3 * time.Minute,
		RainWindow:     30 * time.Second,

		LogLevel: log.InfoLevel,

		// Metrics
		OTelEnabled:        os.Getenv("OTEL_ENABLED") == "true",
		OTelExporterType:   getEnvOrDefault("OTEL_EXPORTER_TYPE", "console"),
		OTelOTLPEndpoint:   getEnvOrDefault("OTEL_OTLP_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnvOrDefault("OTEL_SERVICE_NAME", "gamblebot"),
		OTelExportInterval: 30 * time.Second,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		parsed, err := decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("invalid STARTING_BALANCE %q: %w", balance, err)
		}
		config.StartingBalance = parsed
	}
	if err := overrideDuration("DAILY_COOLDOWN", &config.DailyCooldown); err != nil {
		return nil, err
	}
	if err := overrideDuration("WORK_COOLDOWN", &config.WorkCooldown); err != nil {
		return nil, err
	}
	if err := overrideDuration("RAKEBACK_COOLDOWN", &config.RakebackCooldown); err != nil {
		return nil, err
	}
	if err := overrideDuration("SESSION_TIMEOUT", &config.SessionTimeout); err != nil {
		return nil, err
	}
	if err := overrideDuration("RAIN_WINDOW", &config.RainWindow); err != nil {
		return nil, err
	}
	if err := overrideDuration("OTEL_EXPORT_INTERVAL", &config.OTelExportInterval); err != nil {
		return nil, err
	}
	if multiplier := os.Getenv("BIG_WIN_MULTIPLIER"); multiplier != "" {
		parsed, err := strconv.ParseFloat(multiplier, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid BIG_WIN_MULTIPLIER %q: %w", multiplier, err)
		}
		config.BigWinMultiplier = parsed
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
		}
		config.LogLevel = parsed
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	switch config.OTelExporterType {
	case "console", "otlp", "none":
	default:
		return nil, fmt.Errorf("invalid OTEL_EXPORTER_TYPE %q", config.OTelExporterType)
	}

	if !config.StartingBalance.IsPositive() {
		return nil, fmt.Errorf("STARTING_BALANCE must be positive")
	}

	return config, nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// overrideDuration replaces target with the parsed value of key when it is set
func overrideDuration(key string, target *time.Duration) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if parsed <= 0 {
		return fmt.Errorf("%s must be positive", key)
	}
	*target = parsed
	return nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:      "test",
		StartingBalance:  decimal.NewFromInt(50),
		DailyCooldown:    24 * time.Hour,
		WorkCooldown:     time.Hour,
		RakebackCooldown: 2 * time.Minute,
		BigWinMultiplier: 10,
		SessionTimeout:   3 * time.Minute,
		RainWindow:       30 * time.Second,
		LogLevel:         log.InfoLevel,
		OTelExporterType: "none",
		OTelServiceName:  "gamblebot-test",
	}
}
