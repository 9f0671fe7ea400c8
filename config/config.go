package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"lotobot/database"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	GuildID      string // Guild to register commands in; empty registers globally

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated); empty disables NATS

	// Game configuration
	BetAmount       float64
	WinThreshold    int
	SessionTimeout  time.Duration
	DrawCooldown    time.Duration
	CheckCooldown   time.Duration
	LeaderboardSize int

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelServiceName          string
	OTelExporterType         string // "console", "otlp" or "none"
	OTelOTLPEndpoint         string
	OTelExportIntervalMillis int

	// Health check listener
	HealthAddr string

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
		if err := godotenv.Load(); err == nil {
			log.Info("Loaded environment from .env")
		}

		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
				instance.DiscordToken = "test-token"
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

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("GUILD_ID"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		NATSServers: os.Getenv("NATS_SERVERS"),

		BetAmount:       5.0,
		WinThreshold:    5,
		SessionTimeout:  2 * time.Hour,
		DrawCooldown:    2 * time.Second,
		CheckCooldown:   2 * time.Second,
		LeaderboardSize: 10,

		OTelEnabled:              false,
		OTelServiceName:          getEnvWithDefault("OTEL_SERVICE_NAME", "lotobot"),
		OTelExporterType:         getEnvWithDefault("OTEL_EXPORTER_TYPE", "none"),
		OTelOTLPEndpoint:         getEnvWithDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "otel-collector:4317"),
		OTelExportIntervalMillis: 60000,

		HealthAddr: getEnvWithDefault("HEALTH_ADDR", ":9090"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	var err error
	if config.BetAmount, err = parseEnv("LOTO_BET_AMOUNT", config.BetAmount, parseFloat); err != nil {
		return nil, err
	}
	if config.WinThreshold, err = parseEnv("LOTO_WIN_THRESHOLD", config.WinThreshold, strconv.Atoi); err != nil {
		return nil, err
	}
	if config.SessionTimeout, err = parseEnv("LOTO_SESSION_TIMEOUT", config.SessionTimeout, time.ParseDuration); err != nil {
		return nil, err
	}
	if config.DrawCooldown, err = parseEnv("LOTO_DRAW_COOLDOWN", config.DrawCooldown, time.ParseDuration); err != nil {
		return nil, err
	}
	if config.CheckCooldown, err = parseEnv("LOTO_CHECK_COOLDOWN", config.CheckCooldown, time.ParseDuration); err != nil {
		return nil, err
	}
	if config.LeaderboardSize, err = parseEnv("LOTO_LEADERBOARD_SIZE", config.LeaderboardSize, strconv.Atoi); err != nil {
		return nil, err
	}
	if config.OTelEnabled, err = parseEnv("OTEL_ENABLED", config.OTelEnabled, strconv.ParseBool); err != nil {
		return nil, err
	}
	if config.OTelExportIntervalMillis, err = parseEnv("OTEL_EXPORT_INTERVAL_MS", config.OTelExportIntervalMillis, strconv.Atoi); err != nil {
		return nil, err
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.BetAmount <= 0 {
		return fmt.Errorf("LOTO_BET_AMOUNT must be positive, got %v", c.BetAmount)
	}
	if c.WinThreshold < 1 {
		return fmt.Errorf("LOTO_WIN_THRESHOLD must be at least 1, got %d", c.WinThreshold)
	}
	if c.SessionTimeout <= 0 {
		return fmt.Errorf("LOTO_SESSION_TIMEOUT must be positive, got %s", c.SessionTimeout)
	}
	if c.DrawCooldown < 0 || c.CheckCooldown < 0 {
		return fmt.Errorf("cooldowns cannot be negative")
	}
	if c.LeaderboardSize < 1 {
		return fmt.Errorf("LOTO_LEADERBOARD_SIZE must be at least 1, got %d", c.LeaderboardSize)
	}

	if c.Environment == "test" {
		return nil
	}
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
		return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
	}
	return nil
}

// OTelExportInterval returns the metric export interval as a duration
func (c *Config) OTelExportInterval() time.Duration {
	return time.Duration(c.OTelExportIntervalMillis) * time.Millisecond
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// parseEnv parses key with parse, keeping def when the variable is unset
func parseEnv[T any](key string, def T, parse func(string) (T, error)) (T, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := parse(raw)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
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
		BetAmount:        5.0,
		WinThreshold:     5,
		SessionTimeout:   2 * time.Hour,
		LeaderboardSize:  10,
		OTelServiceName:  "lotobot",
		OTelExporterType: "none",
		HealthAddr:       ":9090",
	}
}
