package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"streambot/database"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken    string `env:"DISCORD_TOKEN"`
	DiscordClientID string `env:"DISCORD_CLIENT_ID"`
	GuildID         string `env:"DISCORD_GUILD_ID"`
	BattleChannelID string `env:"BATTLE_CHANNEL_ID"` // Public channel for SSP challenges, falls back to the invoking channel

	// Visualizer API configuration
	APIURL            string        `env:"API_URL" envDefault:"http://127.0.0.1:3000"`
	APIKey            string        `env:"API_KEY"`
	APITimeout        time.Duration `env:"API_TIMEOUT" envDefault:"5s"`
	ModeCheckInterval time.Duration `env:"MODE_CHECK_INTERVAL" envDefault:"60s"`

	// Ledger storage
	UsersJSONPath    string `env:"USERS_JSON_PATH" envDefault:"./data/users.json"`
	DiscordLinksPath string `env:"DISCORD_LINKS_PATH" envDefault:"./data/discord-links.json"`
	DiscordUsersPath string `env:"DISCORD_USERS_PATH" envDefault:"./data/discord-users.json"`
	LedgerBackend    string `env:"LEDGER_BACKEND" envDefault:"json"` // "json" or "postgres"

	// Database configuration, only read by the postgres ledger backend
	DatabaseURL      string `env:"DATABASE_URL"`
	DatabaseHost     string `env:"DATABASE_HOST"`
	DatabasePort     int    `env:"DATABASE_PORT" envDefault:"5432"`
	DatabaseName     string `env:"DATABASE_NAME"`
	DatabaseUser     string `env:"DATABASE_USER"`
	DatabasePassword string `env:"DATABASE_PASSWORD"`
	DatabaseSSLMode  string `env:"DATABASE_SSLMODE"`

	// SSP duel configuration
	SSPConfigureTimeout time.Duration `env:"SSP_CONFIGURE_TIMEOUT" envDefault:"10m"`
	SSPAcceptTimeout    time.Duration `env:"SSP_ACCEPT_TIMEOUT" envDefault:"1h"`
	SSPWeaponTimeout    time.Duration `env:"SSP_WEAPON_TIMEOUT" envDefault:"5m"`
	SSPWagerStep        int64         `env:"SSP_WAGER_STEP" envDefault:"10"`
	SSPWagerMax         int64         `env:"SSP_WAGER_MAX" envDefault:"100"`

	// NATS configuration, empty disables event fan-out
	NATSServers string `env:"NATS_SERVERS"`

	// Debug API port, 0 disables it
	DebugPort int `env:"DEBUG_PORT" envDefault:"0"`

	// OpenTelemetry configuration
	OTelEnabled              bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTelServiceName          string `env:"OTEL_SERVICE_NAME" envDefault:"streambot"`
	OTelExporterType         string `env:"OTEL_EXPORTER_TYPE" envDefault:"console"`
	OTelOTLPEndpoint         string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTelExportIntervalMillis int    `env:"OTEL_EXPORT_INTERVAL_MILLIS" envDefault:"60000"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // "development", "production" or "test"
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

// Load is Get with the error returned instead of panicking
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	cfg, err := load()
	if err != nil {
		return nil, err
	}
	instance = cfg
	once.Do(func() {})
	return instance, nil
}

// GetDatabaseURL returns DATABASE_URL or one assembled from the DATABASE_* parts
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, database.ConnectionParams{
		Host:     c.DatabaseHost,
		Port:     c.DatabasePort,
		Name:     c.DatabaseName,
		User:     c.DatabaseUser,
		Password: c.DatabasePassword,
		SSLMode:  c.DatabaseSSLMode,
	})
}

// UsesPostgresLedger reports whether local balances live in Postgres
func (c *Config) UsesPostgresLedger() bool {
	return c.LedgerBackend == "postgres"
}

// load loads configuration from a .env file and environment variables
func load() (*Config, error) {
	// A missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// maxWagerTiers is Discord's select menu option limit, the free round included
const maxWagerTiers = 25

// Validate checks the configuration for values the bot cannot run with
func (c *Config) Validate() error {
	if c.SSPConfigureTimeout <= 0 || c.SSPAcceptTimeout <= 0 || c.SSPWeaponTimeout <= 0 {
		return fmt.Errorf("SSP timeouts must be positive")
	}
	if c.SSPWagerStep <= 0 || c.SSPWagerMax < c.SSPWagerStep || c.SSPWagerMax%c.SSPWagerStep != 0 {
		return fmt.Errorf("SSP_WAGER_MAX (%d) must be a positive multiple of SSP_WAGER_STEP (%d)", c.SSPWagerMax, c.SSPWagerStep)
	}
	if tiers := c.SSPWagerMax/c.SSPWagerStep + 1; tiers > maxWagerTiers {
		return fmt.Errorf("SSP_WAGER_MAX/SSP_WAGER_STEP gives %d wager options, Discord select menus allow %d", tiers, maxWagerTiers)
	}
	switch c.LedgerBackend {
	case "json", "postgres":
	default:
		return fmt.Errorf("unknown LEDGER_BACKEND: %s", c.LedgerBackend)
	}

	if c.Environment == "test" {
		return nil
	}

	if c.UsesPostgresLedger() && c.GetDatabaseURL() == "" {
		return fmt.Errorf("DATABASE_URL or DATABASE_HOST and DATABASE_NAME are required for the postgres ledger")
	}
	return nil
}

// ValidateBot checks the values only needed to connect to Discord
func (c *Config) ValidateBot() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
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
		Environment:         "test",
		DiscordToken:        "test-token",
		APIURL:              "http://127.0.0.1:3000",
		APITimeout:          5 * time.Second,
		ModeCheckInterval:   time.Minute,
		LedgerBackend:       "json",
		DatabasePort:        5432,
		SSPConfigureTimeout: 10 * time.Minute,
		SSPAcceptTimeout:    time.Hour,
		SSPWeaponTimeout:    5 * time.Minute,
		SSPWagerStep:        10,
		SSPWagerMax:         100,
		OTelServiceName:     "streambot",
		OTelExporterType:    "none",
		LogLevel:            "info",
	}
}
