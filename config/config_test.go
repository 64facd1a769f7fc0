package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DISCORD_TOKEN", "")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:3000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, 60*time.Second, cfg.ModeCheckInterval)
	assert.Equal(t, 10*time.Minute, cfg.SSPConfigureTimeout)
	assert.Equal(t, time.Hour, cfg.SSPAcceptTimeout)
	assert.Equal(t, 5*time.Minute, cfg.SSPWeaponTimeout)
	assert.Equal(t, int64(10), cfg.SSPWagerStep)
	assert.Equal(t, int64(100), cfg.SSPWagerMax)
	assert.Equal(t, "json", cfg.LedgerBackend)
	assert.False(t, cfg.UsesPostgresLedger())
}

func TestLoad_Overrides(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("SSP_ACCEPT_TIMEOUT", "30m")
	t.Setenv("LEDGER_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://bot@db:5432/streambot")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.SSPAcceptTimeout)
	assert.True(t, cfg.UsesPostgresLedger())
	assert.Equal(t, "postgres://bot@db:5432/streambot?sslmode=disable", cfg.GetDatabaseURL())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{
			name:   "test config is valid",
			modify: func(c *Config) {},
		},
		{
			name:    "postgres backend needs a database",
			modify:  func(c *Config) { c.Environment = "production"; c.LedgerBackend = "postgres" },
			wantErr: "required for the postgres ledger",
		},
		{
			name:    "unknown backend",
			modify:  func(c *Config) { c.LedgerBackend = "redis" },
			wantErr: "unknown LEDGER_BACKEND",
		},
		{
			name:    "wager max must be a multiple of the step",
			modify:  func(c *Config) { c.SSPWagerMax = 95 },
			wantErr: "must be a positive multiple",
		},
		{
			name:    "wager tiers must fit one select menu",
			modify:  func(c *Config) { c.SSPWagerStep = 1; c.SSPWagerMax = 100 },
			wantErr: "Discord select menus allow 25",
		},
		{
			name:   "exactly 25 wager tiers is allowed",
			modify: func(c *Config) { c.SSPWagerStep = 5; c.SSPWagerMax = 120 },
		},
		{
			name:    "timeouts must be positive",
			modify:  func(c *Config) { c.SSPWeaponTimeout = 0 },
			wantErr: "SSP timeouts must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewTestConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateBot(t *testing.T) {
	cfg := NewTestConfig()
	assert.NoError(t, cfg.ValidateBot())

	cfg.DiscordToken = ""
	assert.EqualError(t, cfg.ValidateBot(), "DISCORD_TOKEN is required")
}

func TestLoad_CachesInstance(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)
	t.Setenv("ENVIRONMENT", "test")

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, Get())
}

func TestLoad_ReturnsError(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LEDGER_BACKEND", "redis")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown LEDGER_BACKEND")
}

func TestSetTestConfig(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	cfg := NewTestConfig()
	cfg.BattleChannelID = "123"
	SetTestConfig(cfg)

	assert.Same(t, cfg, Get())
}
