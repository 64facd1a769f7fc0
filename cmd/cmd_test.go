package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"streambot/config"
	"streambot/domain/entities"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	testCfg := config.NewTestConfig()
	testCfg.UsersJSONPath = filepath.Join(dir, "users.json")
	testCfg.DiscordLinksPath = filepath.Join(dir, "discord-links.json")
	testCfg.DiscordUsersPath = filepath.Join(dir, "discord-users.json")

	config.ResetConfig()
	config.SetTestConfig(testCfg)
	t.Cleanup(config.ResetConfig)
	return testCfg
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPointsCommands(t *testing.T) {
	setupTestConfig(t)

	out, err := execute(t, "points", "get", "111")
	require.NoError(t, err)
	assert.Contains(t, out, "Discord ID: 111")
	assert.Contains(t, out, "Store:      local")
	assert.Contains(t, out, "Balance:    0 points")
	assert.NotContains(t, out, "Linked to:")

	out, err = execute(t, "points", "set", "111", "1250", "--reason", "refund")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance:    1,250 points")

	out, err = execute(t, "points", "get", "111")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance:    1,250 points")
}

func TestPointsSet_NegativeClampsToZero(t *testing.T) {
	setupTestConfig(t)

	out, err := execute(t, "points", "set", "--", "222", "-5")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance:    0 points")
}

func TestPointsSet_InvalidAmount(t *testing.T) {
	setupTestConfig(t)

	_, err := execute(t, "points", "set", "111", "lots")
	assert.ErrorContains(t, err, `invalid amount "lots"`)
}

func TestMigrate_RequiresDatabaseURL(t *testing.T) {
	setupTestConfig(t)

	for _, args := range [][]string{{"migrate", "up"}, {"migrate", "down", "2"}, {"migrate", "status"}} {
		_, err := execute(t, args...)
		assert.ErrorContains(t, err, "DATABASE_URL", args)
	}
}

func TestMigrateDown_InvalidSteps(t *testing.T) {
	setupTestConfig(t)

	_, err := execute(t, "migrate", "down", "many")
	assert.ErrorContains(t, err, `invalid steps "many"`)
}

func TestRun_RequiresDiscordToken(t *testing.T) {
	testCfg := setupTestConfig(t)
	testCfg.DiscordToken = ""

	_, err := execute(t, "run")
	assert.EqualError(t, err, "DISCORD_TOKEN is required")
}

func TestDuelSettings(t *testing.T) {
	testCfg := config.NewTestConfig()
	testCfg.SSPAcceptTimeout = 30 * time.Minute
	testCfg.SSPWagerStep = 25
	testCfg.SSPWagerMax = 200

	settings := duelSettings(testCfg)

	assert.Equal(t, 10*time.Minute, settings.ConfigureTimeout)
	assert.Equal(t, 30*time.Minute, settings.AcceptTimeout)
	assert.Equal(t, 5*time.Minute, settings.WeaponTimeout)
	assert.Equal(t, entities.WagerTiers{Step: 25, Max: 200}, settings.Tiers)
}

func TestConfigureLogging(t *testing.T) {
	previousLevel := logrus.GetLevel()
	previousFormatter := logrus.StandardLogger().Formatter
	t.Cleanup(func() {
		logrus.SetLevel(previousLevel)
		logrus.SetFormatter(previousFormatter)
	})

	testCfg := config.NewTestConfig()
	testCfg.LogLevel = "debug"
	testCfg.Environment = "production"
	configureLogging(testCfg)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	testCfg.LogLevel = "chatty"
	testCfg.Environment = "development"
	configureLogging(testCfg)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	names := make([]string, 0)
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"run", "migrate", "points"})
}
