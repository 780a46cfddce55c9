package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token123")
	t.Setenv("COMMAND_PREFIX", "")
	t.Setenv("HYPERLIQUID_API_URL", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("DEBUG", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token123", cfg.DiscordToken)
	assert.Equal(t, "!", cfg.CommandPrefix)
	assert.Equal(t, "https://api.hyperliquid.xyz/info", cfg.HyperliquidAPIURL)
	assert.Equal(t, "data/hlbot.db", cfg.DatabasePath)
	assert.False(t, cfg.Debug)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token123")
	t.Setenv("COMMAND_PREFIX", "?")
	t.Setenv("HYPERLIQUID_API_URL", "http://localhost:8080/info")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "?", cfg.CommandPrefix)
	assert.Equal(t, "http://localhost:8080/info", cfg.HyperliquidAPIURL)
	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	assert.True(t, cfg.Debug)
}
