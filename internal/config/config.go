package config

import (
	"fmt"
	"os"
)

// Config holds all configuration for the bot
type Config struct {
	// Discord
	DiscordToken  string
	CommandPrefix string

	// Hyperliquid API
	HyperliquidAPIURL string

	// Mode
	Debug bool

	// Database
	DatabasePath string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DiscordToken:  os.Getenv("DISCORD_BOT_TOKEN"),
		CommandPrefix: getEnv("COMMAND_PREFIX", "!"),

		HyperliquidAPIURL: getEnv("HYPERLIQUID_API_URL", "https://api.hyperliquid.xyz/info"),

		Debug: getEnvBool("DEBUG", false),

		DatabasePath: getEnv("DATABASE_PATH", "data/hlbot.db"),
	}

	// Validate required fields
	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
