// Hyperliquid Positions Bot
//
// Discord bot that tracks Hyperliquid wallets per user and renders their
// open perp positions on demand:
//
//  1. Users register wallet addresses with !wallet and name them
//  2. !positions fetches clearinghouse state for each wallet in parallel
//  3. Positions are sorted by PnL and rendered as one rich embed
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unhappyben/HyperliquidPositionsBot/internal/bot"
	"github.com/unhappyben/HyperliquidPositionsBot/internal/config"
	"github.com/unhappyben/HyperliquidPositionsBot/internal/database"
	"github.com/unhappyben/HyperliquidPositionsBot/internal/hyperliquid"
)

const version = "1.0.0"

func main() {
	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Load environment
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Info().
		Str("version", version).
		Str("prefix", cfg.CommandPrefix).
		Msg("⚡ Hyperliquid Positions Bot starting...")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	// Market data client
	hlClient := hyperliquid.NewClient(cfg.HyperliquidAPIURL)

	// Discord bot
	discordBot, err := bot.New(cfg, db, hlClient)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Discord bot")
	}

	if err := discordBot.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Discord")
	}

	log.Info().Msg("✅ All systems online")
	log.Info().Msgf("💡 Use %shelp for commands", cfg.CommandPrefix)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("🛑 Received shutdown signal")

	// Graceful shutdown
	discordBot.Stop()
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database")
	}

	log.Info().Msg("👋 Goodbye!")
}
