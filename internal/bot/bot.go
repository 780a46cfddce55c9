// Package bot implements the Discord command surface: one handler per
// prefix command, backed by the wallet store and the Hyperliquid client.
package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/unhappyben/HyperliquidPositionsBot/internal/config"
	"github.com/unhappyben/HyperliquidPositionsBot/internal/database"
	"github.com/unhappyben/HyperliquidPositionsBot/internal/hyperliquid"
)

// WalletStore persists wallet registrations per Discord user.
type WalletStore interface {
	UpsertWallet(userID, address, name string) error
	ListWallets(userID string) ([]database.Wallet, error)
	RenameWallet(userID, address, name string) (int64, error)
	DeleteWallet(userID, address string) (int64, error)
}

// PositionFetcher returns open positions for a wallet address. A failed
// fetch surfaces as zero positions, never as an error.
type PositionFetcher interface {
	FetchPositions(ctx context.Context, address string) []hyperliquid.AssetPosition
}

// Bot manages the Discord gateway session and command dispatch
type Bot struct {
	session *discordgo.Session
	prefix  string
	store   WalletStore
	market  PositionFetcher
}

// New creates a Bot wired to the given store and market-data client.
func New(cfg *config.Config, store WalletStore, market PositionFetcher) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		session: session,
		prefix:  cfg.CommandPrefix,
		store:   store,
		market:  market,
	}

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info().Str("username", r.User.Username).Msg("🤖 Bot is ready")
	})
	session.AddHandler(b.onMessage)

	return b, nil
}

// Start opens the gateway connection and begins handling commands.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() {
	if err := b.session.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Discord session")
	}
	log.Info().Msg("Discord bot stopped")
}

// onMessage filters gateway traffic down to prefixed, human-authored
// commands and sends whatever reply the handler produced.
func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || !strings.HasPrefix(m.Content, b.prefix) {
		return
	}

	rep := b.handleCommand(context.Background(), m.Author.ID, m.Author.Username, m.Content)
	if rep == nil {
		return
	}

	var err error
	if rep.embed != nil {
		_, err = s.ChannelMessageSendEmbedReply(m.ChannelID, rep.embed, m.Reference())
	} else {
		_, err = s.ChannelMessageSendReply(m.ChannelID, rep.content, m.Reference())
	}
	if err != nil {
		log.Error().Err(err).Str("channel", m.ChannelID).Msg("Failed to send reply")
	}
}
