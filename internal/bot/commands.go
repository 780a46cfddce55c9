package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/unhappyben/HyperliquidPositionsBot/internal/database"
)

const retryReply = "An error occurred. Please try again later."

// reply is what a command handler produces: either plain text or an embed.
type reply struct {
	content string
	embed   *discordgo.MessageEmbed
}

func textReply(format string, args ...interface{}) *reply {
	return &reply{content: fmt.Sprintf(format, args...)}
}

// handleCommand parses a prefixed message and routes it to a command
// handler. Returns nil for empty input and unknown commands, which are
// silently ignored.
func (b *Bot) handleCommand(ctx context.Context, userID, username, content string) *reply {
	fields := strings.Fields(strings.TrimPrefix(content, b.prefix))
	if len(fields) == 0 {
		return nil
	}

	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch command {
	case "help":
		return &reply{embed: b.helpEmbed()}
	case "wallet":
		return b.cmdWallet(userID, username, args)
	case "namewallet":
		return b.cmdNameWallet(userID, args)
	case "updatename":
		return b.cmdUpdateName(userID, args)
	case "removewallet":
		return b.cmdRemoveWallet(userID, args)
	case "positions":
		return b.cmdPositions(ctx, userID, username, args)
	default:
		return nil
	}
}

func (b *Bot) helpEmbed() *discordgo.MessageEmbed {
	p := b.prefix
	return &discordgo.MessageEmbed{
		Title:       "Hyperliquid Bot Commands",
		Description: "Here are all the commands you can use:",
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: p + "wallet [address]", Value: "Add a new wallet or see your current wallets."},
			{Name: p + "namewallet [address] [name]", Value: "Give a name to one of your wallets."},
			{Name: p + "updatename [address] [new name]", Value: "Update the name of one of your wallets."},
			{Name: p + "removewallet [address]", Value: "Remove one of your wallets."},
			{Name: p + "positions [wallet]", Value: "See positions for all or one of your wallets."},
			{Name: p + "help", Value: "Show this help message."},
		},
	}
}

// cmdWallet registers a wallet when given an address, otherwise lists the
// user's registered wallets. Registering an already-known address replaces
// the stored row, clearing any name it had.
func (b *Bot) cmdWallet(userID, username string, args []string) *reply {
	if len(args) > 0 {
		address := args[0]
		if err := b.store.UpsertWallet(userID, address, ""); err != nil {
			log.Error().Err(err).Str("user", userID).Msg("Failed to save wallet")
			return textReply(retryReply)
		}
		return textReply("Wallet address added: %s for user %s", address, username)
	}

	wallets, err := b.store.ListWallets(userID)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("Failed to list wallets")
		return textReply(retryReply)
	}
	if len(wallets) == 0 {
		return textReply("You haven't set any wallet addresses yet. Use %swallet [address] to add one.", b.prefix)
	}

	lines := make([]string, 0, len(wallets))
	for _, w := range wallets {
		line := w.Address
		if w.Name != "" {
			line += fmt.Sprintf(" (%s)", w.Name)
		}
		lines = append(lines, line)
	}
	return textReply("Your current wallet addresses:\n%s", strings.Join(lines, "\n"))
}

func (b *Bot) cmdNameWallet(userID string, args []string) *reply {
	if len(args) < 2 {
		return textReply("Usage: %snamewallet [wallet address] [name]", b.prefix)
	}

	address := args[0]
	name := strings.Join(args[1:], " ")

	changes, err := b.store.RenameWallet(userID, address, name)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("Failed to name wallet")
		return textReply(retryReply)
	}
	if changes > 0 {
		return textReply("Wallet %s has been named \"%s\"", address, name)
	}
	return textReply("An error occurred while naming the wallet. Please try again.")
}

// cmdUpdateName shares the rename operation with cmdNameWallet but keeps
// its own wording. The not-found branch is only reachable when the store's
// create-if-missing fallback itself fails.
func (b *Bot) cmdUpdateName(userID string, args []string) *reply {
	if len(args) < 2 {
		return textReply("Usage: %supdatename [wallet address] [new name]", b.prefix)
	}

	address := args[0]
	newName := strings.Join(args[1:], " ")

	changes, err := b.store.RenameWallet(userID, address, newName)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("Failed to update wallet name")
		return textReply(retryReply)
	}
	if changes > 0 {
		return textReply("Wallet %s has been renamed to \"%s\"", address, newName)
	}
	return textReply("No wallet found with address %s for your account. Please check the address and try again.", address)
}

func (b *Bot) cmdRemoveWallet(userID string, args []string) *reply {
	if len(args) != 1 {
		return textReply("Usage: %sremovewallet [wallet address]", b.prefix)
	}

	address := args[0]
	changes, err := b.store.DeleteWallet(userID, address)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("Failed to remove wallet")
		return textReply(retryReply)
	}
	if changes > 0 {
		return textReply("Wallet %s has been removed from your account.", address)
	}
	return textReply("No wallet address found matching %s. Use %swallet to see your current addresses.", address, b.prefix)
}

// cmdPositions fetches and renders positions for all of the user's wallets,
// or for the single wallet matching the argument by address or name.
func (b *Bot) cmdPositions(ctx context.Context, userID, username string, args []string) *reply {
	wallets, err := b.store.ListWallets(userID)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("Failed to list wallets")
		return textReply("An error occurred while fetching positions. Please try again later.")
	}
	if len(wallets) == 0 {
		return textReply("Please set a wallet address first using %swallet [address]", b.prefix)
	}

	targets := wallets
	if len(args) > 0 {
		ref := args[0]
		targets = filterWallets(wallets, ref)
		if len(targets) == 0 {
			return textReply("No wallet found matching \"%s\". Please check your wallet address or name.", ref)
		}
	}

	positions := b.fetchAll(ctx, targets)
	return &reply{embed: buildPositionsEmbed(username, targets, positions)}
}

// filterWallets keeps wallets whose address or name exactly matches ref.
func filterWallets(wallets []database.Wallet, ref string) []database.Wallet {
	var matched []database.Wallet
	for _, w := range wallets {
		if w.Address == ref || (w.Name != "" && w.Name == ref) {
			matched = append(matched, w)
		}
	}
	return matched
}

// fetchAll queries every target wallet in parallel and tags each position
// with its owning wallet. Fetches are independent and the final output is
// sorted by PnL, so completion order does not matter.
func (b *Bot) fetchAll(ctx context.Context, wallets []database.Wallet) []walletPosition {
	results := make([][]walletPosition, len(wallets))

	g, ctx := errgroup.WithContext(ctx)
	for i, w := range wallets {
		i, w := i, w
		g.Go(func() error {
			for _, ap := range b.market.FetchPositions(ctx, w.Address) {
				results[i] = append(results[i], walletPosition{wallet: w, position: ap.Position})
			}
			return nil
		})
	}
	_ = g.Wait() // per-wallet failures were already mapped to zero positions

	var all []walletPosition
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}
