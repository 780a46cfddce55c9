package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"

	"github.com/unhappyben/HyperliquidPositionsBot/internal/analytics"
	"github.com/unhappyben/HyperliquidPositionsBot/internal/database"
	"github.com/unhappyben/HyperliquidPositionsBot/internal/hyperliquid"
)

const (
	embedColor    = 0x0099ff
	footerIconURL = "https://pbs.twimg.com/profile_images/1646594253982830592/F4sMsWyA_400x400.png"
)

var hundred = decimal.NewFromInt(100)

// walletPosition is one fetched position tagged with the wallet it
// belongs to, so multi-wallet summaries can label each block.
type walletPosition struct {
	wallet   database.Wallet
	position hyperliquid.Position
}

// walletLabel is the display name of a wallet: its user-given name if
// set, otherwise a truncated form of the address.
func walletLabel(w database.Wallet) string {
	if w.Name != "" {
		return w.Name
	}
	if len(w.Address) > 10 {
		return w.Address[:6] + "..." + w.Address[len(w.Address)-4:]
	}
	return w.Address
}

// parseDecimal converts a string-encoded API decimal, mapping malformed
// or absent values to zero.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// sortByPnl orders positions by unrealized PnL, best first. Ties keep
// their fetch order.
func sortByPnl(positions []walletPosition) {
	sort.SliceStable(positions, func(i, j int) bool {
		a := parseDecimal(positions[i].position.UnrealizedPnl)
		b := parseDecimal(positions[j].position.UnrealizedPnl)
		return a.GreaterThan(b)
	})
}

// buildPositionsEmbed renders the full position summary: one block per
// position sorted by PnL, a sentiment image keyed on total PnL, and a
// footer naming the wallets queried. No image when nothing is open.
func buildPositionsEmbed(username string, targets []database.Wallet, positions []walletPosition) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Hyperliquid Positions for " + username,
		Color: embedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "Wallets: " + joinLabels(targets),
			IconURL: footerIconURL,
		},
	}

	if len(positions) == 0 {
		embed.Description = "No positions found."
		return embed
	}

	sortByPnl(positions)

	var sb strings.Builder
	pnls := make([]decimal.Decimal, 0, len(positions))
	for _, wp := range positions {
		sb.WriteString(formatPositionBlock(wp))
		pnls = append(pnls, parseDecimal(wp.position.UnrealizedPnl))
	}

	embed.Description = sb.String()
	embed.Image = &discordgo.MessageEmbedImage{
		URL: analytics.ImageFor(analytics.AggregatePnL(pnls)),
	}
	return embed
}

func formatPositionBlock(wp walletPosition) string {
	p := wp.position

	szi := parseDecimal(p.Szi)
	entry := parseDecimal(p.EntryPx)
	pnl := parseDecimal(p.UnrealizedPnl)
	roe := parseDecimal(p.ReturnOnEquity)
	liq := parseDecimal(p.LiquidationPx)

	// A zero size makes the current price underivable; the block is then
	// rendered without a direction.
	current, ok := analytics.CurrentPrice(parseDecimal(p.PositionValue), szi)
	header := p.Coin
	if ok {
		header += " " + analytics.Direction(current, entry)
	}
	header += fmt.Sprintf(" (%s)", walletLabel(wp.wallet))

	sentiment := "🟢"
	sign := "+"
	if pnl.IsNegative() {
		sentiment = "🔴"
		sign = ""
	}

	liqStr := "N/A"
	if !liq.IsZero() {
		liqStr = "$" + liq.StringFixed(4)
	}

	return fmt.Sprintf("**%s**\n%s PNL: %s$%s (%s%% ROE)\nEntry: $%s | Current: $%s\nLiquidation: %s | Drop to Liq: %s\n\n",
		header,
		sentiment, sign, pnl.StringFixed(2), roe.Mul(hundred).StringFixed(2),
		entry.StringFixed(4), current.StringFixed(4),
		liqStr, analytics.DropToLiquidation(current, liq),
	)
}

func joinLabels(wallets []database.Wallet) string {
	labels := make([]string, 0, len(wallets))
	for _, w := range wallets {
		if w.Name != "" {
			labels = append(labels, w.Name)
		} else {
			labels = append(labels, w.Address)
		}
	}
	return strings.Join(labels, ", ")
}
