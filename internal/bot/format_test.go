package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unhappyben/HyperliquidPositionsBot/internal/database"
)

func TestWalletLabel(t *testing.T) {
	assert.Equal(t, "main", walletLabel(database.Wallet{Address: "0x1234567890abcdef", Name: "main"}))
	assert.Equal(t, "0x1234...cdef", walletLabel(database.Wallet{Address: "0x1234567890abcdef"}))

	// Addresses too short to truncate are shown as-is.
	assert.Equal(t, "0xabc", walletLabel(database.Wallet{Address: "0xabc"}))
}

func TestFormatPositionBlock(t *testing.T) {
	wp := walletPosition{
		wallet:   database.Wallet{Address: "0x1234567890abcdef", Name: "whale"},
		position: makePosition("ETH", "10", "1900", "20000", "1000", "0.25", "1500").Position,
	}

	block := formatPositionBlock(wp)
	assert.Equal(t,
		"**ETH Long (whale)**\n"+
			"🟢 PNL: +$1000.00 (25.00% ROE)\n"+
			"Entry: $1900.0000 | Current: $2000.0000\n"+
			"Liquidation: $1500.0000 | Drop to Liq: 25.00%\n\n",
		block,
	)
}

func TestFormatPositionBlockZeroSize(t *testing.T) {
	wp := walletPosition{
		wallet:   database.Wallet{Address: "0x1234567890abcdef"},
		position: makePosition("ETH", "0", "1900", "0", "0", "0", "").Position,
	}

	// No derivable current price: the block renders without a direction.
	block := formatPositionBlock(wp)
	assert.Contains(t, block, "**ETH (0x1234...cdef)**")
	assert.Contains(t, block, "Drop to Liq: N/A")
}

func TestSortByPnl(t *testing.T) {
	positions := []walletPosition{
		{position: makePosition("A", "1", "1", "1", "-10", "0", "").Position},
		{position: makePosition("B", "1", "1", "1", "50", "0", "").Position},
		{position: makePosition("C", "1", "1", "1", "3.5", "0", "").Position},
	}

	sortByPnl(positions)

	require.Len(t, positions, 3)
	assert.Equal(t, "B", positions[0].position.Coin)
	assert.Equal(t, "C", positions[1].position.Coin)
	assert.Equal(t, "A", positions[2].position.Coin)
}

func TestJoinLabels(t *testing.T) {
	labels := joinLabels([]database.Wallet{
		{Address: "0xaaa", Name: "main"},
		{Address: "0xbbb"},
	})
	assert.Equal(t, "main, 0xbbb", labels)
}
