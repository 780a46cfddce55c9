// Package analytics derives display fields from raw position data.
// Everything in here is a pure function over decimals so the command
// handlers stay free of arithmetic.
package analytics

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Direction classifies a position as Long or Short by comparing the
// current price against the entry price. Equal prices classify as Short;
// the comparison is strictly greater-than.
func Direction(currentPrice, entryPrice decimal.Decimal) string {
	if currentPrice.GreaterThan(entryPrice) {
		return "Long"
	}
	return "Short"
}

// CurrentPrice derives the mark price from notional value and signed
// size. ok is false when the size is zero, in which case the position
// cannot be classified and callers should render without one.
func CurrentPrice(positionValue, szi decimal.Decimal) (decimal.Decimal, bool) {
	if szi.IsZero() {
		return decimal.Zero, false
	}
	return positionValue.Div(szi), true
}

// DropToLiquidation formats the percentage distance between the current
// price and the liquidation price. Positions without a liquidation price,
// or already at or below it, report "N/A" rather than a negative number.
func DropToLiquidation(currentPrice, liquidationPrice decimal.Decimal) string {
	if liquidationPrice.IsZero() || currentPrice.IsZero() {
		return "N/A"
	}
	drop := currentPrice.Sub(liquidationPrice).Div(currentPrice).Mul(hundred)
	if !drop.IsPositive() {
		return "N/A"
	}
	return drop.StringFixed(2) + "%"
}

// AggregatePnL sums unrealized PnL across positions.
func AggregatePnL(pnls []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, pnl := range pnls {
		total = total.Add(pnl)
	}
	return total
}

// Sentiment images attached to position summaries. Winning days get the
// positive set, losing days the negative one.
var (
	positiveImages = []string{
		"https://i.ibb.co/qDZXRcp/cash.png",
		"https://i.ibb.co/tBVxygN/cheers.png",
		"https://i.ibb.co/vYKzp5V/happy.png",
		"https://i.ibb.co/9TccRPJ/hypurr.png",
		"https://i.ibb.co/nbm27Kd/meowdy.png",
		"https://i.ibb.co/FkQKZ2N/saiyan.png",
		"https://i.ibb.co/Lr52ghG/theories.png",
		"https://i.ibb.co/xSrZnkB/thumbs-up.png",
	}
	negativeImages = []string{
		"https://i.ibb.co/nzzd8z1/cry.png",
		"https://i.ibb.co/vjQymsP/dafuq.png",
		"https://i.ibb.co/xMpmy78/dead.png",
		"https://i.ibb.co/FY36DFB/fire-panic.png",
		"https://i.ibb.co/88k6Q9C/this-is-fine.png",
		"https://i.ibb.co/yNvjSD8/shook.png",
		"https://i.ibb.co/gbY1ZTZ/shrug.png",
		"https://i.ibb.co/3WfK2Hs/smoking.png",
	}
)

// ImageFor picks a random image from the positive set when total PnL is
// non-negative, otherwise from the negative set.
func ImageFor(totalPnl decimal.Decimal) string {
	images := positiveImages
	if totalPnl.IsNegative() {
		images = negativeImages
	}
	return images[rand.Intn(len(images))]
}
