package domain

import (
	"github.com/lazharichir/shoecount/cards"
	"github.com/shopspring/decimal"
)

// wongHalves holds the Wong Halves weight of every rank
var wongHalves = map[cards.Rank]decimal.Decimal{
	cards.Two:   decimal.RequireFromString("0.5"),
	cards.Three: decimal.NewFromInt(1),
	cards.Four:  decimal.NewFromInt(1),
	cards.Five:  decimal.RequireFromString("1.5"),
	cards.Six:   decimal.NewFromInt(1),
	cards.Seven: decimal.RequireFromString("0.5"),
	cards.Eight: decimal.Zero,
	cards.Nine:  decimal.RequireFromString("-0.5"),
	cards.Ten:   decimal.NewFromInt(-1),
	cards.Jack:  decimal.NewFromInt(-1),
	cards.Queen: decimal.NewFromInt(-1),
	cards.King:  decimal.NewFromInt(-1),
	cards.Ace:   decimal.NewFromInt(-1),
}

// Weight returns the Wong Halves weight of rank
func Weight(rank cards.Rank) (decimal.Decimal, bool) {
	w, ok := wongHalves[rank]
	return w, ok
}

// WeightsLegend is the one-line reference of card values shown next to the counter
func WeightsLegend() string {
	return "Card Values: 5 (+1.5) | 3,4,6 (+1) | 2,7 (+0.5) | 8 (0) | 9 (-0.5) | 10,J,Q,K,A (-1)"
}

// FormatRunningCount prints whole counts without decimals and halves with one
func FormatRunningCount(rc decimal.Decimal) string {
	if rc.IsInteger() {
		return rc.StringFixed(0)
	}
	return rc.StringFixed(1)
}
