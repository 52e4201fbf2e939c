package domain

import (
	"slices"

	"github.com/lazharichir/shoecount/cards"
	"github.com/shopspring/decimal"
)

// TopRankCount is how many ranks the likely-cards list shows
const TopRankCount = 7

// Advice is a betting recommendation derived from the true count
type Advice string

const (
	AdviceIncrease         Advice = "Increase Bet"
	AdviceSlightlyIncrease Advice = "Slightly Increase Bet"
	AdviceDecrease         Advice = "Decrease Bet"
	AdviceSlightlyDecrease Advice = "Slightly Decrease Bet"
	AdviceNormal           Advice = "Normal"
)

var (
	deckSize = decimal.NewFromInt(cards.DeckSize)
	hundred  = decimal.NewFromInt(100)

	increaseAt         = decimal.NewFromInt(2)
	slightlyIncreaseAt = decimal.NewFromInt(1)
	decreaseAt         = decimal.RequireFromString("-1.5")
	slightlyDecreaseAt = decimal.RequireFromString("-0.5")
)

// AdviceFor maps a true count to betting advice. The first matching threshold wins.
func AdviceFor(trueCount decimal.Decimal) Advice {
	switch {
	case trueCount.GreaterThanOrEqual(increaseAt):
		return AdviceIncrease
	case trueCount.GreaterThanOrEqual(slightlyIncreaseAt):
		return AdviceSlightlyIncrease
	case trueCount.LessThanOrEqual(decreaseAt):
		return AdviceDecrease
	case trueCount.LessThanOrEqual(slightlyDecreaseAt):
		return AdviceSlightlyDecrease
	default:
		return AdviceNormal
	}
}

// RemainingDecks returns (312 - cards dealt) / 52, unrounded
func (c *ShoeCounter) RemainingDecks() decimal.Decimal {
	return decimal.NewFromInt(int64(cards.ShoeSize - c.cardsDealt)).Div(deckSize)
}

// TrueCount returns the running count per remaining deck, or zero when no deck remains
func (c *ShoeCounter) TrueCount() decimal.Decimal {
	remaining := int64(cards.ShoeSize - c.cardsDealt)
	if remaining <= 0 {
		return decimal.Zero
	}
	// rc / (remaining/52), multiplied first so whole results stay exact
	return c.runningCount.Mul(deckSize).Div(decimal.NewFromInt(remaining))
}

// Advice returns the betting advice for the current true count
func (c *ShoeCounter) Advice() Advice {
	return AdviceFor(c.TrueCount())
}

// RankCount is the number of cards of one rank left in the shoe
type RankCount struct {
	Rank  cards.Rank `json:"rank"`
	Count int        `json:"count"`
}

// TopRanks returns up to n ranks with the most cards left, highest count first.
// Equal counts keep rank order, two through ace. Exhausted ranks are left out.
func (c *ShoeCounter) TopRanks(n int) []RankCount {
	counts := c.shoe.Cards.CountByRank()

	ranks := make([]RankCount, 0, len(cards.Ranks))
	for _, rank := range cards.Ranks {
		if counts[rank] > 0 {
			ranks = append(ranks, RankCount{Rank: rank, Count: counts[rank]})
		}
	}

	slices.SortStableFunc(ranks, func(a, b RankCount) int {
		return b.Count - a.Count
	})

	if n < len(ranks) {
		ranks = ranks[:n]
	}
	return ranks
}

// BustTotals are the hard totals bust odds are reported for
var BustTotals = []int{12, 13, 14, 15, 16}

// bustRanks lists the ranks that bust each hard total. An ace counts as one and never busts.
var bustRanks = map[int][]cards.Rank{
	12: {cards.Ten, cards.Jack, cards.Queen, cards.King},
	13: {cards.Nine, cards.Ten, cards.Jack, cards.Queen, cards.King},
	14: {cards.Eight, cards.Nine, cards.Ten, cards.Jack, cards.Queen, cards.King},
	15: {cards.Seven, cards.Eight, cards.Nine, cards.Ten, cards.Jack, cards.Queen, cards.King},
	16: {cards.Six, cards.Seven, cards.Eight, cards.Nine, cards.Ten, cards.Jack, cards.Queen, cards.King},
}

// BustOdds is the chance, in percent, that the next card busts a hard total
type BustOdds struct {
	Total   int             `json:"total"`
	Percent decimal.Decimal `json:"percent"`
}

// BustProbabilities returns the bust odds for every total in BustTotals,
// rounded to one decimal. ok is false when the shoe is empty.
func (c *ShoeCounter) BustProbabilities() (odds []BustOdds, ok bool) {
	remaining := c.shoe.Len()
	if remaining == 0 {
		return nil, false
	}

	counts := c.shoe.Cards.CountByRank()
	odds = make([]BustOdds, 0, len(BustTotals))
	for _, total := range BustTotals {
		busting := 0
		for _, rank := range bustRanks[total] {
			busting += counts[rank]
		}
		odds = append(odds, BustOdds{Total: total, Percent: percentOf(busting, remaining)})
	}

	return odds, true
}

// percentOf returns part/whole as a percentage rounded to one decimal,
// halves away from zero: 1 of 80 is 1.3.
func percentOf(part, whole int) decimal.Decimal {
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(whole))).
		Round(1)
}
