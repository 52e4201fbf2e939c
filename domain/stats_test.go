package domain

import (
	"testing"

	"github.com/lazharichir/shoecount/cards"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdviceFor(t *testing.T) {
	tests := []struct {
		trueCount string
		want      Advice
	}{
		{"3", AdviceIncrease},
		{"2", AdviceIncrease},
		{"1.99", AdviceSlightlyIncrease},
		{"1", AdviceSlightlyIncrease},
		{"0.99", AdviceNormal},
		{"0.25", AdviceNormal},
		{"0", AdviceNormal},
		{"-0.49", AdviceNormal},
		{"-0.5", AdviceSlightlyDecrease},
		{"-1.49", AdviceSlightlyDecrease},
		{"-1.5", AdviceDecrease},
		{"-4", AdviceDecrease},
	}

	for _, tt := range tests {
		t.Run(tt.trueCount, func(t *testing.T) {
			assert.Equal(t, tt.want, AdviceFor(decimal.RequireFromString(tt.trueCount)))
		})
	}
}

func TestShoeCounter_TrueCount(t *testing.T) {
	t.Run("fresh shoe", func(t *testing.T) {
		c := newTestCounter()
		assertDecimal(t, "6", c.RemainingDecks())
		assert.True(t, c.TrueCount().IsZero())
	})

	t.Run("one deck dealt with a running count of ten", func(t *testing.T) {
		c := newTestCounter()
		dealN(c, cards.Three, 20)
		dealN(c, cards.Ten, 10)
		dealN(c, cards.Eight, 22)

		assert.Equal(t, 52, c.CardsDealt())
		assertDecimal(t, "10", c.RunningCount())
		assertDecimal(t, "5", c.RemainingDecks())
		assertDecimal(t, "2", c.TrueCount())
		assert.Equal(t, AdviceIncrease, c.Advice())
	})

	t.Run("one deck dealt with a running count of five", func(t *testing.T) {
		c := newTestCounter()
		dealN(c, cards.Three, 5)
		dealN(c, cards.Eight, 24)
		dealN(c, cards.Two, 2)
		dealN(c, cards.Ten, 1)
		dealN(c, cards.Seven, 10)
		dealN(c, cards.Nine, 10)

		assert.Equal(t, 52, c.CardsDealt())
		assertDecimal(t, "5", c.RunningCount())
		assertDecimal(t, "1", c.TrueCount())
		assert.Equal(t, AdviceSlightlyIncrease, c.Advice())
	})

	t.Run("fractional decks remaining", func(t *testing.T) {
		c := newTestCounter()
		dealN(c, cards.Five, 1)

		assertDecimal(t, "1.5", c.RunningCount())
		// 1.5 * 52 / 311
		assert.Equal(t, "0.25", c.TrueCount().Round(2).String())
		assert.Equal(t, AdviceNormal, c.Advice())
	})

	t.Run("negative count", func(t *testing.T) {
		c := newTestCounter()
		dealN(c, cards.King, 10)

		// -10 * 52 / 302
		assert.Equal(t, "-1.72", c.TrueCount().Round(2).String())
		assert.Equal(t, AdviceDecrease, c.Advice())
	})
}

func dealN(c *ShoeCounter, rank cards.Rank, n int) {
	for i := 0; i < n; i++ {
		c.DealCard(rank)
	}
}

func TestShoeCounter_TopRanks(t *testing.T) {
	t.Run("fresh shoe ties keep rank order", func(t *testing.T) {
		c := newTestCounter()
		top := c.TopRanks(TopRankCount)

		require.Len(t, top, 7)
		want := []cards.Rank{cards.Two, cards.Three, cards.Four, cards.Five, cards.Six, cards.Seven, cards.Eight}
		for i, rc := range top {
			assert.Equal(t, want[i], rc.Rank)
			assert.Equal(t, 24, rc.Count)
		}
	})

	t.Run("depleted ranks sink", func(t *testing.T) {
		c := newTestCounter()
		dealN(c, cards.Two, 3)
		dealN(c, cards.Three, 1)
		dealN(c, cards.Ace, 24)

		top := c.TopRanks(TopRankCount)
		want := []RankCount{
			{cards.Four, 24}, {cards.Five, 24}, {cards.Six, 24}, {cards.Seven, 24},
			{cards.Eight, 24}, {cards.Nine, 24}, {cards.Ten, 24},
		}
		assert.Equal(t, want, top)

		all := c.TopRanks(20)
		require.Len(t, all, 12, "aces are gone")
		assert.Equal(t, RankCount{cards.Three, 23}, all[10])
		assert.Equal(t, RankCount{cards.Two, 21}, all[11])
	})
}

func TestShoeCounter_BustProbabilities(t *testing.T) {
	t.Run("fresh shoe", func(t *testing.T) {
		c := newTestCounter()
		odds, ok := c.BustProbabilities()
		require.True(t, ok)
		require.Len(t, odds, 5)

		want := map[int]string{12: "30.8", 13: "38.5", 14: "46.2", 15: "53.8", 16: "61.5"}
		for _, o := range odds {
			assert.Equal(t, want[o.Total], o.Percent.StringFixed(1), "total %d", o.Total)
		}
		assert.Equal(t, 12, odds[0].Total)
		assert.Equal(t, 16, odds[4].Total)
	})

	t.Run("aces never bust", func(t *testing.T) {
		c := newTestCounter()
		dealN(c, cards.Ace, 24)
		odds, ok := c.BustProbabilities()
		require.True(t, ok)
		// 96 / 288
		assert.Equal(t, "33.3", odds[0].Percent.StringFixed(1))
	})

	t.Run("only ten-value cards left", func(t *testing.T) {
		c := newTestCounter()
		for _, rank := range []cards.Rank{cards.Two, cards.Three, cards.Four, cards.Five, cards.Six, cards.Seven, cards.Eight, cards.Nine, cards.Ace} {
			dealN(c, rank, 24)
		}
		odds, ok := c.BustProbabilities()
		require.True(t, ok)
		for _, o := range odds {
			assert.Equal(t, "100.0", o.Percent.StringFixed(1))
		}
	})

	t.Run("empty shoe", func(t *testing.T) {
		c := newTestCounter()
		dealAll(c)
		odds, ok := c.BustProbabilities()
		assert.False(t, ok)
		assert.Nil(t, odds)
	})
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		part, whole int
		want        string
	}{
		{1, 80, "1.3"}, // 1.25 rounds half away from zero
		{3, 80, "3.8"}, // 3.75
		{1, 3, "33.3"},
		{2, 3, "66.7"},
		{0, 10, "0"},
		{10, 10, "100"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, percentOf(tt.part, tt.whole).String(), "%d/%d", tt.part, tt.whole)
	}
}
