package domain

import (
	"fmt"
	"strings"

	"github.com/lazharichir/shoecount/cards"
	"github.com/shopspring/decimal"
)

// Snapshot is the read model of a counter after a reset or a deal
type Snapshot struct {
	SessionID      string          `json:"sessionId"`
	RunningCount   decimal.Decimal `json:"runningCount"`
	TrueCount      decimal.Decimal `json:"trueCount"`
	CardsRemaining int             `json:"cardsRemaining"`
	CardsDealt     int             `json:"cardsDealt"`
	LastDealt      []cards.Card    `json:"lastDealt"`
	TopRanks       []RankCount     `json:"topRanks"`
	Advice         Advice          `json:"advice"`
	Bust           []BustOdds      `json:"bust"`
	BustAvailable  bool            `json:"bustAvailable"`
	// Refilled is set when the deal that produced this snapshot found the shoe empty
	Refilled bool `json:"refilled"`
}

// Snapshot collects every statistic of the current state
func (c *ShoeCounter) Snapshot() Snapshot {
	bust, ok := c.BustProbabilities()
	return Snapshot{
		SessionID:      c.ID,
		RunningCount:   c.runningCount,
		TrueCount:      c.TrueCount().Round(2),
		CardsRemaining: c.CardsRemaining(),
		CardsDealt:     c.cardsDealt,
		LastDealt:      c.LastDealt(),
		TopRanks:       c.TopRanks(TopRankCount),
		Advice:         c.Advice(),
		Bust:           bust,
		BustAvailable:  ok,
	}
}

// Lines renders the snapshot as the plain-text readout of the counter
func (s Snapshot) Lines() []string {
	last := make([]string, 0, len(s.LastDealt))
	for _, c := range s.LastDealt {
		last = append(last, c.String())
	}

	top := make([]string, 0, len(s.TopRanks))
	for _, rc := range s.TopRanks {
		top = append(top, fmt.Sprintf("%s (%d)", rc.Rank, rc.Count))
	}

	lines := []string{
		"Last Dealt: " + strings.Join(last, " "),
		"Running Count: " + FormatRunningCount(s.RunningCount),
		"True Count: " + s.TrueCount.StringFixed(2),
		"Betting Advice: " + string(s.Advice),
		fmt.Sprintf("Cards Remaining: %d", s.CardsRemaining),
		"Top 7 Likely Cards: " + strings.Join(top, ", "),
	}

	if !s.BustAvailable {
		return append(lines, "Bust Probabilities: Deck Empty")
	}

	lines = append(lines, "Bust Probabilities:")
	for _, b := range s.Bust {
		lines = append(lines, fmt.Sprintf("%d: %s%%", b.Total, b.Percent.StringFixed(1)))
	}
	return lines
}
