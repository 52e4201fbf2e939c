package domain

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/lazharichir/shoecount/cards"
	"github.com/lazharichir/shoecount/domain/events"
	"github.com/shopspring/decimal"
)

// HistorySize is how many recently dealt cards a counter remembers
const HistorySize = 5

// ShoeCounter tracks a six-deck shoe and its Wong Halves count.
// It is not safe for concurrent use; see Session.
type ShoeCounter struct {
	ID string

	shoe         cards.Shoe
	runningCount decimal.Decimal
	cardsDealt   int
	lastDealt    []cards.Card
	rand         *rand.Rand

	eventHandlers []events.EventHandler
}

// NewShoeCounter creates a counter with a freshly shuffled shoe.
// An empty id gets a generated one and a nil r a time-seeded source.
func NewShoeCounter(id string, r *rand.Rand) *ShoeCounter {
	if id == "" {
		id = uuid.NewString()
	}
	if r == nil {
		r = cards.NewRand()
	}

	c := &ShoeCounter{
		ID:   id,
		rand: r,
	}
	c.refill()

	return c
}

// Reset rebuilds and shuffles the shoe and zeroes every counter
func (c *ShoeCounter) Reset() {
	c.refill()
	c.emitEvent(events.ShoeShuffled{
		SessionID: c.ID,
		Reason:    events.ShuffleReasonReset,
		Cards:     c.shoe.Len(),
		At:        time.Now(),
	})
}

func (c *ShoeCounter) refill() {
	c.shoe = cards.NewShoe(cards.ShoeDecks, c.rand)
	c.runningCount = decimal.Zero
	c.cardsDealt = 0
	c.lastDealt = make([]cards.Card, 0, HistorySize)
}

// DealCard removes a card of the given rank from the shoe and updates the count.
//
// An empty shoe is refilled first and the returned snapshot has Refilled set.
// Ranks outside the thirteen valid ones leave the state untouched.
func (c *ShoeCounter) DealCard(rank cards.Rank) Snapshot {
	return c.deal(cards.Card{Rank: rank})
}

// deal draws want from the shoe. A want without a suit takes the first card of its rank.
func (c *ShoeCounter) deal(want cards.Card) Snapshot {
	weight, ok := Weight(want.Rank)
	if !ok {
		return c.Snapshot()
	}

	refilled := false
	if c.shoe.Empty() {
		c.refill()
		refilled = true
		c.emitEvent(events.ShoeShuffled{
			SessionID: c.ID,
			Reason:    events.ShuffleReasonExhausted,
			Cards:     c.shoe.Len(),
			At:        time.Now(),
		})
	}

	var card cards.Card
	if want.Suit != "" {
		card, ok = c.shoe.DrawCard(want)
	} else {
		card, ok = c.shoe.Draw(want.Rank)
	}
	if !ok {
		snapshot := c.Snapshot()
		snapshot.Refilled = refilled
		return snapshot
	}

	c.cardsDealt++
	c.runningCount = c.runningCount.Add(weight)
	c.remember(card)

	c.emitEvent(events.CardDealt{
		SessionID:    c.ID,
		Card:         card,
		Weight:       weight,
		RunningCount: c.runningCount,
		CardsDealt:   c.cardsDealt,
		At:           time.Now(),
	})

	snapshot := c.Snapshot()
	snapshot.Refilled = refilled
	return snapshot
}

// remember appends card to the history, evicting the oldest entry when full
func (c *ShoeCounter) remember(card cards.Card) {
	if len(c.lastDealt) < HistorySize {
		c.lastDealt = append(c.lastDealt, card)
		return
	}
	copy(c.lastDealt, c.lastDealt[1:])
	c.lastDealt[HistorySize-1] = card
}

// RunningCount returns the exact running count
func (c *ShoeCounter) RunningCount() decimal.Decimal {
	return c.runningCount
}

// CardsDealt returns how many cards were dealt since the last reset
func (c *ShoeCounter) CardsDealt() int {
	return c.cardsDealt
}

// CardsRemaining returns the number of cards left in the shoe
func (c *ShoeCounter) CardsRemaining() int {
	return c.shoe.Len()
}

// LastDealt returns the most recent cards, oldest first
func (c *ShoeCounter) LastDealt() []cards.Card {
	out := make([]cards.Card, len(c.lastDealt))
	copy(out, c.lastDealt)
	return out
}

// RegisterEventHandler registers a callback function that will be called when events occur
func (c *ShoeCounter) RegisterEventHandler(handler events.EventHandler) {
	c.eventHandlers = append(c.eventHandlers, handler)
}

// emitEvent notifies all registered handlers of a new event
func (c *ShoeCounter) emitEvent(event events.Event) {
	for _, handler := range c.eventHandlers {
		handler(event)
	}
}
