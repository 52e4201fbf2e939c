package cards

import (
	"math/rand"
	"time"
)

// NewDeck creates a standard deck of 52 cards
func NewDeck() Stack {
	deck := make(Stack, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck.AddCard(Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// NewRand returns a time-seeded random source for shuffling
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ShuffleCards returns a shuffled copy of cards.
// A nil r falls back to a time-seeded source.
func ShuffleCards(cards Stack, r *rand.Rand) Stack {
	if r == nil {
		r = NewRand()
	}

	shuffled := make(Stack, len(cards))
	copy(shuffled, cards)

	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}
