package cards

import "math/rand"

const (
	// DeckSize is the number of cards in one standard deck
	DeckSize = 52
	// ShoeDecks is the number of decks in a shoe
	ShoeDecks = 6
	// ShoeSize is the number of cards in a full shoe
	ShoeSize = ShoeDecks * DeckSize
)

// Shoe represents multiple decks of cards
type Shoe struct {
	Cards Stack
}

// NewShoe creates a new shoe with a given number of decks, shuffled with r
func NewShoe(numDecks int, r *rand.Rand) Shoe {
	cards := make(Stack, 0, numDecks*DeckSize)
	for i := 0; i < numDecks; i++ {
		cards.AddCards(NewDeck()...)
	}
	return Shoe{Cards: ShuffleCards(cards, r)}
}

// Len returns the number of cards left in the shoe
func (s *Shoe) Len() int {
	return len(s.Cards)
}

// Empty reports whether the shoe has run out of cards
func (s *Shoe) Empty() bool {
	return len(s.Cards) == 0
}

// Draw removes a card of the requested rank from the shoe.
// Which suit comes out is decided by shoe order.
func (s *Shoe) Draw(rank Rank) (Card, bool) {
	return s.Cards.TakeRank(rank)
}

// DrawCard removes the given card from the shoe, or another card of its rank
// when that one is gone.
func (s *Shoe) DrawCard(card Card) (Card, bool) {
	return s.Cards.TakeCard(card)
}
