package cards

import "strings"

// Stack represents multiple cards
type Stack []Card

// NewStack creates a new stack with a given number of cards
func NewStack(cards ...Card) Stack {
	return Stack(cards)
}

// AddCard adds a card to the bottom of the stack
func (s *Stack) AddCard(card Card) {
	*s = append(*s, card)
}

// AddCards adds cards to the bottom of the stack
func (s *Stack) AddCards(cards ...Card) {
	*s = append(*s, cards...)
}

// TakeRank removes the first card of the given rank and returns it.
// ok is false when no card of that rank is left.
func (s *Stack) TakeRank(rank Rank) (card Card, ok bool) {
	for i, c := range *s {
		if c.Rank == rank {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// TakeCard removes the given card, falling back to any card of the same rank
func (s *Stack) TakeCard(card Card) (Card, bool) {
	for i, c := range *s {
		if c.Equals(card) {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return c, true
		}
	}
	return s.TakeRank(card.Rank)
}

// CountByRank returns how many cards of each rank are in the stack
func (s Stack) CountByRank() map[Rank]int {
	counts := make(map[Rank]int, len(Ranks))
	for _, c := range s {
		counts[c.Rank]++
	}
	return counts
}

// String returns the cards separated by spaces
func (s Stack) String() string {
	parts := make([]string, 0, len(s))
	for _, c := range s {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}
