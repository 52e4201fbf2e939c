package domain

import (
	"sync"
	"time"

	"github.com/lazharichir/shoecount/cards"
)

// Session owns one counter and serialises access to it
type Session struct {
	ID       string
	OpenedAt time.Time

	counter *ShoeCounter
	mutex   sync.Mutex
}

// Deal records a card of the given rank
func (s *Session) Deal(rank cards.Rank) Snapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.counter.DealCard(rank)
}

// DealCard records an exact card. The suit is kept for display; when that
// card is gone another one of the same rank is taken.
func (s *Session) DealCard(card cards.Card) Snapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.counter.deal(card)
}

// Reset reshuffles the shoe
func (s *Session) Reset() Snapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.counter.Reset()
	return s.counter.Snapshot()
}

// Snapshot returns the current statistics
func (s *Session) Snapshot() Snapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.counter.Snapshot()
}
