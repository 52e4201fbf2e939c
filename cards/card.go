package cards

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned when a key press does not map to a rank
var ErrInvalidKey = errors.New("invalid rank key")

// RankFromKey maps a raw key press to a rank.
// "2".."9" map to themselves, "0" maps to "10" and j, q, k, a map to the
// face cards and the ace regardless of case. "10" is accepted as well.
func RankFromKey(key string) (Rank, error) {
	switch strings.ToUpper(key) {
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "0", "10":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
}

// CardFromString creates a card from a string representation
// e.g., "10♠" or "10s" or "10S" -> Card{Suit: Spades, Rank: Ten}
func CardFromString(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %s", s)
	}

	for _, suit := range Suits {
		if strings.HasSuffix(s, string(suit)) {
			rank := Rank(strings.TrimSuffix(s, string(suit)))
			if !rank.Valid() {
				return Card{}, fmt.Errorf("invalid card rank: %s", rank)
			}
			return Card{Suit: suit, Rank: rank}, nil
		}
	}

	var suit Suit
	switch s[len(s)-1:] {
	case "s", "S":
		suit = Spades
	case "h", "H":
		suit = Hearts
	case "d", "D":
		suit = Diamonds
	case "c", "C":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card suit: %s", s[len(s)-1:])
	}

	rank := Rank(strings.ToUpper(s[:len(s)-1]))
	if !rank.Valid() {
		return Card{}, fmt.Errorf("invalid card rank: %s", s[:len(s)-1])
	}

	return Card{Suit: suit, Rank: rank}, nil
}

// Suit represents a card suit
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Suits lists the four suits in deck-building order
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Rank represents a card rank
type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

// Ranks lists the thirteen ranks from two to ace.
// Statistics that need a stable rank order use this one.
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Valid reports whether r is one of the thirteen ranks
func (r Rank) Valid() bool {
	return r.Index() >= 0
}

// Index returns the position of r in Ranks, or -1
func (r Rank) Index() int {
	for i, rank := range Ranks {
		if rank == r {
			return i
		}
	}
	return -1
}

// Card represents a playing card
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// String returns the string representation of a card
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}
