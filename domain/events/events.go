package events

import (
	"time"

	"github.com/lazharichir/shoecount/cards"
	"github.com/shopspring/decimal"
)

type EventHandler func(event Event)

type Event interface {
	Name() string
}

// ShuffleReason tells why a shoe was rebuilt
type ShuffleReason string

const (
	ShuffleReasonReset     ShuffleReason = "reset"
	ShuffleReasonExhausted ShuffleReason = "exhausted"
)

// Session lifecycle events
type SessionOpened struct {
	SessionID string    `json:"sessionId"`
	At        time.Time `json:"at"`
}

func (s SessionOpened) Name() string { return "SESSION_OPENED" }

type SessionClosed struct {
	SessionID  string    `json:"sessionId"`
	CardsDealt int       `json:"cardsDealt"`
	At         time.Time `json:"at"`
}

func (s SessionClosed) Name() string { return "SESSION_CLOSED" }

// Shoe events
type ShoeShuffled struct {
	SessionID string        `json:"sessionId"`
	Reason    ShuffleReason `json:"reason"`
	Cards     int           `json:"cards"`
	At        time.Time     `json:"at"`
}

func (s ShoeShuffled) Name() string { return "SHOE_SHUFFLED" }

type CardDealt struct {
	SessionID    string          `json:"sessionId"`
	Card         cards.Card      `json:"card"`
	Weight       decimal.Decimal `json:"weight"`
	RunningCount decimal.Decimal `json:"runningCount"`
	CardsDealt   int             `json:"cardsDealt"`
	At           time.Time       `json:"at"`
}

func (c CardDealt) Name() string { return "CARD_DEALT" }
