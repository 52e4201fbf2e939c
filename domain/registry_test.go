package domain

import (
	"math/rand"
	"testing"

	"github.com/lazharichir/shoecount/cards"
	"github.com/lazharichir/shoecount/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() (*Registry, *events.InMemoryEventStore) {
	store := events.NewInMemoryEventStore()
	registry := NewRegistry(store, nil)
	seed := int64(0)
	registry.NewRand = func() *rand.Rand {
		seed++
		return rand.New(rand.NewSource(seed))
	}
	return registry, store
}

func TestRegistry_OpenAndGet(t *testing.T) {
	registry, store := newTestRegistry()

	session := registry.Open()
	require.NotNil(t, session)
	assert.NotEmpty(t, session.ID)

	got, err := registry.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = registry.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	stored, err := store.LoadEvents(session.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "SESSION_OPENED", stored[0].Name())
}

func TestRegistry_SessionsAreIndependent(t *testing.T) {
	registry, _ := newTestRegistry()
	a := registry.Open()
	b := registry.Open()

	a.Deal(cards.Five)
	a.Deal(cards.Five)

	assertDecimal(t, "3", a.Snapshot().RunningCount)
	assert.True(t, b.Snapshot().RunningCount.IsZero())
	assert.Equal(t, 312, b.Snapshot().CardsRemaining)
	assert.Len(t, registry.Sessions(), 2)
}

func TestRegistry_EventsReachHandlersAndStore(t *testing.T) {
	registry, _ := newTestRegistry()

	var got []string
	registry.AddEventHandler(func(e events.Event) { got = append(got, e.Name()) })

	session := registry.Open()
	session.Deal(cards.Ace)
	session.Reset()

	assert.Equal(t, []string{"SESSION_OPENED", "CARD_DEALT", "SHOE_SHUFFLED"}, got)

	history, err := registry.Events(session.ID)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestRegistry_Close(t *testing.T) {
	registry, store := newTestRegistry()
	session := registry.Open()
	session.Deal(cards.Two)

	require.NoError(t, registry.Close(session.ID))

	_, err := registry.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, registry.Close(session.ID), ErrSessionNotFound)
	assert.Empty(t, registry.Sessions())

	history, err := store.LoadEvents(session.ID)
	require.NoError(t, err)
	assert.Empty(t, history, "closed sessions leave nothing behind")
}

func TestRegistry_CloseNotifiesBeforeForgetting(t *testing.T) {
	registry, _ := newTestRegistry()

	var closed events.SessionClosed
	registry.AddEventHandler(func(e events.Event) {
		if c, ok := e.(events.SessionClosed); ok {
			closed = c
		}
	})

	session := registry.Open()
	session.Deal(cards.Two)
	require.NoError(t, registry.Close(session.ID))

	assert.Equal(t, session.ID, closed.SessionID)
	assert.Equal(t, 1, closed.CardsDealt)
}

func TestRegistry_ClosedSessionsDoNotAccumulate(t *testing.T) {
	registry, store := newTestRegistry()

	ids := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		session := registry.Open()
		session.Deal(cards.Five)
		ids = append(ids, session.ID)
		require.NoError(t, registry.Close(session.ID))
	}

	assert.Empty(t, registry.Sessions())
	for _, id := range ids {
		history, err := store.LoadEvents(id)
		require.NoError(t, err)
		require.Empty(t, history)
	}
}

func TestRegistry_Replay(t *testing.T) {
	registry, _ := newTestRegistry()
	session := registry.Open()

	session.Deal(cards.King)
	session.Reset()
	for _, rank := range []cards.Rank{cards.Five, cards.Two, cards.Nine, cards.Ten, cards.Three, cards.Five, cards.Ace} {
		session.Deal(rank)
	}
	before := session.Snapshot()

	replayed, err := registry.Replay(session.ID)
	require.NoError(t, err)

	assert.Equal(t, before.CardsDealt, replayed.CardsDealt)
	assert.Equal(t, before.CardsRemaining, replayed.CardsRemaining)
	assert.True(t, before.RunningCount.Equal(replayed.RunningCount))
	assert.Equal(t, before.LastDealt, replayed.LastDealt, "suits are restored too")
	assert.Equal(t, before.TopRanks, replayed.TopRanks)
	assert.Equal(t, before.Advice, replayed.Advice)

	// the replayed counter keeps reporting events
	var got []string
	registry.AddEventHandler(func(e events.Event) { got = append(got, e.Name()) })
	after := session.Deal(cards.Two)
	assert.Equal(t, []string{"CARD_DEALT"}, got)
	assert.Equal(t, before.CardsDealt+1, after.CardsDealt)

	_, err = registry.Replay("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_ReplayAfterExhaustion(t *testing.T) {
	registry, _ := newTestRegistry()
	session := registry.Open()
	for _, rank := range cards.Ranks {
		for i := 0; i < 24; i++ {
			session.Deal(rank)
		}
	}
	session.Deal(cards.Jack)

	replayed, err := registry.Replay(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, replayed.CardsDealt)
	assertDecimal(t, "-1", replayed.RunningCount)
}

func TestSession_DealCardKeepsSuit(t *testing.T) {
	registry, _ := newTestRegistry()
	session := registry.Open()

	tenHearts := cards.Card{Rank: cards.Ten, Suit: cards.Hearts}
	snapshot := session.DealCard(tenHearts)

	assert.Equal(t, 1, snapshot.CardsDealt)
	assertDecimal(t, "-1", snapshot.RunningCount)
	assert.Equal(t, []cards.Card{tenHearts}, snapshot.LastDealt)

	for i := 0; i < 5; i++ {
		session.DealCard(tenHearts)
	}
	snapshot = session.DealCard(tenHearts)
	assert.Equal(t, 7, snapshot.CardsDealt, "a seventh ten of hearts falls back to another ten")
	assert.Equal(t, cards.Ten, snapshot.LastDealt[HistorySize-1].Rank)
	assert.NotEqual(t, cards.Hearts, snapshot.LastDealt[HistorySize-1].Suit)

	snapshot = session.DealCard(cards.Card{Rank: cards.Rank("11"), Suit: cards.Hearts})
	assert.Equal(t, 7, snapshot.CardsDealt, "invalid ranks are ignored")
}
