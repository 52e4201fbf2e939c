package domain

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lazharichir/shoecount/cards"
	"github.com/lazharichir/shoecount/domain/events"
	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
)

// ErrSessionNotFound is returned for unknown session IDs
var ErrSessionNotFound = errors.New("session not found")

// Registry keeps the open counting sessions and records their events
type Registry struct {
	sessions map[string]*Session
	store    events.EventStore
	log      *logrus.Entry

	// NewRand supplies the shuffle source of each new counter
	NewRand func() *rand.Rand

	eventHandlers []events.EventHandler
	mutex         sync.RWMutex
}

// NewRegistry creates a registry that appends every session event to store
func NewRegistry(store events.EventStore, log *logrus.Entry) *Registry {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Registry{
		sessions: make(map[string]*Session),
		store:    store,
		log:      log,
		NewRand:  cards.NewRand,
	}
}

// Open starts a new session with a full, shuffled shoe
func (r *Registry) Open() *Session {
	id := uuid.NewString()
	session := &Session{
		ID:       id,
		OpenedAt: time.Now(),
		counter:  r.newCounter(id),
	}

	r.mutex.Lock()
	r.sessions[id] = session
	r.mutex.Unlock()

	r.emitEvent(events.SessionOpened{
		SessionID: id,
		At:        session.OpenedAt,
	})

	return session
}

func (r *Registry) newCounter(id string) *ShoeCounter {
	counter := NewShoeCounter(id, r.NewRand())
	counter.RegisterEventHandler(r.emitEvent)
	return counter
}

// Get retrieves a session by ID
func (r *Registry) Get(sessionID string) (*Session, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	session, exists := r.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	return session, nil
}

// Close ends a session and drops its event history once handlers have seen SessionClosed.
func (r *Registry) Close(sessionID string) error {
	r.mutex.Lock()
	session, exists := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.mutex.Unlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	r.emitEvent(events.SessionClosed{
		SessionID:  sessionID,
		CardsDealt: session.Snapshot().CardsDealt,
		At:         time.Now(),
	})
	r.store.Forget(sessionID)

	return nil
}

// Sessions returns the open sessions, oldest first
func (r *Registry) Sessions() []*Session {
	r.mutex.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mutex.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].OpenedAt.Equal(sessions[j].OpenedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].OpenedAt.Before(sessions[j].OpenedAt)
	})
	return sessions
}

// Events returns the recorded history of a session
func (r *Registry) Events(sessionID string) ([]events.Event, error) {
	return r.store.LoadEvents(sessionID)
}

// Replay rebuilds the counter of a session from its recorded deals since the
// last shuffle and swaps it in. No events are recorded while replaying.
func (r *Registry) Replay(sessionID string) (Snapshot, error) {
	session, err := r.Get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	history, err := r.store.LoadEvents(sessionID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load events: %w", err)
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()

	counter := NewShoeCounter(sessionID, r.NewRand())
	for _, event := range dealsSinceShuffle(history) {
		counter.deal(event.Card)
	}
	counter.RegisterEventHandler(r.emitEvent)
	session.counter = counter

	r.log.WithFields(logrus.Fields{
		"session":    sessionID,
		"cardsDealt": counter.CardsDealt(),
	}).Info("session replayed")

	return counter.Snapshot(), nil
}

func dealsSinceShuffle(history []events.Event) []events.CardDealt {
	var deals []events.CardDealt
	for _, event := range history {
		switch e := event.(type) {
		case events.ShoeShuffled:
			deals = deals[:0]
		case events.CardDealt:
			deals = append(deals, e)
		}
	}
	return deals
}

// AddEventHandler adds an event handler to the registry
func (r *Registry) AddEventHandler(handler events.EventHandler) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.eventHandlers = append(r.eventHandlers, handler)
}

// emitEvent stores the event and notifies all registered handlers
func (r *Registry) emitEvent(event events.Event) {
	if r.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		r.log.Debug(litter.Sdump(event))
	}

	if err := r.store.Append(event); err != nil {
		r.log.WithError(err).WithField("event", event.Name()).Warn("event not stored")
	}

	r.mutex.RLock()
	handlers := r.eventHandlers
	r.mutex.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
