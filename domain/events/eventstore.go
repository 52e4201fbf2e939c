package events

import (
	"errors"
	"sync"
)

// ErrNoSessionID is returned when an event carries no session ID
var ErrNoSessionID = errors.New("event has no sessionID")

// EventStore is the interface for storing and retrieving events.
type EventStore interface {
	Append(event Event) error
	LoadEvents(sessionID string) ([]Event, error)
	Forget(sessionID string)
}

// InMemoryEventStore is an in-memory implementation of the EventStore interface.
type InMemoryEventStore struct {
	events map[string][]Event
	mutex  sync.RWMutex
}

// NewInMemoryEventStore creates a new in-memory event store.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[string][]Event),
	}
}

// Append adds a new event to the store.
func (s *InMemoryEventStore) Append(event Event) error {
	sessionID := ExtractSessionID(event)
	if sessionID == "" {
		return ErrNoSessionID
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.events[sessionID] = append(s.events[sessionID], event)
	return nil
}

// LoadEvents retrieves all events for the given sessionID.
func (s *InMemoryEventStore) LoadEvents(sessionID string) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if events, exists := s.events[sessionID]; exists {
		// Make a copy to avoid potential race conditions
		result := make([]Event, len(events))
		copy(result, events)
		return result, nil
	}

	// Return empty slice if no events found
	return []Event{}, nil
}

// Forget drops the history of a session.
func (s *InMemoryEventStore) Forget(sessionID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.events, sessionID)
}
