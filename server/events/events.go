package events

import (
	"encoding/json"

	"github.com/lazharichir/shoecount/domain/events"
	"github.com/lazharichir/shoecount/server/connection"
	"github.com/sirupsen/logrus"
)

// EventEnvelope wraps an event with its name for client consumption
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// NewEnvelope marshals payload under the given name
func NewEnvelope(name string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(EventEnvelope{
		Name:    name,
		Payload: data,
	})
}

// Dispatcher handles routing events to clients
type Dispatcher struct {
	connMgr *connection.Manager
	log     *logrus.Entry
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager, log *logrus.Entry) *Dispatcher {
	return &Dispatcher{
		connMgr: connMgr,
		log:     log,
	}
}

// HandleEvent sends domain events to the client owning the session
func (d *Dispatcher) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case events.SessionOpened:
		d.log.WithField("session", e.SessionID).Info("session opened")
		return
	case events.SessionClosed:
		d.log.WithFields(logrus.Fields{
			"session":    e.SessionID,
			"cardsDealt": e.CardsDealt,
		}).Info("session closed")
		return
	}

	sessionID := events.ExtractSessionID(event)
	if sessionID == "" {
		return
	}

	envelope, err := NewEnvelope(event.Name(), event)
	if err != nil {
		d.log.WithError(err).Error("failed to marshal event envelope")
		return
	}

	if !d.connMgr.SendToSession(sessionID, envelope) {
		d.log.WithFields(logrus.Fields{
			"session": sessionID,
			"event":   event.Name(),
		}).Debug("event not delivered")
	}
}
