package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lazharichir/shoecount/cards"
	"github.com/lazharichir/shoecount/domain"
	"github.com/lazharichir/shoecount/domain/commands"
	"github.com/lazharichir/shoecount/server/connection"
	"github.com/lazharichir/shoecount/server/events"
)

// SnapshotMessage is the envelope name of counter snapshots
const SnapshotMessage = "SNAPSHOT"

// ErrUnknownCommand is returned for commands the router does not know
var ErrUnknownCommand = errors.New("unknown command type")

// CommandRouter routes incoming commands to the appropriate handler
type CommandRouter struct {
	registry *domain.Registry
}

// NewCommandRouter creates a new command router
func NewCommandRouter(registry *domain.Registry) *CommandRouter {
	return &CommandRouter{
		registry: registry,
	}
}

// HandleCommand processes an incoming command message
func (r *CommandRouter) HandleCommand(client *connection.Client, message []byte) error {
	// First determine command type
	var baseCmd struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &baseCmd); err != nil {
		return fmt.Errorf("malformed command: %w", err)
	}

	session, err := r.registry.Get(client.SessionID)
	if err != nil {
		return err
	}

	switch baseCmd.Name {
	case commands.DealCard{}.Name():
		var cmd commands.DealCard
		if err := json.Unmarshal(message, &cmd); err != nil {
			return fmt.Errorf("malformed command: %w", err)
		}
		return r.handleDealCard(client, session, cmd)

	case commands.ResetShoe{}.Name():
		return r.SendSnapshot(client, session.Reset())

	case commands.ReplaySession{}.Name():
		snapshot, err := r.registry.Replay(session.ID)
		if err != nil {
			return err
		}
		return r.SendSnapshot(client, snapshot)

	case commands.GetSnapshot{}.Name():
		return r.SendSnapshot(client, session.Snapshot())

	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, baseCmd.Name)
	}
}

func (r *CommandRouter) handleDealCard(client *connection.Client, session *domain.Session, cmd commands.DealCard) error {
	if cmd.Card != "" {
		card, err := cards.CardFromString(cmd.Card)
		if err != nil {
			return err
		}
		return r.SendSnapshot(client, session.DealCard(card))
	}

	rank, err := cards.RankFromKey(cmd.Key)
	if err != nil {
		return err
	}

	return r.SendSnapshot(client, session.Deal(rank))
}

// SendSnapshot queues a snapshot envelope for the client without blocking
func (r *CommandRouter) SendSnapshot(client *connection.Client, snapshot domain.Snapshot) error {
	envelope, err := events.NewEnvelope(SnapshotMessage, snapshot)
	if err != nil {
		return err
	}

	if !client.Enqueue(envelope) {
		return connection.ErrSendQueueFull
	}
	return nil
}
