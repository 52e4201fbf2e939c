package connection

import (
	"context"
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrSendQueueFull is returned when a client is not draining its send queue
var ErrSendQueueFull = errors.New("send queue full")

// Client represents a connected counting client
type Client struct {
	ID        string
	SessionID string // counting session owned by this connection
	Conn      *websocket.Conn
	Send      chan []byte
}

// Enqueue queues a message for the write pump without blocking.
// It reports false when the queue is full.
func (c *Client) Enqueue(message []byte) bool {
	select {
	case c.Send <- message:
		return true
	default:
		return false
	}
}

// Manager handles all client connections
type Manager struct {
	clients    map[string]*Client // Map connection IDs to clients
	sessionMap map[string]string  // Map session IDs to connection IDs
	register   chan *Client
	unregister chan *Client
	done       chan struct{} // closed once Start returns
	mutex      sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		sessionMap: make(map[string]string),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start processes connection events until ctx is done
func (m *Manager) Start(ctx context.Context) {
	defer close(m.done)

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-m.register:
			m.add(client)
		case client := <-m.unregister:
			m.remove(client)
		}
	}
}

// Register hands a client to the manager. It reports false once the manager has stopped.
func (m *Manager) Register(client *Client) bool {
	select {
	case m.register <- client:
		return true
	case <-m.done:
		return false
	}
}

// Unregister removes a client and closes its send queue. It reports false once the manager has stopped.
func (m *Manager) Unregister(client *Client) bool {
	select {
	case m.unregister <- client:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manager) add(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.clients[client.ID] = client
	if client.SessionID != "" {
		m.sessionMap[client.SessionID] = client.ID
	}
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.clients[client.ID]; ok {
		if client.SessionID != "" {
			delete(m.sessionMap, client.SessionID)
		}
		delete(m.clients, client.ID)
		close(client.Send)
	}
}

// SendToSession queues a message for the client owning a session.
// It reports false when nobody owns the session or the client is not keeping up.
func (m *Manager) SendToSession(sessionID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	connID, exists := m.sessionMap[sessionID]
	if !exists {
		return false
	}
	client, ok := m.clients[connID]
	if !ok {
		return false
	}

	return client.Enqueue(message)
}
