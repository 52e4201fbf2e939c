package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lazharichir/shoecount/domain"
	"github.com/lazharichir/shoecount/server/connection"
	"github.com/lazharichir/shoecount/server/events"
	"github.com/lazharichir/shoecount/server/handlers"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	// ErrorMessage is the envelope name of rejected commands
	ErrorMessage = "ERROR"

	pingPeriod = 10 * time.Second
	writeWait  = 5 * time.Second
)

// Server is the websocket presentation adapter over the session registry
type Server struct {
	registry      *domain.Registry
	connMgr       *connection.Manager
	cmdRouter     *handlers.CommandRouter
	dispatcher    *events.Dispatcher
	upgrader      websocket.Upgrader
	allowedOrigin string
	log           *logrus.Entry
}

// SessionResponse represents a session in API responses
type SessionResponse struct {
	ID             string          `json:"id"`
	OpenedAt       time.Time       `json:"openedAt"`
	CardsDealt     int             `json:"cardsDealt"`
	CardsRemaining int             `json:"cardsRemaining"`
	RunningCount   decimal.Decimal `json:"runningCount"`
	TrueCount      decimal.Decimal `json:"trueCount"`
	Advice         domain.Advice   `json:"advice"`
}

// ErrorResponse is sent to clients whose command was rejected
type ErrorResponse struct {
	Error string `json:"error"`
}

// corsMiddleware adds CORS headers to all responses
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// NewServer creates a new counting server. An empty or "*" allowedOrigin accepts any origin.
func NewServer(registry *domain.Registry, allowedOrigin string, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	connMgr := connection.NewManager()
	dispatcher := events.NewDispatcher(connMgr, log)

	// Register dispatcher as event handler for the registry
	registry.AddEventHandler(dispatcher.HandleEvent)

	s := &Server{
		registry:      registry,
		connMgr:       connMgr,
		cmdRouter:     handlers.NewCommandRouter(registry),
		dispatcher:    dispatcher,
		allowedOrigin: allowedOrigin,
		log:           log,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if s.allowedOrigin == "*" {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.allowedOrigin
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/legend", s.corsMiddleware(s.handleGetLegend))
	mux.HandleFunc("/api/sessions", s.corsMiddleware(s.handleGetSessions))
	mux.HandleFunc("/api/sessions/{id}", s.corsMiddleware(s.handleGetSession))
	mux.HandleFunc("/api/sessions/{id}/events", s.corsMiddleware(s.handleGetSessionEvents))
	return mux
}

// Run starts the connection manager. It returns when ctx is done.
func (s *Server) Run(ctx context.Context) {
	s.connMgr.Start(ctx)
}

// Start serves on addr until ctx is done
func (s *Server) Start(ctx context.Context, addr string) error {
	go s.Run(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Warn("shutdown")
		}
	}()

	s.log.WithField("addr", addr).Info("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleWebSocket opens a counting session for every connection
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("error upgrading to websocket")
		return
	}

	session := s.registry.Open()
	client := &connection.Client{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Conn:      conn,
		Send:      make(chan []byte, 256),
	}

	s.log.WithFields(logrus.Fields{
		"remote":  r.RemoteAddr,
		"client":  client.ID,
		"session": session.ID,
	}).Info("client connected")

	if !s.connMgr.Register(client) {
		s.log.WithField("client", client.ID).Warn("server stopping, dropping client")
		conn.Close()
		if err := s.registry.Close(session.ID); err != nil {
			s.log.WithError(err).Warn("closing session")
		}
		return
	}

	if err := s.cmdRouter.SendSnapshot(client, session.Snapshot()); err != nil {
		s.log.WithError(err).Error("failed to send initial snapshot")
	}

	go s.readPump(client)
	go s.writePump(client)
}

// readPump reads commands from the websocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister(client)
		client.Conn.Close()
		if err := s.registry.Close(client.SessionID); err != nil {
			s.log.WithError(err).Warn("closing session")
		}
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithError(err).Warn("unexpected close")
			}
			break
		}

		if err := s.cmdRouter.HandleCommand(client, message); err != nil {
			s.log.WithError(err).WithField("client", client.ID).Debug("command rejected")
			s.sendError(client, err)
		}
	}
}

func (s *Server) sendError(client *connection.Client, cause error) {
	envelope, err := events.NewEnvelope(ErrorMessage, ErrorResponse{Error: cause.Error()})
	if err != nil {
		s.log.WithError(err).Error("failed to marshal error envelope")
		return
	}
	if !client.Enqueue(envelope) {
		s.log.WithField("client", client.ID).Warn("send queue full, dropping error")
	}
}

// writePump sends queued messages and keepalive pings to the websocket connection
func (s *Server) writePump(client *connection.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.log.WithError(err).Warn("error writing message")
				return
			}
		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleGetSessions returns a list of all open sessions
func (s *Server) handleGetSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessions := s.registry.Sessions()
	responses := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		snapshot := session.Snapshot()
		responses = append(responses, SessionResponse{
			ID:             session.ID,
			OpenedAt:       session.OpenedAt,
			CardsDealt:     snapshot.CardsDealt,
			CardsRemaining: snapshot.CardsRemaining,
			RunningCount:   snapshot.RunningCount,
			TrueCount:      snapshot.TrueCount,
			Advice:         snapshot.Advice,
		})
	}

	writeJSON(w, http.StatusOK, responses)
}

// handleGetSession returns the snapshot of one session
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.registry.Get(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, session.Snapshot())
}

// handleGetSessionEvents returns the recorded history of one session
func (s *Server) handleGetSessionEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if _, err := s.registry.Get(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	history, err := s.registry.Events(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	envelopes := make([]json.RawMessage, 0, len(history))
	for _, event := range history {
		envelope, err := events.NewEnvelope(event.Name(), event)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		envelopes = append(envelopes, envelope)
	}

	writeJSON(w, http.StatusOK, envelopes)
}

func (s *Server) handleGetLegend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"system": "Wong Halves",
		"legend": domain.WeightsLegend(),
		"keys":   "Press 2-9, 0 (10), J (Jack), Q (Queen), K (King), A (Ace)",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
