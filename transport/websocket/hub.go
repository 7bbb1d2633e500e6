package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

// Hub keeps the connected clients of every session and fans session updates out to them.
type Hub struct {
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:   logger.With("component", "hub"),
		sessions: make(map[string]map[*client]struct{}),
	}
}

// Publish sends the session state to every client watching the session.
// Clients that cannot keep up are disconnected.
func (that *Hub) Publish(session *entity.Session) {
	message, err := encodeMessage(actionSessionState, sessionPayload(session))
	if err != nil {
		that.logger.Error("failed to encode session state", "session", session.ID, "error", err)
		return
	}

	var slow []*client

	that.mu.RLock()
	for c := range that.sessions[session.ID] {
		if !c.enqueue(message) {
			slow = append(slow, c)
		}
	}
	that.mu.RUnlock()

	for _, c := range slow {
		that.logger.Warn("dropping slow client", "session", session.ID)
		that.unsubscribe(c)
	}
}

func (that *Hub) subscribe(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	clients, ok := that.sessions[c.sessionID]
	if !ok {
		clients = make(map[*client]struct{})
		that.sessions[c.sessionID] = clients
	}
	clients[c] = struct{}{}
}

func (that *Hub) unsubscribe(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	clients, ok := that.sessions[c.sessionID]
	if !ok {
		return
	}

	if _, ok = clients[c]; ok {
		delete(clients, c)
		c.close()
	}

	if len(clients) == 0 {
		delete(that.sessions, c.sessionID)
	}
}

// Subscribers - number of clients watching the session.
func (that *Hub) Subscribers(sessionID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions[sessionID])
}
