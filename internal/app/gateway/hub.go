package gateway

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// Hub tracks the connected players. Clients register on connect and
// unregister on disconnect; pushes to players without a live connection
// are dropped.
type Hub struct {
	clients map[uuidstring.ID]*Client
	mu      sync.Mutex
	logger  *zap.Logger

	RegisterCh   chan *Client
	UnregisterCh chan *Client
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:      map[uuidstring.ID]*Client{},
		logger:       logger,
		RegisterCh:   make(chan *Client),
		UnregisterCh: make(chan *Client),
	}
}

// Run owns the client map until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return ctx.Err()
		case c := <-h.RegisterCh:
			h.mu.Lock()
			// A reconnecting player replaces their old connection.
			if old, ok := h.clients[c.PlayerID]; ok {
				old.close()
			}
			h.clients[c.PlayerID] = c
			h.mu.Unlock()
		case c := <-h.UnregisterCh:
			h.mu.Lock()
			if current, ok := h.clients[c.PlayerID]; ok && current == c {
				delete(h.clients, c.PlayerID)
			}
			h.mu.Unlock()
			c.close()
		}
	}
}

// Push delivers a typed payload to one player. Returns false when the
// player is not connected or their send buffer is full.
func (h *Hub) Push(playerID uuidstring.ID, messageType string, payload any) bool {
	h.mu.Lock()
	c, ok := h.clients[playerID]
	h.mu.Unlock()
	if !ok {
		return false
	}

	data, err := json.Marshal(envelope{Type: messageType, Payload: payload})
	if err != nil {
		h.logger.Error("failed to marshal push payload",
			zap.String("player_id", playerID.String()),
			zap.Error(err))
		return false
	}

	select {
	case c.sendCh <- data:
		return true
	default:
		h.logger.Warn("dropping push to slow client",
			zap.String("player_id", playerID.String()))
		return false
	}
}

// Connected reports whether the player has a live connection.
func (h *Hub) Connected(playerID uuidstring.ID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.clients[playerID]
	return ok
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.close()
		delete(h.clients, id)
	}
}

// envelope is the wire form of every websocket push.
type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

const (
	MessageTypeMatchFound    = "match_found"
	MessageTypeSessionUpdate = "session_update"
	MessageTypeRatingUpdate  = "rating_update"
)
