package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
)

// Hub fans messages out to the websocket clients subscribed to one room.
// Membership changes apply immediately under the lock; broadcasts flow
// through the Run loop so slow clients never stall the caller.
type Hub struct {
	roomID model.RoomID
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[*Client]bool
	closed  bool

	broadcast chan []byte
	done      chan struct{}
}

// NewHub creates a new Hub for a room
func NewHub(roomID model.RoomID, logger *slog.Logger) *Hub {
	return &Hub{
		roomID:    roomID,
		clients:   make(map[*Client]bool),
		logger:    logger.With(slog.String("room_id", string(roomID))),
		broadcast: make(chan []byte, 256),
		done:      make(chan struct{}),
	}
}

// Run drains the broadcast queue until the hub closes
func (h *Hub) Run() {
	for {
		select {
		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				if !client.Send(message) {
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("broadcast partial failure", slog.Int("dropped", dropped))
			}

		case <-h.done:
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.clients[client] = true
	h.logger.Info("client subscribed",
		slog.String("player_id", string(client.playerID)),
		slog.Int("total_clients", len(h.clients)))
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	h.logger.Info("client unsubscribed",
		slog.String("player_id", string(client.playerID)),
		slog.Duration("connection_duration", time.Since(client.connectedAt)),
		slog.Int("total_clients", len(h.clients)))
}

// Broadcast queues a message for every subscribed client
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("broadcast dropped - hub buffer full")
	}
}

// Close evicts every client and stops the Run loop
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for client := range h.clients {
		delete(h.clients, client)
	}
	h.mu.Unlock()
	close(h.done)
}

// ClientCount returns the number of subscribed clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
