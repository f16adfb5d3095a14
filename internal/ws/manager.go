package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
	"github.com/yasskadd/Scrabble-sub001/internal/services/game"
)

var _ game.Broadcaster = (*HubManager)(nil)

// HubManager owns one hub per room plus the lobby-wide client index. It
// is the transport half of the event surface: services address rooms and
// players, the manager resolves them to live connections.
type HubManager struct {
	hubs    map[model.RoomID]*Hub
	clients map[model.PlayerID]*Client
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:    make(map[model.RoomID]*Hub),
		clients: make(map[model.PlayerID]*Client),
		logger:  logger.With(slog.String("component", "ws")),
	}
}

// Connect indexes a freshly upgraded client so the lobby and direct
// sends can reach it
func (m *HubManager) Connect(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[client.playerID] = client
}

// Disconnect removes a client from its room hub and the index
func (m *HubManager) Disconnect(client *Client) {
	m.mu.Lock()
	if current, ok := m.clients[client.playerID]; ok && current == client {
		delete(m.clients, client.playerID)
	}
	roomID := client.roomID
	hub := m.hubs[roomID]
	m.mu.Unlock()

	if hub != nil {
		hub.Unregister(client)
	}
	client.closeSend()
}

// JoinRoom subscribes a client to a room's hub, creating the hub on
// first use
func (m *HubManager) JoinRoom(client *Client, roomID model.RoomID) {
	m.mu.Lock()
	hub, ok := m.hubs[roomID]
	if !ok {
		hub = NewHub(roomID, m.logger)
		m.hubs[roomID] = hub
		go hub.Run()
	}
	client.roomID = roomID
	m.mu.Unlock()

	hub.Register(client)
}

// LeaveRoom unsubscribes a client from its current room, tearing the hub
// down once it empties
func (m *HubManager) LeaveRoom(client *Client) {
	m.mu.Lock()
	roomID := client.roomID
	client.roomID = ""
	hub := m.hubs[roomID]
	m.mu.Unlock()

	if hub == nil {
		return
	}
	hub.Unregister(client)
	m.cleanupIfEmpty(roomID)
}

// CloseRoom removes a room's hub outright; remaining clients fall back
// to the lobby
func (m *HubManager) CloseRoom(roomID model.RoomID) {
	m.mu.Lock()
	hub, ok := m.hubs[roomID]
	if ok {
		delete(m.hubs, roomID)
	}
	for _, client := range m.clients {
		if client.roomID == roomID {
			client.roomID = ""
		}
	}
	m.mu.Unlock()

	if ok {
		hub.Close()
	}
}

// ToRoom sends an event to every client subscribed to a room
func (m *HubManager) ToRoom(roomID model.RoomID, event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		m.logger.Error("failed to marshal event",
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()))
		return
	}
	m.mu.RLock()
	hub := m.hubs[roomID]
	m.mu.RUnlock()
	if hub != nil {
		hub.Broadcast(data)
	}
}

// ToPlayer sends an event to one player's connection only
func (m *HubManager) ToPlayer(playerID model.PlayerID, event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		m.logger.Error("failed to marshal event",
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()))
		return
	}
	m.mu.RLock()
	client := m.clients[playerID]
	m.mu.RUnlock()
	if client != nil {
		client.Send(data)
	}
}

// ToLobby sends an event to every connected client
func (m *HubManager) ToLobby(event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		m.logger.Error("failed to marshal event",
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()))
		return
	}
	m.mu.RLock()
	clients := make([]*Client, 0, len(m.clients))
	for _, c := range m.clients {
		clients = append(clients, c)
	}
	m.mu.RUnlock()
	for _, c := range clients {
		c.Send(data)
	}
}

// ClientCount returns the number of connected clients
func (m *HubManager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *HubManager) cleanupIfEmpty(roomID model.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hub, ok := m.hubs[roomID]; ok && hub.ClientCount() == 0 {
		hub.Close()
		delete(m.hubs, roomID)
	}
}
