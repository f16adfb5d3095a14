package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Ping interval; must be shorter than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size
	maxMessageSize = 4096

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is one player's websocket connection. Writes go through the
// send channel so the write pump is the only goroutine touching the
// connection for output.
type Client struct {
	manager  *HubManager
	conn     *websocket.Conn
	playerID model.PlayerID
	name     string

	// sendMu serializes queueing against closeSend; every write into the
	// send channel must hold it
	sendMu sync.Mutex
	closed bool
	send   chan []byte

	// roomID is the room this client currently occupies, empty in the
	// lobby; only the manager mutates it
	roomID model.RoomID

	connectedAt time.Time
	logger      *slog.Logger
}

// NewClient wraps an upgraded connection
func NewClient(manager *HubManager, conn *websocket.Conn, playerID model.PlayerID, name string, logger *slog.Logger) *Client {
	return &Client{
		manager:     manager,
		conn:        conn,
		playerID:    playerID,
		name:        name,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
		logger:      logger.With(slog.String("player_id", string(playerID))),
	}
}

// PlayerID returns the connection's player identity
func (c *Client) PlayerID() model.PlayerID {
	return c.playerID
}

// Name returns the connection's display name
func (c *Client) Name() string {
	return c.name
}

// RoomID returns the room the client currently occupies, or empty
func (c *Client) RoomID() model.RoomID {
	return c.roomID
}

// Send queues a message and reports whether it was accepted. Messages
// are dropped when the buffer is full or the client has disconnected.
func (c *Client) Send(message []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		c.logger.Warn("message dropped - send buffer full")
		return false
	}
}

// closeSend shuts the outgoing channel exactly once; sends that arrive
// afterwards are dropped instead of hitting a closed channel
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// ReadPump reads inbound messages and hands each to the handler. It
// returns when the connection drops, after notifying the manager.
func (c *Client) ReadPump(handler func(c *Client, data []byte)) {
	defer func() {
		c.manager.Disconnect(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("unexpected close", slog.String("error", err.Error()))
			}
			return
		}
		handler(c, data)
	}
}

// WritePump drains the send channel onto the connection and keeps the
// peer alive with pings
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
