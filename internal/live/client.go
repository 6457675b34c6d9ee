package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer; viewers only listen
	maxMessageSize = 512

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// The live-result endpoint is public, so cross-origin viewers are allowed
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is a connected viewer. It is owned exclusively by the Hub and
// removed from it on any transition away from the open state.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	remoteAddr  string
	connectedAt time.Time
}

// NewClient creates a client without a live connection (for hub tests)
func NewClient(hub *Hub, remoteAddr string) *Client {
	return &Client{
		hub:         hub,
		send:        make(chan []byte, sendBufferSize),
		remoteAddr:  remoteAddr,
		connectedAt: time.Now(),
	}
}

// ServeWS upgrades the request to a websocket connection, registers the
// viewer with the hub and pushes the welcome event before streaming
// broadcasts. It returns once the viewer disconnects.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request, welcome Event, logger *slog.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed",
			slog.String("remote", r.RemoteAddr),
			slog.Any("error", err))
		return
	}

	client := NewClient(hub, r.RemoteAddr)
	client.conn = conn

	// Queue the welcome event before handing the client to the hub, so
	// the send channel cannot be closed out from under the write. The
	// buffer is empty at this point and the write never blocks.
	if data, err := json.Marshal(welcome); err == nil {
		client.send <- data
	}

	if !hub.Register(client) {
		_ = conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}

// readPump drains inbound frames so ping/pong control handling works and
// unregisters the client when the connection drops for any reason
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		// Viewers never send application messages; any payload is dropped
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards hub messages to the connection and keeps it alive
// with periodic pings
func (c *Client) writePump() {
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
				// Hub closed the channel
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
