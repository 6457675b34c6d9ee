package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/myatmin/twodlive/internal/model"
)

// Hub tracks connected viewers and fans result events out to them.
// The client set is owned by the Run goroutine's select loop together
// with the mutex-guarded map, so connect/disconnect callbacks never
// mutate the set while a broadcast iterates it.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("component", "live-hub")),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("live hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("viewer connected",
				slog.String("remote", client.remoteAddr),
				slog.Int("total_viewers", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				duration := time.Since(client.connectedAt)
				h.logger.Info("viewer disconnected",
					slog.String("remote", client.remoteAddr),
					slog.Duration("connection_duration", duration),
					slog.Int("total_viewers", clientCount))
			} else {
				// Disconnecting an already-removed viewer is a no-op
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			sentCount := 0
			droppedCount := 0
			for client := range h.clients {
				select {
				case client.send <- message:
					sentCount++
				default:
					// A stalled viewer must not hold up the rest
					droppedCount++
				}
			}
			h.mu.RUnlock()
			if droppedCount > 0 {
				h.logger.Warn("broadcast partial delivery",
					slog.Int("sent", sentCount),
					slog.Int("dropped", droppedCount))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("live hub stopped", slog.Int("disconnected_viewers", clientCount))
			return
		}
	}
}

// Register adds a viewer to the hub. It reports false when the hub has
// already been closed and the viewer was not added.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a viewer from the hub; idempotent
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends a raw message to all connected viewers. Fire-and-forget:
// no acknowledgement and no delivery guarantee.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("broadcast dropped - hub buffer full")
	}
}

// BroadcastResult serializes a result event once and fans it out
func (h *Hub) BroadcastResult(result model.ResultEvent) {
	data, err := json.Marshal(ResultEvent(result))
	if err != nil {
		h.logger.Error("failed to encode result event", slog.Any("error", err))
		return
	}
	h.Broadcast(data)
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected viewers
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
