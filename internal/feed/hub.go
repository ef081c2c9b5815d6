// Package feed streams committed ledger events to WebSocket subscribers.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/chamaa/internal/events"
)

// Hub maintains the set of active subscribers and broadcasts events to
// them. It implements events.Publisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger

	// ctx is cancelled by Close and bounds every subscriber connection.
	ctx    context.Context
	cancel context.CancelFunc
}

var _ events.Publisher = (*Hub)(nil)

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Close disconnects every subscriber and refuses new ones. http.Server's
// Shutdown does not touch hijacked connections, so the server calls this
// before shutting down.
func (h *Hub) Close() {
	h.cancel()
}

// closed reports whether Close has been called.
func (h *Hub) closed() bool {
	return h.ctx.Err() != nil
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Publish sends e to every connected client. A client whose buffer is full
// misses the event; Publish never blocks on a slow subscriber.
func (h *Hub) Publish(_ context.Context, e events.Event) error {
	data, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("Feed subscriber too slow, event dropped",
				"type", e.Type,
				"entity_id", e.EntityID,
			)
		}
	}
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
