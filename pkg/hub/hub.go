package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/teslashibe/go-orbit/internal/log"
)

// Hub maintains the set of active clients and broadcasts frames to them.
// The most recent broadcast is replayed to clients that join later, so an
// observer connecting mid-scroll sees the current frame immediately.
type Hub struct {
	// Name for logging
	name   string
	logger *slog.Logger

	// Registered clients
	clients map[*Client]bool

	// Inbound frames to broadcast
	broadcast chan Frame

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Guards clients and latest for readers outside Run
	mu     sync.RWMutex
	latest *Frame

	running bool
}

// New creates a new Hub
func New(name string) *Hub {
	return &Hub{
		name:       name,
		logger:     log.Component("hub").With("hub", name),
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Frame, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's main loop. It returns when ctx is cancelled, after
// closing every client's send channel. A hub cannot be restarted.
func (h *Hub) Run(ctx context.Context) {
	h.mu.Lock()
	h.running = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		for client := range h.clients {
			close(client.send)
			delete(h.clients, client)
		}
		h.running = false
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			latest := h.latest
			h.mu.Unlock()

			if latest != nil {
				select {
				case client.send <- *latest:
				default:
				}
			}
			h.logger.Info("client connected", "client", client.ID, "total", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client disconnected", "client", client.ID, "remaining", count)

		case frame := <-h.broadcast:
			h.mu.Lock()
			if frame.stale(h.latest) {
				h.mu.Unlock()
				h.logger.Debug("dropped stale frame", "seq", frame.Seq, "latest", h.latest.Seq)
				continue
			}
			h.latest = &frame
			for client := range h.clients {
				select {
				case client.send <- frame:
					// Frame queued successfully
				default:
					// Client's buffer is full - they're too slow
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn("dropped slow client", "client", client.ID, "seq", frame.Seq)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a frame to all connected clients. Frames with a sequence
// number at or below the last one sent are dropped.
func (h *Hub) Broadcast(f Frame) {
	select {
	case h.broadcast <- f:
	default:
		// Broadcast channel full - drop message
		h.logger.Warn("broadcast channel full, dropping message")
	}
}

// BroadcastJSON encodes v and broadcasts it as frame seq.
func (h *Hub) BroadcastJSON(seq uint64, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(NewFrame(seq, data))
	return nil
}

// Latest returns the most recent broadcast, if any.
func (h *Hub) Latest() (Frame, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return Frame{}, false
	}
	return *h.latest, true
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// IsRunning returns whether the hub is running
func (h *Hub) IsRunning() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.running
}

// Name returns the hub's name.
func (h *Hub) Name() string {
	return h.name
}
