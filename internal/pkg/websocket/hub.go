package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// delivery is an event addressed to one user, or to everyone when userID is empty.
type delivery struct {
	userID string
	event  *Event
}

// Hub maintains the set of active clients keyed by user and fans events out to them.
type Hub struct {
	// Registered clients organized by user ID. A user may hold several tabs open.
	clients map[string]map[*Client]bool

	deliver    chan delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu     sync.RWMutex
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		deliver:    make(chan delivery, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registrations and deliveries until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case d := <-h.deliver:
			h.dispatch(d)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Str("userID", client.userID).
		Str("addr", client.remoteAddr).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info().
		Str("userID", client.userID).
		Str("addr", client.remoteAddr).
		Msg("Client unregistered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

func (h *Hub) dispatch(d delivery) {
	data, err := json.Marshal(d.event)
	if err != nil {
		h.logger.Error().Err(err).Str("type", string(d.event.Type)).Msg("Failed to marshal event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var targets []map[*Client]bool
	if d.userID == "" {
		for _, clients := range h.clients {
			targets = append(targets, clients)
		}
	} else if clients, ok := h.clients[d.userID]; ok {
		targets = append(targets, clients)
	}

	sent := 0
	for _, clients := range targets {
		for client := range clients {
			select {
			case client.send <- data:
				sent++
			default:
				// Slow consumer; drop it rather than stall every other user.
				h.removeLocked(client)
			}
		}
	}

	h.logger.Debug().
		Str("userID", d.userID).
		Str("type", string(d.event.Type)).
		Int("clientCount", sent).
		Msg("Event delivered")
}

func (h *Hub) enqueue(d delivery) {
	select {
	case h.deliver <- d:
	case <-h.done:
	}
}

// Publish sends an event to every open connection of one user.
func (h *Hub) Publish(userID string, event *Event) {
	if userID == "" || event == nil {
		return
	}
	h.enqueue(delivery{userID: userID, event: event})
}

// Broadcast sends an event to every connected user.
func (h *Hub) Broadcast(event *Event) {
	if event == nil {
		return
	}
	h.enqueue(delivery{event: event})
}

// ClientCount returns the number of open connections held by a user
func (h *Hub) ClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
