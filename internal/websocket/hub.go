package websocket

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/kinderbook/internal/subject"
)

const clientBuffer = 32

// Client is one live score stream subscriber.
type Client struct {
	ID   string
	Send chan ScoreChangedEvent

	mu      sync.Mutex
	subject string
}

// SetFilter limits the client to one subject; "" means all subjects.
func (c *Client) SetFilter(subjectName string) {
	c.mu.Lock()
	c.subject = strings.ToUpper(strings.TrimSpace(subjectName))
	c.mu.Unlock()
}

func (c *Client) wants(e ScoreChangedEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subject == "" || c.subject == e.Subject
}

// Hub fans score changes out to websocket clients. Publish never blocks:
// score changes are published from inside command execution.
type Hub struct {
	in      chan ScoreChangedEvent
	mu      sync.RWMutex
	clients map[string]*Client
	log     zerolog.Logger
}

// NewHub creates a hub whose inbound queue holds buffer events.
func NewHub(buffer int, log zerolog.Logger) *Hub {
	if buffer <= 0 {
		buffer = 1
	}
	return &Hub{
		in:      make(chan ScoreChangedEvent, buffer),
		clients: make(map[string]*Client),
		log:     log.With().Str("component", "ws_hub").Logger(),
	}
}

// Observe is a subject.Registry subscriber.
func (h *Hub) Observe(subjectName string, c subject.Change) {
	h.Publish(NewScoreChangedEvent(subjectName, c))
}

// Publish queues e for delivery. It reports false when the queue is full
// and the event was dropped.
func (h *Hub) Publish(e ScoreChangedEvent) bool {
	select {
	case h.in <- e:
		return true
	default:
		h.log.Warn().
			Str("subject", e.Subject).
			Int64("person_id", int64(e.PersonID)).
			Msg("Hub queue full, dropping score event")
		return false
	}
}

// Register adds a client listening to every subject.
func (h *Hub) Register() *Client {
	c := &Client{ID: uuid.NewString(), Send: make(chan ScoreChangedEvent, clientBuffer)}
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()
	return c
}

// Unregister removes c and closes its Send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.ID]; ok {
		delete(h.clients, c.ID)
		close(c.Send)
	}
	h.mu.Unlock()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run delivers queued events until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	h.log.Info().Msg("Hub started")
	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("Hub stopped")
			return
		case e := <-h.in:
			h.broadcast(e)
		}
	}
}

func (h *Hub) broadcast(e ScoreChangedEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if !c.wants(e) {
			continue
		}
		select {
		case c.Send <- e:
		default:
			h.log.Warn().Str("client_id", c.ID).Msg("Client too slow, dropping score event")
		}
	}
}
