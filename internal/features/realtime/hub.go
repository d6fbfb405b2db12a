package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"vfx-dashboard/internal/common/models"

	"go.uber.org/zap"
)

const clientBuffer = 32

// Event is pushed to every connected member of an organization when a
// project, task or resource changes.
type Event struct {
	Type    string    `json:"type"`
	ID      string    `json:"id"`
	ActorID string    `json:"actorId"`
	At      time.Time `json:"at"`
}

// Publisher is implemented by Hub. Services depend on this instead of the hub.
type Publisher interface {
	Publish(organization string, ev Event)
}

// Client is one websocket subscriber.
type Client struct {
	organization string
	send         chan []byte
	closeOnce    sync.Once
}

// Messages yields encoded events until the client is dropped.
func (c *Client) Messages() <-chan []byte {
	return c.send
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

// Hub fans events out to per-organization rooms. A client whose buffer is
// full is disconnected instead of blocking the publisher.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]struct{}),
		logger: logger,
	}
}

func (h *Hub) Subscribe(organization string) *Client {
	c := &Client{organization: organization, send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	room, ok := h.rooms[organization]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[organization] = room
	}
	room[c] = struct{}{}
	h.mu.Unlock()

	return c
}

func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

func (h *Hub) removeLocked(c *Client) {
	room := h.rooms[c.organization]
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, c.organization)
	}
	c.close()
}

func (h *Hub) Publish(organization string, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("failed to encode realtime event", zap.Error(err))
		return
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.rooms[organization] {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	if len(slow) == 0 {
		return
	}
	h.mu.Lock()
	for _, c := range slow {
		h.removeLocked(c)
	}
	h.mu.Unlock()
	h.logger.Warn("dropped slow realtime clients", zap.String("organization", organization), zap.Int("count", len(slow)))
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range h.rooms {
		for c := range room {
			h.removeLocked(c)
		}
	}
}

// Connections returns the number of subscribers in an organization.
func (h *Hub) Connections(organization string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[organization])
}

// EventType names an event after the record kind and the audit action,
// e.g. "task.updated".
func EventType(kind string, action models.AuditAction) string {
	switch action {
	case models.AuditActionCreate:
		return kind + ".created"
	case models.AuditActionDelete:
		return kind + ".deleted"
	}
	return kind + ".updated"
}
