package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Event is a push message for dashboard clients. Type is a dotted name like
// "notification.created" or "business.status_updated".
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// businessEvent routes an event to one business unit's room.
type businessEvent struct {
	BusinessID uuid.UUID
	Event      Event
}

// Hub maintains the set of active clients and broadcasts events to them,
// one room per business unit.
type Hub struct {
	rooms map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	broadcast chan *businessEvent

	mu sync.RWMutex
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *businessEvent, 256),
	}
}

// Run starts the hub's main loop. Call as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.businessID] == nil {
				h.rooms[client.businessID] = make(map[*Client]bool)
			}
			h.rooms[client.businessID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.businessID]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.rooms, client.businessID)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			clients := h.rooms[event.BusinessID]

			message, err := json.Marshal(event.Event)
			if err != nil {
				h.mu.Unlock()
				continue
			}

			for client := range clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, close and unregister
					close(client.send)
					delete(h.rooms[event.BusinessID], client)
					if len(h.rooms[event.BusinessID]) == 0 {
						delete(h.rooms, event.BusinessID)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToBusiness sends an event to all clients watching one business
// unit. This is the public API for the state container and handlers.
func (h *Hub) BroadcastToBusiness(businessID uuid.UUID, event Event) {
	h.broadcast <- &businessEvent{
		BusinessID: businessID,
		Event:      event,
	}
}
