package ws

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Hub manages all active WebSocket clients and routes events to them.
// Match and request events are addressed to a single user; presence fans
// out to everyone connected.
type Hub struct {
	// clients maps userID → client.
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	direct     chan *directMsg
}

type directMsg struct {
	userID uuid.UUID
	data   []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan *directMsg, 256),
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.userID] = client
			log.Debug().Stringer("user_id", client.userID).Int("total", len(h.clients)).Msg("ws client connected")
			h.broadcastPresence(client.userID, "online")

		case client := <-h.unregister:
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
				close(client.done)
				log.Debug().Stringer("user_id", client.userID).Int("total", len(h.clients)).Msg("ws client disconnected")
				h.broadcastPresence(client.userID, "offline")
			}

		case msg := <-h.direct:
			client, ok := h.clients[msg.userID]
			if !ok {
				// Recipient offline; the event is dropped.
				continue
			}
			select {
			case client.send <- msg.data:
			default:
				log.Warn().Stringer("user_id", client.userID).Msg("ws send buffer full, dropping event")
			}
		}
	}
}

// SendToUser queues an event for one connected user. It never blocks and
// never reports failure; offline users miss the event.
func (h *Hub) SendToUser(userID uuid.UUID, evt *Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Error().Err(err).Msg("ws hub: marshal error")
		return
	}
	h.direct <- &directMsg{userID: userID, data: data}
}

func (h *Hub) broadcastPresence(userID uuid.UUID, status string) {
	evt, err := NewEvent(EventTypePresence, PresencePayload{UserID: userID.String(), Status: status})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	for _, client := range h.clients {
		if client.userID == userID {
			continue
		}
		select {
		case client.send <- data:
		default:
		}
	}
}
