// Package live fans authoritative complaint events out to connected
// authority dashboards. Events arrive over redis pub/sub so every server
// instance sees mutations applied by any other.
package live

import (
	"grievgo/backend/internal/models"
	"grievgo/backend/internal/storage"
	"grievgo/backend/pkg/logger"
)

// Hub tracks connected dashboard clients and broadcasts complaint events
// to them.
type Hub struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client

	Storage *storage.Service

	eventCh chan models.StatusEvent
}

// NewHub creates a hub backed by the given storage service.
func NewHub(s *storage.Service) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		Storage:      s,
		eventCh:      make(chan models.StatusEvent),
	}
}

// Run is the hub's main dispatcher. Blocks; call in a goroutine.
func (h *Hub) Run() {
	h.startPubSubListener()

	for {
		select {
		case client := <-h.RegisterCh:
			h.Clients[client.GetUserID()] = client
			logger.Info().Str("user", client.GetUserID()).Msg("live client connected")

		case client := <-h.UnregisterCh:
			if _, ok := h.Clients[client.GetUserID()]; ok {
				delete(h.Clients, client.GetUserID())
				client.Close()
			}

		case event := <-h.eventCh:
			h.broadcast(event)
		}
	}
}

// Broadcast queues an event for delivery to every connected client.
func (h *Hub) Broadcast(event models.StatusEvent) {
	h.eventCh <- event
}

// broadcast delivers to every client; a client with a full send channel is
// evicted rather than allowed to stall the loop.
func (h *Hub) broadcast(event models.StatusEvent) {
	for userID, client := range h.Clients {
		select {
		case client.GetSendChannel() <- event:
		default:
			delete(h.Clients, userID)
			client.Close()
			logger.Warn().Str("user", userID).Msg("evicted slow live client")
		}
	}
}
