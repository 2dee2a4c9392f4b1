package live

import (
	"encoding/json"

	"grievgo/backend/internal/models"
	"grievgo/backend/pkg/logger"
)

// startPubSubListener subscribes to the complaint event channel and feeds
// decoded events into the hub's dispatch loop.
func (h *Hub) startPubSubListener() {
	if h.Storage == nil || h.Storage.Redis == nil {
		return
	}

	go func() {
		pubsub := h.Storage.Subscribe()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var event models.StatusEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Error().Err(err).Msg("bad payload on complaint event channel")
				continue
			}
			h.eventCh <- event
		}
	}()
}
