package handler

import (
	"grievgo/backend/internal/live"
	"grievgo/backend/internal/storage"
	"grievgo/backend/internal/telegram"
)

// Handler carries the collaborators the HTTP endpoints need.
type Handler struct {
	Storage   storage.Storage
	Hub       *live.Hub
	Notifier  *telegram.Notifier
	JWTSecret []byte
}

func NewHandler(s storage.Storage, hub *live.Hub, notifier *telegram.Notifier, jwtSecret []byte) *Handler {
	return &Handler{
		Storage:   s,
		Hub:       hub,
		Notifier:  notifier,
		JWTSecret: jwtSecret,
	}
}
