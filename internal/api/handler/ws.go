package handler

import (
	"net/http"

	"grievgo/backend/internal/live"
	"grievgo/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades GET /ws to the live complaint feed. Authority
// dashboards subscribe here to see status, vote and escalation events as
// they happen.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	userID, role, ok := h.currentUser(c)
	if !ok {
		return
	}
	if role != models.RoleAuthority && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Live feed is for authorities"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &live.WebSocketClient{
		Hub:    h.Hub,
		UserID: userID,
		Conn:   conn,
		Send:   make(chan models.StatusEvent, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
