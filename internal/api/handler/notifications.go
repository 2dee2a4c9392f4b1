package handler

import (
	"net/http"

	"grievgo/backend/internal/config"
	"grievgo/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// GetUnreadCount handles GET /notifications/unread-count.
func (h *Handler) GetUnreadCount(c *gin.Context) {
	userID, _, ok := h.currentUser(c)
	if !ok {
		return
	}

	count, err := h.Storage.CountUnreadNotifications(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkAllRead handles POST /notifications/read-all.
func (h *Handler) MarkAllRead(c *gin.Context) {
	userID, _, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.Storage.MarkAllNotificationsRead(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All marked as read"})
}

// ListNotices handles GET /notices. Clients derive their unread-notice
// count from the created_at timestamps and their own seen marker.
func (h *Handler) ListNotices(c *gin.Context) {
	if _, _, ok := h.currentUser(c); !ok {
		return
	}

	notices, err := h.Storage.ListNotices(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notices": notices})
}

// CreateNotice handles POST /notices, admin only.
func (h *Handler) CreateNotice(c *gin.Context) {
	userID, role, ok := h.currentUser(c)
	if !ok {
		return
	}
	if role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can post notices"})
		return
	}

	var req struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	notice := &models.Notice{Title: req.Title, Body: req.Body, PostedBy: userID}
	if err := h.Storage.CreateNotice(notice); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notice"})
		return
	}

	c.JSON(http.StatusCreated, notice)
}

// GetClientConfig handles GET /config: the backend-owned tuning values the
// client engine must not hardcode.
func (h *Handler) GetClientConfig(c *gin.Context) {
	if _, _, ok := h.currentUser(c); !ok {
		return
	}

	c.JSON(http.StatusOK, models.ClientConfig{
		EscalationThresholdDays: config.EscalationThresholdDays,
		PollIntervalSeconds:     int(config.DefaultPollInterval.Seconds()),
	})
}
