package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"grievgo/backend/internal/api"
	"grievgo/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Escalate handles POST /complaints/:id/escalate. The level increment is
// atomic in storage, so concurrent authority sessions can never assign the
// same level twice; escalation is monotonic and never reset.
func (h *Handler) Escalate(c *gin.Context) {
	userID, role, ok := h.currentUser(c)
	if !ok {
		return
	}
	if role != models.RoleAuthority && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only authorities can escalate"})
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Reason) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "An escalation reason is required",
			"code":  api.CodeReasonRequired,
		})
		return
	}

	complaint, err := h.Storage.GetComplaintByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	if complaint.Status.IsTerminal() {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Closed or spam complaints cannot be escalated",
			"code":  api.CodeAlreadyTerminal,
		})
		return
	}

	updated, err := h.Storage.ApplyEscalation(complaint.ID, req.Reason, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to escalate"})
		return
	}

	if updated.AssignedAuthorityID != nil && *updated.AssignedAuthorityID != userID {
		_ = h.Storage.CreateNotification(&models.Notification{
			UserID:      *updated.AssignedAuthorityID,
			ComplaintID: updated.ID,
			Message:     "Complaint escalated to level " + strconv.Itoa(updated.EscalationLevel) + ": " + updated.Title,
		})
	}
	h.Notifier.EscalationAlert(updated)

	_ = h.Storage.PublishEvent(models.StatusEvent{
		ComplaintID:     updated.ID,
		Kind:            "escalation",
		Status:          updated.Status,
		Priority:        updated.Priority,
		EscalationLevel: updated.EscalationLevel,
		OccurredAt:      time.Now(),
	})

	c.JSON(http.StatusOK, updated)
}
