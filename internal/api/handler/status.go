package handler

import (
	"net/http"
	"strings"
	"time"

	"grievgo/backend/internal/api"
	"grievgo/backend/internal/lifecycle"
	"grievgo/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// UpdateStatus handles PATCH /complaints/:id/status. The server validates
// against the same transition table the client engine uses, so a bypassed
// client cannot corrupt the lifecycle.
func (h *Handler) UpdateStatus(c *gin.Context) {
	userID, role, ok := h.currentUser(c)
	if !ok {
		return
	}
	if role != models.RoleAuthority && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only authorities can change status"})
		return
	}

	var req struct {
		NewStatus string `json:"new_status" binding:"required"`
		Reason    string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	target := models.Status(req.NewStatus)

	complaint, err := h.Storage.GetComplaintByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}

	if !lifecycle.IsValidTransition(complaint.Status, target) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Transition not allowed",
			"code":  api.CodeInvalidStatus,
		})
		return
	}
	if lifecycle.ReasonRequired(target) && strings.TrimSpace(req.Reason) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "A reason is required for this status",
			"code":  api.CodeReasonRequired,
		})
		return
	}

	wasEscalated := complaint.EscalationLevel > 0

	updated, err := h.Storage.ApplyTransition(complaint.ID, target, req.Reason, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	// Resolution and closure notify the submitter; closing a complaint that
	// had been escalated also alerts the authority channel.
	if target == models.StatusResolved || target == models.StatusClosed {
		_ = h.Storage.CreateNotification(&models.Notification{
			UserID:      updated.SubmitterID,
			ComplaintID: updated.ID,
			Message:     "Your complaint \"" + updated.Title + "\" is now " + string(target),
		})
		if target == models.StatusClosed && wasEscalated {
			h.Notifier.ClosureAlert(updated)
		}
	}

	_ = h.Storage.PublishEvent(models.StatusEvent{
		ComplaintID:     updated.ID,
		Kind:            "status",
		Status:          updated.Status,
		Priority:        updated.Priority,
		EscalationLevel: updated.EscalationLevel,
		OccurredAt:      time.Now(),
	})

	c.JSON(http.StatusOK, updated)
}
