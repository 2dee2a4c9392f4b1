package handler

import (
	"net/http"
	"time"

	"grievgo/backend/internal/analysis"
	"grievgo/backend/internal/api"
	"grievgo/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// CastVote handles POST /complaints/:id/vote. The server applies
// cast/switch/toggle semantics transactionally and is the sole authority on
// the resulting counters and priority; clients reconcile against this
// response.
func (h *Handler) CastVote(c *gin.Context) {
	userID, _, ok := h.currentUser(c)
	if !ok {
		return
	}
	if !voteLimiter.Allow(userID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many vote requests", "code": "rate_limited"})
		return
	}

	var req struct {
		VoteType string `json:"vote_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	vote := models.VoteType(req.VoteType)
	if vote != models.VoteUpvote && vote != models.VoteDownvote {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote type (must be 'upvote' or 'downvote')"})
		return
	}

	h.mutateVote(c, userID, vote)
}

// ClearVote handles DELETE /complaints/:id/vote. Idempotent.
func (h *Handler) ClearVote(c *gin.Context) {
	userID, _, ok := h.currentUser(c)
	if !ok {
		return
	}
	if !voteLimiter.Allow(userID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many vote requests", "code": "rate_limited"})
		return
	}

	h.mutateVote(c, userID, models.VoteNone)
}

func (h *Handler) mutateVote(c *gin.Context, userID string, vote models.VoteType) {
	complaintID := c.Param("id")

	complaint, err := h.Storage.GetComplaintByID(complaintID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	if complaint.SubmitterID == userID {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "You cannot vote on your own complaint",
			"code":  api.CodeSelfVote,
		})
		return
	}

	var result *models.VoteResult
	if vote == models.VoteNone {
		result, err = h.Storage.ClearVote(complaintID, userID)
	} else {
		result, err = h.Storage.ApplyVote(complaintID, userID, vote)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Vote could not be applied, try again"})
		return
	}

	// Vote volume can raise the effective priority; persist and report the
	// re-evaluated value so clients never have to guess it.
	effective := analysis.EffectivePriority(complaint.BasePriority, result.Upvotes-result.Downvotes)
	if effective != result.Priority {
		if err := h.Storage.SetPriority(complaintID, effective); err == nil {
			result.Priority = effective
		}
	}

	_ = h.Storage.PublishEvent(models.StatusEvent{
		ComplaintID:     complaintID,
		Kind:            "vote",
		Status:          complaint.Status,
		Priority:        result.Priority,
		EscalationLevel: complaint.EscalationLevel,
		OccurredAt:      time.Now(),
	})

	c.JSON(http.StatusOK, result)
}
