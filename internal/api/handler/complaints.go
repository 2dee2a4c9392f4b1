package handler

import (
	"net/http"

	"grievgo/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// CreateComplaint handles POST /complaints. The initial category and
// priority come from the external classifier; until it answers, new
// complaints start at Medium.
func (h *Handler) CreateComplaint(c *gin.Context) {
	userID, _, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	complaint := &models.Complaint{
		SubmitterID: userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        pq.StringArray(req.Tags),
		Status:      models.StatusRaised,
	}
	if err := h.Storage.CreateComplaint(complaint); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create complaint"})
		return
	}

	c.JSON(http.StatusCreated, complaint)
}

// ListComplaints handles GET /complaints, optionally filtered by status.
func (h *Handler) ListComplaints(c *gin.Context) {
	if _, _, ok := h.currentUser(c); !ok {
		return
	}

	complaints, err := h.Storage.ListComplaints(models.Status(c.Query("status")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaints"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints})
}

// GetComplaint handles GET /complaints/:id, including status history.
func (h *Handler) GetComplaint(c *gin.Context) {
	if _, _, ok := h.currentUser(c); !ok {
		return
	}

	complaint, err := h.Storage.GetComplaintByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}

	c.JSON(http.StatusOK, complaint)
}
