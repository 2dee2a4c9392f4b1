package models_test

import (
	"testing"
	"time"

	"grievgo/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestIsTerminal(t *testing.T) {
	assert.True(t, models.StatusClosed.IsTerminal())
	assert.True(t, models.StatusSpam.IsTerminal())
	assert.False(t, models.StatusRaised.IsTerminal())
	assert.False(t, models.StatusInProgress.IsTerminal())
	assert.False(t, models.StatusResolved.IsTerminal())
}

func TestBeforeCreateGeneratesID(t *testing.T) {
	c := &models.Complaint{}
	assert.NoError(t, c.BeforeCreate(nil))
	assert.NotEmpty(t, c.ID)

	// An explicit ID survives.
	fixed := &models.Complaint{ID: "c-42"}
	assert.NoError(t, fixed.BeforeCreate(nil))
	assert.Equal(t, "c-42", fixed.ID)
}

func TestNetVotes(t *testing.T) {
	c := &models.Complaint{Upvotes: 7, Downvotes: 3}
	assert.Equal(t, 4, c.NetVotes())

	c = &models.Complaint{Upvotes: 1, Downvotes: 5}
	assert.Equal(t, -4, c.NetVotes())
}

func TestAgeInDays(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	c := &models.Complaint{CreatedAt: now.AddDate(0, 0, -7)}
	assert.Equal(t, 7, c.AgeInDays(now))

	// Partial days round down.
	c = &models.Complaint{CreatedAt: now.Add(-36 * time.Hour)}
	assert.Equal(t, 1, c.AgeInDays(now))

	// Clock skew must not produce a negative age.
	c = &models.Complaint{CreatedAt: now.Add(time.Hour)}
	assert.Equal(t, 0, c.AgeInDays(now))
}
