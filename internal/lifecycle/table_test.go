package lifecycle_test

import (
	"testing"

	"grievgo/backend/internal/lifecycle"
	"grievgo/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []models.Status{
	models.StatusRaised,
	models.StatusInProgress,
	models.StatusResolved,
	models.StatusClosed,
	models.StatusSpam,
}

// TestTransitionTable verifies the full allowed-transition matrix.
func TestTransitionTable(t *testing.T) {
	allowed := map[models.Status][]models.Status{
		models.StatusRaised:     {models.StatusInProgress, models.StatusResolved, models.StatusSpam},
		models.StatusInProgress: {models.StatusResolved, models.StatusSpam},
		models.StatusResolved:   {models.StatusClosed},
		models.StatusClosed:     {},
		models.StatusSpam:       {models.StatusClosed},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, lifecycle.IsValidTransition(from, to),
				"transition %s -> %s", from, to)
		}
	}
}

// TestClosedIsDeadEnd ensures nothing leaves Closed, including Closed itself.
func TestClosedIsDeadEnd(t *testing.T) {
	assert.Empty(t, lifecycle.AllowedNext(models.StatusClosed))
	for _, to := range allStatuses {
		assert.False(t, lifecycle.IsValidTransition(models.StatusClosed, to))
	}
}

// TestSpamIsSubTerminal verifies Spam still admits administrative closure.
func TestSpamIsSubTerminal(t *testing.T) {
	assert.Equal(t, []models.Status{models.StatusClosed}, lifecycle.AllowedNext(models.StatusSpam))
	assert.True(t, lifecycle.IsValidTransition(models.StatusSpam, models.StatusClosed))
	assert.False(t, lifecycle.IsValidTransition(models.StatusSpam, models.StatusRaised))
}

// TestReasonRequired verifies exactly Closed and Spam demand a reason.
func TestReasonRequired(t *testing.T) {
	assert.True(t, lifecycle.ReasonRequired(models.StatusClosed))
	assert.True(t, lifecycle.ReasonRequired(models.StatusSpam))
	assert.False(t, lifecycle.ReasonRequired(models.StatusRaised))
	assert.False(t, lifecycle.ReasonRequired(models.StatusInProgress))
	assert.False(t, lifecycle.ReasonRequired(models.StatusResolved))
}

// TestUnknownStatusHasNoTransitions guards against typo'd statuses.
func TestUnknownStatusHasNoTransitions(t *testing.T) {
	assert.False(t, lifecycle.IsValidTransition(models.Status("Bogus"), models.StatusClosed))
	assert.Empty(t, lifecycle.AllowedNext(models.Status("Bogus")))
}
