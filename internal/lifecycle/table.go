// Package lifecycle owns the complaint status state machine: the static
// transition table and the engine that applies transitions against the
// backend. The table is shared by the client engine and the server handler
// so both ends enforce identical rules.
package lifecycle

import (
	"strings"

	"grievgo/backend/internal/models"
)

// transitions maps each status to the statuses reachable next. Closed is a
// dead end; Spam is sub-terminal and still requires an administrative move
// to Closed.
var transitions = map[models.Status][]models.Status{
	models.StatusRaised:     {models.StatusInProgress, models.StatusResolved, models.StatusSpam},
	models.StatusInProgress: {models.StatusResolved, models.StatusSpam},
	models.StatusResolved:   {models.StatusClosed},
	models.StatusClosed:     {},
	models.StatusSpam:       {models.StatusClosed},
}

// reasonRequired holds the target statuses that demand a justification.
var reasonRequired = map[models.Status]bool{
	models.StatusClosed: true,
	models.StatusSpam:   true,
}

// AllowedNext returns the statuses reachable from the given one, in display
// order. The returned slice must not be mutated.
func AllowedNext(from models.Status) []models.Status {
	return transitions[from]
}

// IsValidTransition reports whether from → to is permitted.
func IsValidTransition(from, to models.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ReasonRequired reports whether moving into the given status needs a
// non-empty reason.
func ReasonRequired(to models.Status) bool {
	return reasonRequired[to]
}

// hasReason treats whitespace-only input as missing.
func hasReason(reason string) bool {
	return strings.TrimSpace(reason) != ""
}
