// Package analysis derives the effective priority of a complaint from its
// vote volume. The initial priority comes from an external classifier; this
// package only decides when community votes push it higher.
package analysis

import (
	"grievgo/backend/internal/config"
	"grievgo/backend/internal/models"
)

var priorityRank = map[models.Priority]int{
	models.PriorityLow:      0,
	models.PriorityMedium:   1,
	models.PriorityHigh:     2,
	models.PriorityCritical: 3,
}

// ladder is checked highest first so the strongest threshold wins.
var ladder = []models.Priority{
	models.PriorityCritical,
	models.PriorityHigh,
	models.PriorityMedium,
}

// EffectivePriority returns the priority a complaint should display given
// its classifier-assigned base and current net votes. The result is never
// below base.
func EffectivePriority(base models.Priority, netVotes int) models.Priority {
	derived := models.PriorityLow
	for _, p := range ladder {
		if netVotes >= config.PriorityVoteThresholds[string(p)] {
			derived = p
			break
		}
	}
	if priorityRank[derived] > priorityRank[base] {
		return derived
	}
	return base
}
