package config

import "time"

const (
	// Escalation
	EscalationThresholdDays = 7
	EscalationSweepInterval = 1 * time.Hour
	AutoEscalationReason    = "No progress within the response window"

	// Voting rate limits (per user)
	VoteRatePerMinute = 10
	VoteRateBurst     = 5

	// Notification polling
	DefaultPollInterval = 30 * time.Second
)

// PriorityVoteThresholds maps an effective priority to the minimum net vote
// count that forces it. Vote volume only ever raises priority above the
// classifier-assigned base, never lowers it.
var PriorityVoteThresholds = map[string]int{
	"Medium":   5,
	"High":     20,
	"Critical": 50,
}
