package models

import "time"

// StatusEvent is published on the complaint event channel whenever a
// complaint's authoritative state changes, and fanned out to live dashboard
// subscribers.
type StatusEvent struct {
	ComplaintID     string    `json:"complaint_id"`
	Kind            string    `json:"kind"` // "status", "escalation", "vote"
	Status          Status    `json:"status"`
	Priority        Priority  `json:"priority"`
	EscalationLevel int       `json:"escalation_level"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// ClientConfig carries the backend-owned tuning values the client engine
// must not hardcode.
type ClientConfig struct {
	EscalationThresholdDays int `json:"escalation_threshold_days"`
	PollIntervalSeconds     int `json:"poll_interval_seconds"`
}
