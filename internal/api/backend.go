// Package api defines the backend collaborator the client engine talks to,
// and an HTTP implementation of it. The engine packages only ever see the
// Backend interface so tests can substitute a mock.
package api

import "grievgo/backend/internal/models"

// Backend is the narrow surface of the grievance service the engine needs.
type Backend interface {
	// UpdateStatus applies a status transition and returns the refreshed
	// complaint, including the history entry the server appended.
	UpdateStatus(complaintID string, newStatus models.Status, reason string) (*models.Complaint, error)

	// Escalate raises the complaint one escalation level. The server is
	// authoritative on level numbering.
	Escalate(complaintID string, reason string) (*models.Complaint, error)

	// CastVote casts or switches the caller's vote.
	CastVote(complaintID string, vote models.VoteType) (*models.VoteResult, error)
	// ClearVote removes the caller's vote. Idempotent.
	ClearVote(complaintID string) (*models.VoteResult, error)

	// UnreadNotificationCount returns the caller's personal unread count.
	UnreadNotificationCount() (int, error)
	// ListNotices returns broadcast notices, newest first.
	ListNotices() ([]models.Notice, error)

	// FetchConfig returns backend-owned tuning values such as the
	// escalation threshold, so the engine never hardcodes them.
	FetchConfig() (*models.ClientConfig, error)
}
