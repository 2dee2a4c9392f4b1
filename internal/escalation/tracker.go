// Package escalation handles raising complaints to higher authority
// attention: a client-side tracker with local preconditions, and the
// server-side sweeper that applies time-based auto-escalation.
package escalation

import (
	"fmt"
	"strings"
	"time"

	"grievgo/backend/internal/api"
	"grievgo/backend/internal/models"
)

// EscalationErrorKind classifies a rejected escalation.
type EscalationErrorKind string

const (
	// AlreadyTerminal: closed or spam complaints cannot be escalated.
	AlreadyTerminal EscalationErrorKind = "already_terminal"
	// ReasonMissing: an escalation always carries a justification.
	ReasonMissing EscalationErrorKind = "reason_required"
	// BackendRejected: the server refused or the request failed.
	BackendRejected EscalationErrorKind = "backend_rejected"
)

// EscalationError is the failure branch of Escalate.
type EscalationError struct {
	Kind        EscalationErrorKind
	ComplaintID string
	Err         error
}

func (e *EscalationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("escalation of %s failed (%s): %v", e.ComplaintID, e.Kind, e.Err)
	}
	return fmt.Sprintf("escalation of %s failed (%s)", e.ComplaintID, e.Kind)
}

func (e *EscalationError) Unwrap() error { return e.Err }

// Tracker escalates complaints and derives the overdue flag authority views
// group by. The server is authoritative on level numbering so concurrent
// authority sessions cannot produce duplicate levels; the tracker never
// mutates state optimistically.
type Tracker struct {
	Backend api.Backend

	// ThresholdDays comes from backend configuration, not a hardcoded
	// constant. Zero disables the overdue flag until configured.
	ThresholdDays int
}

// NewTracker creates an escalation tracker.
func NewTracker(backend api.Backend) *Tracker {
	return &Tracker{Backend: backend}
}

// LoadConfig pulls the escalation threshold from the backend.
func (t *Tracker) LoadConfig() error {
	cfg, err := t.Backend.FetchConfig()
	if err != nil {
		return err
	}
	t.ThresholdDays = cfg.EscalationThresholdDays
	return nil
}

// Escalate raises the complaint one level. Preconditions are checked
// locally before any network call; on success the server-assigned
// escalation fields are folded into the complaint.
func (t *Tracker) Escalate(complaint *models.Complaint, reason string) (*models.Complaint, error) {
	if complaint.Status.IsTerminal() {
		return nil, &EscalationError{Kind: AlreadyTerminal, ComplaintID: complaint.ID}
	}
	if strings.TrimSpace(reason) == "" {
		return nil, &EscalationError{Kind: ReasonMissing, ComplaintID: complaint.ID}
	}

	updated, err := t.Backend.Escalate(complaint.ID, reason)
	if err != nil {
		return nil, &EscalationError{Kind: BackendRejected, ComplaintID: complaint.ID, Err: err}
	}

	complaint.EscalationLevel = updated.EscalationLevel
	complaint.EscalationReason = updated.EscalationReason
	complaint.EscalatedBy = updated.EscalatedBy
	complaint.EscalatedAt = updated.EscalatedAt
	complaint.Priority = updated.Priority
	complaint.UpdatedAt = updated.UpdatedAt
	return complaint, nil
}

// Overdue reports whether a complaint has aged past the escalation
// threshold without reaching a terminal status.
func (t *Tracker) Overdue(complaint *models.Complaint, now time.Time) bool {
	if t.ThresholdDays <= 0 || complaint.Status.IsTerminal() {
		return false
	}
	return complaint.AgeInDays(now) >= t.ThresholdDays
}
