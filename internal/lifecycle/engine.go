package lifecycle

import (
	"fmt"

	"grievgo/backend/internal/api"
	"grievgo/backend/internal/models"
)

// TransitionErrorKind classifies why a proposed transition failed.
type TransitionErrorKind string

const (
	// InvalidTransition: the target is not reachable from the current status.
	InvalidTransition TransitionErrorKind = "invalid_transition"
	// ReasonMissing: the target status requires a justification.
	ReasonMissing TransitionErrorKind = "reason_required"
	// BackendRejected: the server refused or the request failed.
	BackendRejected TransitionErrorKind = "backend_rejected"
)

// TransitionError is returned by Propose. Validation kinds are produced
// before any network call; BackendRejected wraps the server failure.
type TransitionError struct {
	Kind TransitionErrorKind
	From models.Status
	To   models.Status
	Err  error
}

func (e *TransitionError) Error() string {
	switch e.Kind {
	case InvalidTransition:
		return fmt.Sprintf("transition %s -> %s is not allowed", e.From, e.To)
	case ReasonMissing:
		return fmt.Sprintf("transition to %s requires a reason", e.To)
	default:
		return fmt.Sprintf("transition %s -> %s rejected: %v", e.From, e.To, e.Err)
	}
}

func (e *TransitionError) Unwrap() error { return e.Err }

// Engine applies status transitions. There is no optimistic mutation here:
// an incorrect status is operationally costly and transitions are rare, so
// local state only changes after server confirmation.
type Engine struct {
	Backend api.Backend
}

// NewEngine creates a status transition engine.
func NewEngine(backend api.Backend) *Engine {
	return &Engine{Backend: backend}
}

// Propose validates the transition locally, submits it to the backend and
// folds the authoritative result into the given complaint. On any failure
// the complaint is left untouched.
func (e *Engine) Propose(complaint *models.Complaint, target models.Status, reason string) (*models.Complaint, error) {
	if !IsValidTransition(complaint.Status, target) {
		return nil, &TransitionError{Kind: InvalidTransition, From: complaint.Status, To: target}
	}
	if ReasonRequired(target) && !hasReason(reason) {
		return nil, &TransitionError{Kind: ReasonMissing, From: complaint.Status, To: target}
	}

	updated, err := e.Backend.UpdateStatus(complaint.ID, target, reason)
	if err != nil {
		return nil, &TransitionError{Kind: BackendRejected, From: complaint.Status, To: target, Err: err}
	}

	applyServerState(complaint, updated)
	return complaint, nil
}

// applyServerState overwrites the locally held complaint with the
// authoritative response. History grows append-only: server entries the
// client has not seen yet are appended in order.
func applyServerState(local, server *models.Complaint) {
	local.Status = server.Status
	local.Priority = server.Priority
	local.EscalationLevel = server.EscalationLevel
	local.EscalationReason = server.EscalationReason
	local.EscalatedBy = server.EscalatedBy
	local.EscalatedAt = server.EscalatedAt
	local.AssignedAuthorityID = server.AssignedAuthorityID
	local.UpdatedAt = server.UpdatedAt

	if len(server.History) > len(local.History) {
		local.History = append(local.History, server.History[len(local.History):]...)
	}
}
