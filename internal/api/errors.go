package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes the server puts in its error envelope.
const (
	CodeSelfVote        = "self_vote"
	CodeAlreadyTerminal = "already_terminal"
	CodeInvalidStatus   = "invalid_status"
	CodeReasonRequired  = "reason_required"
)

// Error is a classified failure response from the backend.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("backend: %s (HTTP %d)", e.Message, e.StatusCode)
}

// IsSelfVote reports whether the server rejected a vote on the caller's own
// complaint.
func IsSelfVote(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == CodeSelfVote
}

// IsRateLimited reports whether the caller should back off.
func IsRateLimited(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}

// IsBusy reports transient backend contention worth a retry.
func IsBusy(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusServiceUnavailable ||
		apiErr.StatusCode == http.StatusConflict
}
