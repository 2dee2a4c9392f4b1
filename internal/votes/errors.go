package votes

import "fmt"

// VoteErrorKind classifies a failed vote mutation for the caller. The
// engine never auto-retries; retry timing is left to the UI.
type VoteErrorKind string

const (
	// SelfVoteForbidden: voting on one's own complaint.
	SelfVoteForbidden VoteErrorKind = "self_vote_forbidden"
	// TransientServerBusy: backend contention, a retry may succeed.
	TransientServerBusy VoteErrorKind = "transient_server_busy"
	// RateLimited: the caller should back off before retrying.
	RateLimited VoteErrorKind = "rate_limited"
	// AlreadyInFlight: a mutation for this complaint is outstanding; the
	// call was rejected synchronously, not queued.
	AlreadyInFlight VoteErrorKind = "already_in_flight"
	// NotLoaded: the aggregator holds no state for the complaint.
	NotLoaded VoteErrorKind = "not_loaded"
	// Unknown: generic failure; local state was rolled back.
	Unknown VoteErrorKind = "unknown"
)

// VoteError is the failure branch of CastVote. When the failure happened
// after the optimistic delta was applied, the snapshot has already been
// restored by the time the caller sees this error.
type VoteError struct {
	Kind        VoteErrorKind
	ComplaintID string
	Err         error
}

func (e *VoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vote on %s failed (%s): %v", e.ComplaintID, e.Kind, e.Err)
	}
	return fmt.Sprintf("vote on %s failed (%s)", e.ComplaintID, e.Kind)
}

func (e *VoteError) Unwrap() error { return e.Err }
