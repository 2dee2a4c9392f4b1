// Package votes owns per-complaint vote counters and the current user's
// vote. Mutations are optimistic: the local delta is published immediately,
// then reconciled against the server's authoritative response, or rolled
// back to the pre-mutation snapshot on failure.
package votes

import (
	"errors"
	"sync"

	"grievgo/backend/internal/api"
	"grievgo/backend/internal/models"
)

// State is the displayed vote state of one complaint. Priority is carried
// along because vote volume can shift it server-side.
type State struct {
	Upvotes   int
	Downvotes int
	UserVote  models.VoteType
	Priority  models.Priority
}

// Subscriber receives every published state change for any tracked
// complaint: optimistic, reconciled and rolled-back states alike.
type Subscriber func(complaintID string, state State)

// Aggregator is the sole owner of vote state. UI code must never mutate
// counters directly; everything goes through CastVote.
type Aggregator struct {
	Backend api.Backend

	mu          sync.Mutex
	states      map[string]State
	inFlight    map[string]bool
	subscribers []Subscriber
}

// NewAggregator creates a vote aggregator on top of the given backend.
func NewAggregator(backend api.Backend) *Aggregator {
	return &Aggregator{
		Backend:  backend,
		states:   make(map[string]State),
		inFlight: make(map[string]bool),
	}
}

// Subscribe registers a listener for published vote states.
func (a *Aggregator) Subscribe(fn Subscriber) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subscribers = append(a.subscribers, fn)
}

// Load seeds (or refreshes) the tracked state for a complaint from an
// authoritative source, typically a fetched complaint.
func (a *Aggregator) Load(complaintID string, state State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.states[complaintID] = state
}

// Forget stops tracking a complaint. An outstanding mutation for it is not
// cancelled; its commit or rollback handler becomes a no-op.
func (a *Aggregator) Forget(complaintID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.states, complaintID)
}

// State returns the currently tracked state for a complaint.
func (a *Aggregator) State(complaintID string) (State, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.states[complaintID]
	return s, ok
}

// CastVote applies the requested vote. Casting the user's current vote type
// toggles it off; casting the other type switches it. The optimistic state
// is published before the network call so the UI shows no latency; the
// server response then overwrites it, or the snapshot is restored on
// failure. Only one mutation per complaint may be in flight: a second call
// fails fast with AlreadyInFlight rather than queueing, so a single
// rollback always restores a consistent state.
func (a *Aggregator) CastVote(complaintID string, requested models.VoteType) (State, error) {
	if requested != models.VoteUpvote && requested != models.VoteDownvote {
		return State{}, &VoteError{Kind: Unknown, ComplaintID: complaintID,
			Err: errors.New("invalid vote type: " + string(requested))}
	}

	a.mu.Lock()
	snapshot, ok := a.states[complaintID]
	if !ok {
		a.mu.Unlock()
		return State{}, &VoteError{Kind: NotLoaded, ComplaintID: complaintID}
	}
	if a.inFlight[complaintID] {
		a.mu.Unlock()
		return snapshot, &VoteError{Kind: AlreadyInFlight, ComplaintID: complaintID}
	}

	toggleOff := requested == snapshot.UserVote
	optimistic := applyDelta(snapshot, requested, toggleOff)
	a.states[complaintID] = optimistic
	a.inFlight[complaintID] = true
	a.mu.Unlock()

	a.publish(complaintID, optimistic)

	var result *models.VoteResult
	var err error
	if toggleOff {
		result, err = a.Backend.ClearVote(complaintID)
	} else {
		result, err = a.Backend.CastVote(complaintID, requested)
	}

	a.mu.Lock()
	delete(a.inFlight, complaintID)
	_, tracked := a.states[complaintID]

	if err != nil {
		if tracked {
			a.states[complaintID] = snapshot
		}
		a.mu.Unlock()
		if tracked {
			a.publish(complaintID, snapshot)
		}
		return snapshot, &VoteError{Kind: classify(err), ComplaintID: complaintID, Err: err}
	}

	authoritative := State{
		Upvotes:   result.Upvotes,
		Downvotes: result.Downvotes,
		UserVote:  result.UserVote,
		Priority:  result.Priority,
	}
	if tracked {
		a.states[complaintID] = authoritative
	}
	a.mu.Unlock()
	if tracked {
		a.publish(complaintID, authoritative)
	}
	return authoritative, nil
}

// applyDelta computes the optimistic state. Counters are clamped at zero;
// they cannot go negative if the snapshot was consistent, but a stale seed
// must not produce a negative display value.
func applyDelta(s State, requested models.VoteType, toggleOff bool) State {
	if toggleOff {
		s = bump(s, requested, -1)
		s.UserVote = models.VoteNone
		return s
	}
	if s.UserVote != models.VoteNone {
		s = bump(s, s.UserVote, -1)
	}
	s = bump(s, requested, +1)
	s.UserVote = requested
	return s
}

func bump(s State, vote models.VoteType, delta int) State {
	switch vote {
	case models.VoteUpvote:
		s.Upvotes += delta
		if s.Upvotes < 0 {
			s.Upvotes = 0
		}
	case models.VoteDownvote:
		s.Downvotes += delta
		if s.Downvotes < 0 {
			s.Downvotes = 0
		}
	}
	return s
}

func classify(err error) VoteErrorKind {
	switch {
	case api.IsSelfVote(err):
		return SelfVoteForbidden
	case api.IsRateLimited(err):
		return RateLimited
	case api.IsBusy(err):
		return TransientServerBusy
	default:
		return Unknown
	}
}

func (a *Aggregator) publish(complaintID string, state State) {
	a.mu.Lock()
	subs := make([]Subscriber, len(a.subscribers))
	copy(subs, a.subscribers)
	a.mu.Unlock()

	for _, fn := range subs {
		fn(complaintID, state)
	}
}
