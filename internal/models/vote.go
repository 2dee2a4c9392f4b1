package models

import "time"

// VoteType is the direction of a vote. An empty value means the user has no
// active vote on the complaint.
type VoteType string

const (
	VoteNone     VoteType = ""
	VoteUpvote   VoteType = "upvote"
	VoteDownvote VoteType = "downvote"
)

// Vote is one voter's vote on one complaint. At most one row exists per
// (complaint, voter); casting the same type again deletes the row, casting
// the other type flips it.
type Vote struct {
	ID          uint     `gorm:"primaryKey"`
	ComplaintID string   `gorm:"type:uuid;not null;uniqueIndex:idx_complaint_voter"`
	VoterID     string   `gorm:"type:text;not null;uniqueIndex:idx_complaint_voter"`
	Type        VoteType `gorm:"type:text;not null"`
	CreatedAt   time.Time
}

// VoteResult is the authoritative aggregate returned by the vote endpoints.
// Priority is included because vote volume can shift it server-side and the
// client must not guess the new value.
type VoteResult struct {
	Upvotes   int      `json:"upvotes"`
	Downvotes int      `json:"downvotes"`
	UserVote  VoteType `json:"user_vote"`
	Priority  Priority `json:"priority"`
}
