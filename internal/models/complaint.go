package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Status is the lifecycle state of a complaint.
type Status string

const (
	StatusRaised     Status = "Raised"
	StatusInProgress Status = "InProgress"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
	StatusSpam       Status = "Spam"
)

// IsTerminal reports whether no authority action beyond closure remains.
// Spam still admits a transition to Closed, but counts as terminal for
// escalation purposes.
func (s Status) IsTerminal() bool {
	return s == StatusClosed || s == StatusSpam
}

// Priority is assigned by the backend classifier on submission and
// re-evaluated server-side as votes accumulate. Clients only display it.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Complaint represents a grievance submitted by a student.
// Status changes go through the lifecycle engine, vote counters through the
// vote aggregator, escalation fields through the escalation tracker. Records
// are never deleted, only closed.
type Complaint struct {
	// ID is the unique identifier for the complaint (UUID).
	ID string `gorm:"primaryKey" json:"id"`
	// SubmitterID is the ID of the student who raised the complaint.
	SubmitterID string `gorm:"type:text;not null;index" json:"submitter_id"`
	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// Category comes from the external classifier together with the initial
	// priority; the engine treats both as opaque.
	Category string         `gorm:"type:text" json:"category"`
	Tags     pq.StringArray `gorm:"type:text[]" json:"tags"`

	Status Status `gorm:"type:text;not null;index" json:"status"`
	// Priority is the currently effective priority.
	Priority Priority `gorm:"type:text;not null" json:"priority"`
	// BasePriority is the classifier-assigned floor; vote volume can raise
	// the effective priority above it but never below.
	BasePriority Priority `gorm:"type:text;not null" json:"-"`

	Upvotes   int `gorm:"not null;default:0" json:"upvotes"`
	Downvotes int `gorm:"not null;default:0" json:"downvotes"`

	// EscalationLevel is monotonic; 0 means never escalated. The reason,
	// actor and timestamp describe the latest escalation and are cleared on
	// resolution while the level remains as an audit trail.
	EscalationLevel  int        `gorm:"not null;default:0" json:"escalation_level"`
	EscalationReason string     `gorm:"type:text" json:"escalation_reason,omitempty"`
	EscalatedBy      string     `gorm:"type:text" json:"escalated_by,omitempty"`
	EscalatedAt      *time.Time `json:"escalated_at,omitempty"`

	// AssignedAuthorityID references the authority that owns triage.
	AssignedAuthorityID *string `gorm:"type:text;index" json:"assigned_authority_id,omitempty"`

	History []StatusHistoryEntry `gorm:"foreignKey:ComplaintID" json:"history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID for the complaint if one is not already set.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// NetVotes is a derived display value, never stored independently.
func (c *Complaint) NetVotes() int {
	return c.Upvotes - c.Downvotes
}

// AgeInDays is the whole number of days since submission, used by authority
// views to flag overdue complaints.
func (c *Complaint) AgeInDays(now time.Time) int {
	if now.Before(c.CreatedAt) {
		return 0
	}
	return int(now.Sub(c.CreatedAt).Hours() / 24)
}

// StatusHistoryEntry is an append-only record of one status transition.
// Entries are ordered by UpdatedAt; the newest entry's NewStatus always
// matches the complaint's current status.
type StatusHistoryEntry struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	ComplaintID string `gorm:"type:uuid;not null;index" json:"-"`
	OldStatus   Status `gorm:"type:text;not null" json:"old_status"`
	NewStatus   Status `gorm:"type:text;not null" json:"new_status"`
	// Reason is optional unless the target status requires one.
	Reason    string    `gorm:"type:text" json:"reason,omitempty"`
	UpdatedBy string    `gorm:"type:text;not null" json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}
