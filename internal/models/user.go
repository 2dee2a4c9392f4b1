package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role determines what a user may do with a complaint. Students submit and
// vote; authorities triage, transition and escalate; admins additionally
// manage spam and assignment.
type Role string

const (
	RoleStudent   Role = "student"
	RoleAuthority Role = "authority"
	RoleAdmin     Role = "admin"
)

// RequiresNotifications reports whether the notification poller should run
// for this role. Every current role receives notifications; the gate exists
// so service accounts can opt out.
func (r Role) RequiresNotifications() bool {
	return r == RoleStudent || r == RoleAuthority || r == RoleAdmin
}

// User represents an account in the system.
type User struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Email string `gorm:"uniqueIndex" json:"email"`
	Name  string `gorm:"type:text" json:"name"`
	Role  Role   `gorm:"type:text;not null;default:student" json:"role"`
}

// BeforeCreate generates a new UUID for the user if ID is not already set.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
