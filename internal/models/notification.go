package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is a personal message to one user, e.g. "your complaint was
// resolved". Unlike notices it carries an explicit read flag.
type Notification struct {
	gorm.Model

	UserID string `gorm:"type:text;not null;index" json:"user_id"`
	// ComplaintID links the notification to the complaint that caused it.
	ComplaintID string `gorm:"type:uuid;index" json:"complaint_id,omitempty"`
	Message     string `gorm:"type:text;not null" json:"message"`
	IsRead      bool   `gorm:"not null;default:false" json:"is_read"`
}

// Notice is a broadcast announcement visible to everyone. There is no
// per-user read state; a notice counts as unread for a user when it was
// created after their last "seen" marker.
type Notice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	PostedBy  string    `gorm:"type:text;not null" json:"posted_by"`
	CreatedAt time.Time `json:"created_at"`
}
