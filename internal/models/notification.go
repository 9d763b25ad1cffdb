package models

import (
	"database/sql"
	"time"
)

// Notification represents a notification queued for a recipient.
// Rows are only written as a side effect of engagement and comment
// actions, never when actor equals recipient.
type Notification struct {
	ID          int64         `gorm:"primaryKey;autoIncrement;column:id"`
	RecipientID int64         `gorm:"not null;index:idx_notifications_recipient;column:recipient_id"`
	ActorID     int64         `gorm:"not null;column:actor_id"`
	Verb        string        `gorm:"type:varchar(20);not null;column:verb"`
	PostID      sql.NullInt64 `gorm:"column:post_id"`
	CommentID   sql.NullInt64 `gorm:"column:comment_id"`
	IsRead      bool          `gorm:"not null;default:false;index:idx_notifications_recipient;column:is_read"`
	CreatedAt   time.Time     `gorm:"not null;index:idx_notifications_recipient,sort:desc;column:created_at"`

	// Relationships
	Recipient *User    `gorm:"foreignKey:RecipientID;references:ID;constraint:OnDelete:CASCADE"`
	Actor     *User    `gorm:"foreignKey:ActorID;references:ID;constraint:OnDelete:CASCADE"`
	Post      *Post    `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Comment   *Comment `gorm:"foreignKey:CommentID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// Notification verb constants
const (
	NotifyVerbLike    = "like"
	NotifyVerbComment = "comment"
	NotifyVerbReply   = "reply"
)

// ValidNotifyVerb reports whether verb belongs to the fixed enumeration
func ValidNotifyVerb(verb string) bool {
	switch verb {
	case NotifyVerbLike, NotifyVerbComment, NotifyVerbReply:
		return true
	}
	return false
}
