package models

import (
	"database/sql"
	"time"
)

// Comment represents a comment on a post, optionally replying to
// another comment. Replies always belong to the same post as their
// parent; that invariant is enforced on the write path.
type Comment struct {
	ID         int64         `gorm:"primaryKey;autoIncrement;column:id"`
	PostID     int64         `gorm:"not null;index:idx_comments_post_created;column:post_id"`
	AuthorID   int64         `gorm:"not null;index;column:author_id"`
	ParentID   sql.NullInt64 `gorm:"index;column:parent_id"`
	Content    string        `gorm:"type:text;not null;column:content"`
	IsApproved bool          `gorm:"not null;default:true;index;column:is_approved"`
	CreatedAt  time.Time     `gorm:"not null;index:idx_comments_post_created;column:created_at"`
	UpdatedAt  time.Time     `gorm:"not null;column:updated_at"`

	// Relationships
	Post    *Post     `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Author  *User     `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Parent  *Comment  `gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:CASCADE"`
	Replies []Comment `gorm:"foreignKey:ParentID;references:ID"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// IsReply reports whether the comment replies to another comment
func (c *Comment) IsReply() bool {
	return c.ParentID.Valid
}
