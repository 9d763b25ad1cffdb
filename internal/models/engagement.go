package models

import (
	"time"
)

// Like represents a post like. Row presence means "liked"; the
// composite unique index arbitrates concurrent toggles.
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64     `gorm:"not null;index;uniqueIndex:idx_likes_post_user;column:post_id"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:idx_likes_post_user;column:user_id"`
	CreatedAt time.Time `gorm:"not null;index;column:created_at"`

	// Relationships
	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "likes"
}

// CommentLike represents a comment like, same toggle semantics as Like
type CommentLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	CommentID int64     `gorm:"not null;index;uniqueIndex:idx_comment_likes_comment_user;column:comment_id"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:idx_comment_likes_comment_user;column:user_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Comment *Comment `gorm:"foreignKey:CommentID;references:ID;constraint:OnDelete:CASCADE"`
	User    *User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for CommentLike
func (CommentLike) TableName() string {
	return "comment_likes"
}

// Bookmark represents a saved post
type Bookmark struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64     `gorm:"not null;index;uniqueIndex:idx_bookmarks_post_user;column:post_id"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:idx_bookmarks_post_user;column:user_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Bookmark
func (Bookmark) TableName() string {
	return "bookmarks"
}
