package models

import (
	"database/sql"
	"time"
)

// Post represents a blog post
type Post struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Title     string    `gorm:"type:varchar(200);not null;column:title"`
	Slug      string    `gorm:"type:varchar(220);uniqueIndex;not null;column:slug"`
	Content   string    `gorm:"type:text;not null;column:content"`
	Image     string    `gorm:"type:varchar(512);column:image"`
	Status    string    `gorm:"type:varchar(20);not null;default:'draft';index;column:status"`
	AuthorID  int64     `gorm:"not null;index;column:author_id"`
	ViewCount int64     `gorm:"not null;default:0;column:view_count"`
	CreatedAt time.Time `gorm:"not null;index:,sort:desc;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`

	// Relationships
	Author     *User      `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Categories []Category `gorm:"many2many:post_categories"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "blog_posts"
}

// Post status constants
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// IsPublished reports whether the post is externally discoverable
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// PostView tracks an individual page view for analytics
type PostView struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64         `gorm:"not null;index:idx_post_views_post_created;column:post_id"`
	UserID    sql.NullInt64 `gorm:"column:user_id"`
	IPAddress string        `gorm:"type:varchar(45);index;column:ip_address"`
	UserAgent string        `gorm:"type:text;column:user_agent"`
	CreatedAt time.Time     `gorm:"not null;index:idx_post_views_post_created,sort:desc;column:created_at"`

	// Relationships
	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for PostView
func (PostView) TableName() string {
	return "blog_post_views"
}
