package models

import (
	"time"
)

// User represents a registered account. Rows are written by the auth
// service; this API only reads them for identity and response shaping.
type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Email          string    `gorm:"type:varchar(254);uniqueIndex;not null;column:email"`
	FullName       string    `gorm:"type:varchar(150);column:full_name"`
	ProfilePicture string    `gorm:"type:varchar(512);column:profile_picture"`
	IsActive       bool      `gorm:"not null;default:true;column:is_active"`
	CreatedAt      time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
