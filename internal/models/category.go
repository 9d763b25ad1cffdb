package models

import (
	"time"
)

// Category represents a fixed post category
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Type      string    `gorm:"type:varchar(30);uniqueIndex;not null;column:type"`
	Name      string    `gorm:"type:varchar(50);not null;column:name"`
	Slug      string    `gorm:"type:varchar(50);uniqueIndex;not null;column:slug"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}

// Category type constants
const (
	CategoryArtificialIntelligence = "artificial_intelligence"
	CategoryHardware               = "hardware"
	CategorySmartphone             = "smartphone"
	CategoryGaming                 = "gaming"
	CategoryHowTo                  = "how_to"
	CategoryNews                   = "news"
	CategoryOther                  = "other"
)

// CategoryName returns the display name for a category type
func CategoryName(categoryType string) string {
	names := map[string]string{
		CategoryArtificialIntelligence: "Artificial Intelligence",
		CategoryHardware:               "Hardware",
		CategorySmartphone:             "Smartphone",
		CategoryGaming:                 "Gaming",
		CategoryHowTo:                  "How To",
		CategoryNews:                   "News",
		CategoryOther:                  "Other",
	}
	if name, ok := names[categoryType]; ok {
		return name
	}
	return "Other"
}
