package model

import "time"

// Service is a static resource page (e.g. "online therapy", "couples
// counseling") maintained by administrators.
type Service struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Slug         string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Content      string    `gorm:"type:text" json:"content"`
	IconName     string    `gorm:"size:100" json:"icon_name"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
