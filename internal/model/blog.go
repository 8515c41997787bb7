package model

import "time"

type BlogCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type BlogPost struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Slug             string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title            string     `gorm:"size:500;not null" json:"title"`
	Excerpt          string     `gorm:"type:text" json:"excerpt"`
	Content          string     `gorm:"type:text;not null" json:"content"`
	FeaturedImageURL string     `gorm:"size:500" json:"featured_image_url"`
	AuthorID         uint       `json:"author_id"`
	CategoryID       uint       `json:"category_id"`
	IsPublished      bool       `gorm:"default:false" json:"is_published"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	ViewCount        int        `gorm:"default:0" json:"view_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
