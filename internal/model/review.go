package model

import "time"

// Review is submitted publicly and hidden until an administrator
// approves it. Rows are never deleted, only the approval flag changes.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TherapistID  uint      `gorm:"not null;index" json:"therapist_id"`
	Rating       int       `gorm:"not null" json:"rating"` // 1-5 stars
	ReviewText   string    `gorm:"type:text" json:"review_text"`
	ReviewerName string    `gorm:"size:100" json:"reviewer_name"`
	IsApproved   bool      `gorm:"default:false" json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
}
