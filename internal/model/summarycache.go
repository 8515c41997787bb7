package model

import "time"

// Entity types summarized by the cache.
const EntityTherapistReviews = "therapist_reviews"

// SummaryCache stores generated summaries keyed by (entity type, entity
// id, input hash). Rows are append-only; a nil ExpiresAt never expires.
// Template or review-set changes shift the hash and strand old rows,
// which the scheduler sweep eventually removes.
type SummaryCache struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EntityType string     `gorm:"size:50;not null;index:idx_summary_key" json:"entity_type"`
	EntityID   uint       `gorm:"not null;index:idx_summary_key" json:"entity_id"`
	PromptName string     `gorm:"size:100;not null" json:"prompt_name"`
	Summary    string     `gorm:"type:text;not null" json:"summary"`
	InputHash  string     `gorm:"size:64;not null;index:idx_summary_key" json:"input_hash"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}
