package model

import "time"

// Placeholder substituted with rendered review text before the prompt is
// sent to the LLM. The template text is hashed verbatim, so the
// placeholder itself participates in the cache key.
const PlaceholderReviews = "{{reviews}}"

// Known prompt names.
const PromptReviewSummary = "review_summary"

// PromptConfig is an admin-editable prompt template. At most one active
// row per name; when none exists a built-in default is used instead.
type PromptConfig struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	PromptTemplate string    `gorm:"type:text;not null" json:"prompt_template"`
	SystemMessage  string    `gorm:"type:text" json:"system_message"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
