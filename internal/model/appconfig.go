package model

import "time"

// AppConfig holds runtime-editable settings as key/value rows, mainly
// the LLM provider connection details.
type AppConfig struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"size:100;uniqueIndex;not null"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time
}

// Predefined config keys.
const (
	ConfigLLMApiURL = "llm_api_url"
	ConfigLLMApiKey = "llm_api_key"
	ConfigLLMModel  = "llm_model"
)
