package service

import (
	"errors"

	"gorm.io/gorm"

	"therapy-directory/internal/model"
)

// Built-in fallbacks used when no active prompt config exists for
// review_summary. Never persisted.
const DefaultReviewSummaryPrompt = `You are analyzing reviews for a mental health therapist. Your task is to create a helpful, balanced summary that potential clients can use to make informed decisions.

Given the following reviews, provide:
1. A brief overall impression (2-3 sentences)
2. Key strengths mentioned across reviews
3. Any common concerns or areas for improvement
4. Who this therapist might be best suited for

Reviews:
{{reviews}}

Provide a professional, empathetic summary that helps potential clients understand what to expect. Be honest but constructive.`

const DefaultSystemMessage = "You are a helpful assistant specialized in analyzing mental health professional reviews to help potential clients make informed decisions."

const (
	PromptActionCreated = "created"
	PromptActionUpdated = "updated"
)

type PromptService struct {
	db *gorm.DB
}

func NewPromptService(db *gorm.DB) *PromptService {
	return &PromptService{db: db}
}

// Get returns the active prompt config for a name, or the built-in
// default when none exists. The second return reports whether the
// default was used.
func (s *PromptService) Get(name string) (*model.PromptConfig, bool, error) {
	var cfg model.PromptConfig
	err := s.db.Where("name = ? AND is_active = ?", name, true).First(&cfg).Error
	if err == nil {
		return &cfg, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	return &model.PromptConfig{
		Name:           name,
		Description:    "Default review summary prompt",
		PromptTemplate: DefaultReviewSummaryPrompt,
		SystemMessage:  DefaultSystemMessage,
		IsActive:       true,
	}, true, nil
}

// Upsert creates the named config or overwrites its fields in place.
// There is no version history; cache rows generated under the old
// template stay valid only through their stored input hash.
func (s *PromptService) Upsert(name, template, systemMessage, description string) (string, error) {
	var existing model.PromptConfig
	err := s.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{
			"prompt_template": template,
			"system_message":  systemMessage,
			"description":     description,
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return "", err
		}
		return PromptActionUpdated, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	cfg := model.PromptConfig{
		Name:           name,
		Description:    description,
		PromptTemplate: template,
		SystemMessage:  systemMessage,
		IsActive:       true,
	}
	if err := s.db.Create(&cfg).Error; err != nil {
		return "", err
	}
	return PromptActionCreated, nil
}
