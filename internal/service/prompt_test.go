package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"therapy-directory/internal/model"
)

func TestPromptGetFallsBackToDefault(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromptService(db)

	cfg, isDefault, err := svc.Get(model.PromptReviewSummary)
	require.NoError(t, err)
	assert.True(t, isDefault)
	assert.Equal(t, DefaultReviewSummaryPrompt, cfg.PromptTemplate)
	assert.Equal(t, DefaultSystemMessage, cfg.SystemMessage)

	// the default is never persisted
	var count int64
	db.Model(&model.PromptConfig{}).Count(&count)
	assert.Zero(t, count)
}

func TestPromptUpsertCreateThenUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromptService(db)

	action, err := svc.Upsert(model.PromptReviewSummary, "Summarize: {{reviews}}", "sys", "desc")
	require.NoError(t, err)
	assert.Equal(t, PromptActionCreated, action)

	cfg, isDefault, err := svc.Get(model.PromptReviewSummary)
	require.NoError(t, err)
	assert.False(t, isDefault)
	assert.Equal(t, "Summarize: {{reviews}}", cfg.PromptTemplate)

	action, err = svc.Upsert(model.PromptReviewSummary, "Condense: {{reviews}}", "sys2", "desc2")
	require.NoError(t, err)
	assert.Equal(t, PromptActionUpdated, action)

	cfg, _, err = svc.Get(model.PromptReviewSummary)
	require.NoError(t, err)
	assert.Equal(t, "Condense: {{reviews}}", cfg.PromptTemplate)
	assert.Equal(t, "sys2", cfg.SystemMessage)

	// update overwrites in place, no second row
	var count int64
	db.Model(&model.PromptConfig{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPromptGetIgnoresInactive(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromptService(db)

	cfg := model.PromptConfig{
		Name:           model.PromptReviewSummary,
		PromptTemplate: "Disabled: {{reviews}}",
		IsActive:       false,
	}
	require.NoError(t, db.Create(&cfg).Error)

	got, isDefault, err := svc.Get(model.PromptReviewSummary)
	require.NoError(t, err)
	assert.True(t, isDefault)
	assert.Equal(t, DefaultReviewSummaryPrompt, got.PromptTemplate)
}
