package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"therapy-directory/internal/model"
	"therapy-directory/internal/util"
)

func newSummaryService(db *gorm.DB, chat ChatClient) *SummaryService {
	return NewSummaryService(
		NewReviewService(db),
		NewPromptService(db),
		NewCacheService(db),
		chat,
		DefaultSummaryTTL,
		true,
	)
}

func seedReviews(t *testing.T, db *gorm.DB, therapistID uint, ratings ...int) {
	t.Helper()
	for _, rating := range ratings {
		require.NoError(t, db.Create(&model.Review{
			TherapistID: therapistID,
			Rating:      rating,
			ReviewText:  "review text",
		}).Error)
	}
}

func TestSummaryNoReviews(t *testing.T) {
	db := newTestDB(t)
	chat := &stubChat{response: "should not be called"}
	svc := newSummaryService(db, chat)
	createTherapist(t, db, 1)

	result, err := svc.GetReviewSummary(context.Background(), 1, false)
	require.NoError(t, err)

	assert.Nil(t, result.Summary)
	assert.Zero(t, result.ReviewCount)
	assert.False(t, result.Cached)
	assert.Zero(t, chat.calls, "generation must not run for zero reviews")
}

func TestSummaryGenerateThenCacheHit(t *testing.T) {
	db := newTestDB(t)
	chat := &stubChat{response: "  X  "}
	svc := newSummaryService(db, chat)
	createTherapist(t, db, 42)
	seedReviews(t, db, 42, 5, 4)

	first, err := svc.GetReviewSummary(context.Background(), 42, false)
	require.NoError(t, err)
	require.NotNil(t, first.Summary)
	assert.Equal(t, "X", *first.Summary) // trimmed
	assert.Equal(t, 2, first.ReviewCount)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, chat.calls)

	second, err := svc.GetReviewSummary(context.Background(), 42, false)
	require.NoError(t, err)
	require.NotNil(t, second.Summary)
	assert.Equal(t, "X", *second.Summary)
	assert.True(t, second.Cached)
	assert.NotNil(t, second.CachedAt)
	assert.Equal(t, 1, chat.calls, "second call must be served from cache")
}

func TestSummaryPromptSubstitution(t *testing.T) {
	db := newTestDB(t)
	chat := &stubChat{response: "X"}
	svc := newSummaryService(db, chat)
	createTherapist(t, db, 1)
	seedReviews(t, db, 1, 5)

	_, err := NewPromptService(db).Upsert(model.PromptReviewSummary,
		"Summarize: {{reviews}}", "be brief", "")
	require.NoError(t, err)

	_, err = svc.GetReviewSummary(context.Background(), 1, false)
	require.NoError(t, err)

	assert.Equal(t, "be brief", chat.lastSystem)
	assert.Equal(t, "Summarize: Review 1 (5/5 stars):\nreview text\n", chat.lastUser)
	assert.NotContains(t, chat.lastUser, model.PlaceholderReviews)
}

func TestSummarySubstitutesFirstPlaceholderOnly(t *testing.T) {
	db := newTestDB(t)
	chat := &stubChat{response: "X"}
	svc := newSummaryService(db, chat)
	createTherapist(t, db, 1)
	seedReviews(t, db, 1, 5)

	_, err := NewPromptService(db).Upsert(model.PromptReviewSummary,
		"First: {{reviews}} Second: {{reviews}}", "", "")
	require.NoError(t, err)

	_, err = svc.GetReviewSummary(context.Background(), 1, false)
	require.NoError(t, err)

	assert.Equal(t,
		"First: Review 1 (5/5 stars):\nreview text\n Second: {{reviews}}",
		chat.lastUser)
}

func TestSummaryGenerationSurvivesCallerCancel(t *testing.T) {
	db := newTestDB(t)
	chat := &stubChat{response: "X"}
	svc := newSummaryService(db, chat)
	createTherapist(t, db, 1)
	seedReviews(t, db, 1, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// coalesced generation runs detached from the requesting context so
	// one impatient caller cannot fail every waiter sharing the flight
	result, err := svc.GetReviewSummary(ctx, 1, false)
	require.NoError(t, err)
	require.NotNil(t, result.Summary)
	assert.Equal(t, "X", *result.Summary)
	require.NotNil(t, chat.lastCtx)
	assert.NoError(t, chat.lastCtx.Err())
}

func TestSummaryTemplateChangeInvalidates(t *testing.T) {
	db := newTestDB(t)
	chat := &stubChat{response: "X"}
	svc := newSummaryService(db, chat)
	prompts := NewPromptService(db)
	createTherapist(t, db, 1)
	seedReviews(t, db, 1, 5)

	_, err := prompts.Upsert(model.PromptReviewSummary, "First: {{reviews}}", "", "")
	require.NoError(t, err)

	_, err = svc.GetReviewSummary(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Equal(t, 1, chat.calls)

	// template edit shifts the input hash, no clearCache needed
	_, err = prompts.Upsert(model.PromptReviewSummary, "Second: {{reviews}}", "", "")
	require.NoError(t, err)

	result, err := svc.GetReviewSummary(context.Background(), 1, false)
	require.NoError(t, err)
	assert.False(t, result.Cached)
	assert.Equal(t, 2, chat.calls)
}

func TestSummaryForceRefresh(t *testing.T) {
	db := newTestDB(t)
	chat := &stubChat{response: "X"}
	svc := newSummaryService(db, chat)
	createTherapist(t, db, 1)
	seedReviews(t, db, 1, 5)

	_, err := svc.GetReviewSummary(context.Background(), 1, false)
	require.NoError(t, err)

	result, err := svc.GetReviewSummary(context.Background(), 1, true)
	require.NoError(t, err)
	assert.False(t, result.Cached)
	assert.Equal(t, 2, chat.calls, "forceRefresh must bypass the cache")

	// and it writes a fresh row every time
	var count int64
	db.Model(&model.SummaryCache{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestSummaryClearCacheForcesMiss(t *testing.T) {
	db := newTestDB(t)
	chat := &stubChat{response: "X"}
	svc := newSummaryService(db, chat)
	createTherapist(t, db, 1)
	seedReviews(t, db, 1, 5)

	_, err := svc.GetReviewSummary(context.Background(), 1, false)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCache(1))

	result, err := svc.GetReviewSummary(context.Background(), 1, false)
	require.NoError(t, err)
	assert.False(t, result.Cached)
	assert.Equal(t, 2, chat.calls)
}

func TestSummaryStoredHashMatchesInput(t *testing.T) {
	db := newTestDB(t)
	chat := &stubChat{response: "X"}
	svc := newSummaryService(db, chat)
	createTherapist(t, db, 42)

	require.NoError(t, db.Create(&model.Review{TherapistID: 42, Rating: 4, ReviewText: "Good"}).Error)
	require.NoError(t, db.Create(&model.Review{TherapistID: 42, Rating: 5, ReviewText: "Great"}).Error)

	template := "Summarize: {{reviews}}"
	_, err := NewPromptService(db).Upsert(model.PromptReviewSummary, template, "", "")
	require.NoError(t, err)

	_, err = svc.GetReviewSummary(context.Background(), 42, false)
	require.NoError(t, err)

	// newest review first; hash covers rendered text + raw template
	reviewsText := "Review 1 (5/5 stars):\nGreat\n\nReview 2 (4/5 stars):\nGood\n"
	expectedHash := util.HashContent(reviewsText + template)

	var entry model.SummaryCache
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, expectedHash, entry.InputHash)
	assert.Equal(t, model.EntityTherapistReviews, entry.EntityType)
	assert.Equal(t, uint(42), entry.EntityID)
}

func TestSummaryLLMErrorPropagates(t *testing.T) {
	db := newTestDB(t)
	chat := &stubChat{err: errors.New("provider down")}
	svc := newSummaryService(db, chat)
	createTherapist(t, db, 1)
	seedReviews(t, db, 1, 5)

	_, err := svc.GetReviewSummary(context.Background(), 1, false)
	require.Error(t, err)

	// nothing cached on failure
	var count int64
	db.Model(&model.SummaryCache{}).Count(&count)
	assert.Zero(t, count)
}

func TestSummaryEmptyCompletionIsValid(t *testing.T) {
	db := newTestDB(t)
	chat := &stubChat{response: ""}
	svc := newSummaryService(db, chat)
	createTherapist(t, db, 1)
	seedReviews(t, db, 1, 5)

	result, err := svc.GetReviewSummary(context.Background(), 1, false)
	require.NoError(t, err)
	require.NotNil(t, result.Summary)
	assert.Equal(t, "", *result.Summary)
}

func TestTestPromptBypassesCache(t *testing.T) {
	db := newTestDB(t)
	chat := &stubChat{response: "generated"}
	svc := newSummaryService(db, chat)
	createTherapist(t, db, 1)
	seedReviews(t, db, 1, 5)

	result, err := svc.TestPrompt(context.Background(), "Try: {{reviews}}", "", 1)
	require.NoError(t, err)
	assert.Equal(t, "generated", result.Summary)
	assert.Equal(t, 1, result.ReviewCount)
	assert.Contains(t, result.InputPreview, "Review 1 (5/5 stars):")
	assert.Contains(t, chat.lastUser, "Try: Review 1")
	assert.Equal(t, DefaultSystemMessage, chat.lastSystem)

	// no cache read or write
	var count int64
	db.Model(&model.SummaryCache{}).Count(&count)
	assert.Zero(t, count)
}

func TestTestPromptRequiresReviews(t *testing.T) {
	db := newTestDB(t)
	chat := &stubChat{response: "X"}
	svc := newSummaryService(db, chat)
	createTherapist(t, db, 1)

	_, err := svc.TestPrompt(context.Background(), "Try: {{reviews}}", "", 1)
	assert.ErrorIs(t, err, ErrNoReviews)
	assert.Zero(t, chat.calls)
}
