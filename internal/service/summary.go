package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"therapy-directory/internal/model"
	"therapy-directory/internal/util"
)

// ChatClient is the slice of the LLM service the orchestrator needs.
// Tests substitute a stub.
type ChatClient interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// ReviewSummary is the caller-facing result of a summary request.
// Summary is nil when the therapist has no reviews.
type ReviewSummary struct {
	Summary     *string    `json:"summary"`
	ReviewCount int        `json:"review_count"`
	Cached      bool       `json:"cached"`
	CachedAt    *time.Time `json:"cached_at,omitempty"`
}

// PromptTest is the result of an ad hoc template invocation.
type PromptTest struct {
	Summary      string `json:"summary"`
	ReviewCount  int    `json:"review_count"`
	InputPreview string `json:"input_preview"`
}

// SummaryService decides cache-hit vs regenerate and owns the
// generate-then-persist sequence. LLM failures propagate to the caller
// untouched; retries are a UI concern.
type SummaryService struct {
	reviews *ReviewService
	prompts *PromptService
	cache   *CacheService
	chat    ChatClient
	ttl     time.Duration
	group   *singleflight.Group // nil disables miss coalescing
}

func NewSummaryService(reviews *ReviewService, prompts *PromptService, cache *CacheService, chat ChatClient, ttl time.Duration, coalesce bool) *SummaryService {
	s := &SummaryService{
		reviews: reviews,
		prompts: prompts,
		cache:   cache,
		chat:    chat,
		ttl:     ttl,
	}
	if coalesce {
		s.group = &singleflight.Group{}
	}
	return s
}

// GetReviewSummary returns the cached summary for a therapist's current
// review set and active template, generating and persisting a fresh one
// on miss, expiry, or forceRefresh.
func (s *SummaryService) GetReviewSummary(ctx context.Context, therapistID uint, forceRefresh bool) (*ReviewSummary, error) {
	reviews, err := s.reviews.ListByTherapist(therapistID, false)
	if err != nil {
		return nil, err
	}

	if len(reviews) == 0 {
		return &ReviewSummary{Summary: nil, ReviewCount: 0, Cached: false}, nil
	}

	cfg, _, err := s.prompts.Get(model.PromptReviewSummary)
	if err != nil {
		return nil, err
	}

	reviewsText := RenderReviewsText(reviews)
	inputHash := util.HashContent(reviewsText + cfg.PromptTemplate)

	if !forceRefresh {
		entry, err := s.cache.Lookup(model.EntityTherapistReviews, therapistID, inputHash)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			summary := entry.Summary
			cachedAt := entry.CreatedAt
			return &ReviewSummary{
				Summary:     &summary,
				ReviewCount: len(reviews),
				Cached:      true,
				CachedAt:    &cachedAt,
			}, nil
		}
	}

	summary, err := s.generate(ctx, therapistID, inputHash, cfg.SystemMessage, cfg.PromptTemplate, reviewsText)
	if err != nil {
		return nil, err
	}

	return &ReviewSummary{
		Summary:     &summary,
		ReviewCount: len(reviews),
		Cached:      false,
	}, nil
}

// generate calls the LLM and persists the result. With coalescing on,
// concurrent misses for the same key share one provider call.
func (s *SummaryService) generate(ctx context.Context, therapistID uint, inputHash, systemMessage, template, reviewsText string) (string, error) {
	run := func(ctx context.Context) (string, error) {
		// only the first placeholder occurrence is substituted
		finalPrompt := strings.Replace(template, model.PlaceholderReviews, reviewsText, 1)

		text, err := s.chat.Chat(ctx, systemMessage, finalPrompt)
		if err != nil {
			return "", err
		}
		summary := strings.TrimSpace(text)

		_, err = s.cache.Store(model.EntityTherapistReviews, therapistID,
			model.PromptReviewSummary, summary, inputHash, s.ttl)
		if err != nil {
			return "", err
		}
		return summary, nil
	}

	if s.group == nil {
		return run(ctx)
	}

	key := fmt.Sprintf("%s:%d:%s", model.EntityTherapistReviews, therapistID, inputHash)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// the result is shared across coalesced waiters, so the
		// leader must not die with the first caller's request
		return run(context.WithoutCancel(ctx))
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// TestPrompt runs a candidate template against a therapist's reviews,
// bypassing the cache entirely. Lets an administrator iterate on wording
// before promoting it via Upsert.
func (s *SummaryService) TestPrompt(ctx context.Context, template, systemMessage string, therapistID uint) (*PromptTest, error) {
	reviews, err := s.reviews.ListByTherapist(therapistID, false)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, ErrNoReviews
	}

	reviewsText := RenderReviewsText(reviews)
	finalPrompt := strings.Replace(template, model.PlaceholderReviews, reviewsText, 1)

	if systemMessage == "" {
		systemMessage = DefaultSystemMessage
	}

	text, err := s.chat.Chat(ctx, systemMessage, finalPrompt)
	if err != nil {
		return nil, err
	}

	return &PromptTest{
		Summary:      strings.TrimSpace(text),
		ReviewCount:  len(reviews),
		InputPreview: util.Preview(reviewsText, 500),
	}, nil
}

// ClearCache drops all cached summaries for a therapist.
func (s *SummaryService) ClearCache(therapistID uint) error {
	return s.cache.Clear(model.EntityTherapistReviews, therapistID)
}
