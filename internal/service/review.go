package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"therapy-directory/internal/model"
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// ListByTherapist returns reviews newest first. The id tiebreak keeps
// the order stable so the rendered text hashes reproducibly.
func (s *ReviewService) ListByTherapist(therapistID uint, approvedOnly bool) ([]model.Review, error) {
	query := s.db.Where("therapist_id = ?", therapistID)
	if approvedOnly {
		query = query.Where("is_approved = ?", true)
	}

	var reviews []model.Review
	if err := query.Order("created_at DESC, id DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Submit stores a public review submission. It always starts unapproved.
func (s *ReviewService) Submit(review *model.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	var therapist model.Therapist
	if err := s.db.First(&therapist, review.TherapistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	review.IsApproved = false
	return s.db.Create(review).Error
}

// SetApproval flips the approval flag on an existing review.
func (s *ReviewService) SetApproval(reviewID uint, approved bool) error {
	var review model.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Model(&review).Update("is_approved", approved).Error
}

// RecomputeRatings refreshes the denormalized rating / review-count
// columns on therapists from their approved reviews. Rating is the
// average times ten, matching how the profile page renders it.
func (s *ReviewService) RecomputeRatings() error {
	if err := s.db.Model(&model.Therapist{}).Where("1 = 1").
		Updates(map[string]interface{}{"rating": 0, "review_count": 0}).Error; err != nil {
		return err
	}

	type ratingAgg struct {
		TherapistID uint
		Avg         float64
		Count       int64
	}

	var aggs []ratingAgg
	err := s.db.Model(&model.Review{}).
		Select("therapist_id, AVG(rating) as avg, COUNT(*) as count").
		Where("is_approved = ?", true).
		Group("therapist_id").
		Scan(&aggs).Error
	if err != nil {
		return err
	}

	for _, agg := range aggs {
		err := s.db.Model(&model.Therapist{}).Where("id = ?", agg.TherapistID).
			Updates(map[string]interface{}{
				"rating":       int(agg.Avg*10 + 0.5),
				"review_count": agg.Count,
			}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// RenderReviewsText formats reviews into the text block fed to the LLM:
// numbered entries with the star rating, separated by blank lines. This
// exact layout is part of the cache key, so changing it invalidates all
// cached summaries.
func RenderReviewsText(reviews []model.Review) string {
	blocks := make([]string, 0, len(reviews))
	for i, r := range reviews {
		blocks = append(blocks, fmt.Sprintf("Review %d (%d/5 stars):\n%s\n", i+1, r.Rating, r.ReviewText))
	}
	return strings.Join(blocks, "\n")
}
