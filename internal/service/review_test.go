package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"therapy-directory/internal/model"
)

func TestRenderReviewsText(t *testing.T) {
	reviews := []model.Review{
		{Rating: 5, ReviewText: "Great"},
		{Rating: 4, ReviewText: "Good"},
	}

	expected := "Review 1 (5/5 stars):\nGreat\n\nReview 2 (4/5 stars):\nGood\n"
	assert.Equal(t, expected, RenderReviewsText(reviews))
}

func TestRenderReviewsTextEmpty(t *testing.T) {
	assert.Equal(t, "", RenderReviewsText(nil))
	assert.Equal(t, "", RenderReviewsText([]model.Review{}))
}

func TestListByTherapistOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	createTherapist(t, db, 1)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		review := model.Review{
			TherapistID: 1,
			Rating:      5,
			ReviewText:  "review",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&review).Error)
	}

	reviews, err := svc.ListByTherapist(1, false)
	require.NoError(t, err)
	require.Len(t, reviews, 3)

	// newest first, stable
	assert.True(t, reviews[0].CreatedAt.After(reviews[1].CreatedAt))
	assert.True(t, reviews[1].CreatedAt.After(reviews[2].CreatedAt))
}

func TestListByTherapistApprovedOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	createTherapist(t, db, 1)

	require.NoError(t, db.Create(&model.Review{TherapistID: 1, Rating: 5, IsApproved: true}).Error)
	require.NoError(t, db.Create(&model.Review{TherapistID: 1, Rating: 1, IsApproved: false}).Error)

	all, err := svc.ListByTherapist(1, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	approved, err := svc.ListByTherapist(1, true)
	require.NoError(t, err)
	assert.Len(t, approved, 1)
	assert.True(t, approved[0].IsApproved)
}

func TestSubmitStartsUnapproved(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	createTherapist(t, db, 1)

	review := model.Review{TherapistID: 1, Rating: 4, ReviewText: "Fine", IsApproved: true}
	require.NoError(t, svc.Submit(&review))

	var stored model.Review
	require.NoError(t, db.First(&stored, review.ID).Error)
	assert.False(t, stored.IsApproved)
}

func TestSubmitValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	createTherapist(t, db, 1)

	assert.Error(t, svc.Submit(&model.Review{TherapistID: 1, Rating: 0}))
	assert.Error(t, svc.Submit(&model.Review{TherapistID: 1, Rating: 6}))
	assert.ErrorIs(t, svc.Submit(&model.Review{TherapistID: 99, Rating: 3}), ErrNotFound)
}

func TestSetApproval(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	createTherapist(t, db, 1)

	review := model.Review{TherapistID: 1, Rating: 3}
	require.NoError(t, db.Create(&review).Error)

	require.NoError(t, svc.SetApproval(review.ID, true))

	var stored model.Review
	require.NoError(t, db.First(&stored, review.ID).Error)
	assert.True(t, stored.IsApproved)

	assert.ErrorIs(t, svc.SetApproval(12345, true), ErrNotFound)
}

func TestRecomputeRatings(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	createTherapist(t, db, 1)
	createTherapist(t, db, 2)

	require.NoError(t, db.Create(&model.Review{TherapistID: 1, Rating: 5, IsApproved: true}).Error)
	require.NoError(t, db.Create(&model.Review{TherapistID: 1, Rating: 4, IsApproved: true}).Error)
	require.NoError(t, db.Create(&model.Review{TherapistID: 1, Rating: 1, IsApproved: false}).Error)

	require.NoError(t, svc.RecomputeRatings())

	var first, second model.Therapist
	require.NoError(t, db.First(&first, 1).Error)
	require.NoError(t, db.First(&second, 2).Error)

	assert.Equal(t, 45, first.Rating) // avg(5,4) * 10
	assert.Equal(t, 2, first.ReviewCount)
	assert.Equal(t, 0, second.Rating)
	assert.Equal(t, 0, second.ReviewCount)
}
