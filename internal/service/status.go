package service

import (
	"time"

	"gorm.io/gorm"

	"therapy-directory/internal/model"
)

type StatusService struct {
	db    *gorm.DB
	cache *CacheService
}

type SystemStatus struct {
	TotalTherapists  int64 `json:"total_therapists"`
	ActiveTherapists int64 `json:"active_therapists"`

	TotalReviews    int64 `json:"total_reviews"`
	PendingReviews  int64 `json:"pending_reviews"`
	ApprovedReviews int64 `json:"approved_reviews"`

	TotalPosts     int64 `json:"total_posts"`
	PublishedPosts int64 `json:"published_posts"`

	CacheEntries      int64 `json:"cache_entries"`
	ValidCacheEntries int64 `json:"valid_cache_entries"`

	NextSweepTime     time.Time `json:"next_sweep_time"`
	NextRecomputeTime time.Time `json:"next_recompute_time"`
}

func NewStatusService(db *gorm.DB, cache *CacheService) *StatusService {
	return &StatusService{db: db, cache: cache}
}

// GetSystemStatus collects entity counts for the admin dashboard.
func (s *StatusService) GetSystemStatus() (*SystemStatus, error) {
	status := &SystemStatus{}

	s.db.Model(&model.Therapist{}).Count(&status.TotalTherapists)
	s.db.Model(&model.Therapist{}).Where("is_active = ?", true).Count(&status.ActiveTherapists)

	s.db.Model(&model.Review{}).Count(&status.TotalReviews)
	s.db.Model(&model.Review{}).Where("is_approved = ?", false).Count(&status.PendingReviews)
	s.db.Model(&model.Review{}).Where("is_approved = ?", true).Count(&status.ApprovedReviews)

	s.db.Model(&model.BlogPost{}).Count(&status.TotalPosts)
	s.db.Model(&model.BlogPost{}).Where("is_published = ?", true).Count(&status.PublishedPosts)

	total, valid, err := s.cache.Count()
	if err != nil {
		return nil, err
	}
	status.CacheEntries = total
	status.ValidCacheEntries = valid

	return status, nil
}
