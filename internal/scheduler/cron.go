package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"therapy-directory/config"
	"therapy-directory/internal/logger"
	"therapy-directory/internal/service"
)

// Scheduler runs the maintenance jobs: purging expired summary-cache
// rows and recomputing denormalized therapist ratings.
type Scheduler struct {
	cron             *cron.Cron
	cache            *service.CacheService
	reviews          *service.ReviewService
	config           config.CronConfig
	sweepEntryID     cron.EntryID
	recomputeEntryID cron.EntryID
}

func NewScheduler(cache *service.CacheService, reviews *service.ReviewService, cfg config.CronConfig) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		cache:   cache,
		reviews: reviews,
		config:  cfg,
	}
}

func (s *Scheduler) Start() {
	s.sweepEntryID, _ = s.cron.AddFunc(s.config.SweepInterval, func() {
		purged, err := s.cache.PurgeExpired()
		if err != nil {
			logger.Log.Errorw("cache sweep failed", "error", err)
			return
		}
		logger.Log.Infow("cache sweep complete", "purged", purged)
	})

	s.recomputeEntryID, _ = s.cron.AddFunc(s.config.RecomputeInterval, func() {
		if err := s.reviews.RecomputeRatings(); err != nil {
			logger.Log.Errorw("rating recompute failed", "error", err)
			return
		}
		logger.Log.Debug("rating recompute complete")
	})

	s.cron.Start()
	logger.Log.Infow("scheduler started",
		"sweep", s.config.SweepInterval,
		"recompute", s.config.RecomputeInterval,
	)
}

// GetNextSweepTime returns the next cache sweep run.
func (s *Scheduler) GetNextSweepTime() time.Time {
	return s.cron.Entry(s.sweepEntryID).Next
}

// GetNextRecomputeTime returns the next rating recompute run.
func (s *Scheduler) GetNextRecomputeTime() time.Time {
	return s.cron.Entry(s.recomputeEntryID).Next
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
