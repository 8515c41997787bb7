package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"therapy-directory/internal/model"
)

// DefaultSummaryTTL is how long a generated summary stays valid.
const DefaultSummaryTTL = 7 * 24 * time.Hour

// CacheService persists generated summaries keyed by content hash.
// Writes are append-only; Lookup picks the most recent valid row so
// duplicate rows for the same key are harmless.
type CacheService struct {
	db *gorm.DB
}

func NewCacheService(db *gorm.DB) *CacheService {
	return &CacheService{db: db}
}

// Lookup returns the newest valid entry for the key, or nil when no
// valid entry exists. Expired rows are treated as misses but left in
// place for the scheduler sweep.
func (s *CacheService) Lookup(entityType string, entityID uint, inputHash string) (*model.SummaryCache, error) {
	var entry model.SummaryCache
	err := s.db.
		Where("entity_type = ? AND entity_id = ? AND input_hash = ?", entityType, entityID, inputHash).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("created_at DESC, id DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Store inserts a new cache row expiring after ttl. Existing rows are
// never updated in place.
func (s *CacheService) Store(entityType string, entityID uint, promptName, summary, inputHash string, ttl time.Duration) (*model.SummaryCache, error) {
	expiresAt := time.Now().Add(ttl)
	entry := model.SummaryCache{
		EntityType: entityType,
		EntityID:   entityID,
		PromptName: promptName,
		Summary:    summary,
		InputHash:  inputHash,
		ExpiresAt:  &expiresAt,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Clear deletes every cache row for an entity, valid or not. The admin
// hatch for forcing regeneration before the hash or TTL would change,
// e.g. after new reviews arrive while the cache is still warm.
func (s *CacheService) Clear(entityType string, entityID uint) error {
	return s.db.
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Delete(&model.SummaryCache{}).Error
}

// PurgeExpired removes rows whose expiry has passed. Called by the cron
// sweep to bound the accumulation of stranded historical rows.
func (s *CacheService) PurgeExpired() (int64, error) {
	result := s.db.
		Where("expires_at IS NOT NULL AND expires_at <= ?", time.Now()).
		Delete(&model.SummaryCache{})
	return result.RowsAffected, result.Error
}

// Count reports total and currently valid cache rows.
func (s *CacheService) Count() (total int64, valid int64, err error) {
	if err = s.db.Model(&model.SummaryCache{}).Count(&total).Error; err != nil {
		return
	}
	err = s.db.Model(&model.SummaryCache{}).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Count(&valid).Error
	return
}
