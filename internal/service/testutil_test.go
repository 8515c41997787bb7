package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"therapy-directory/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.Therapist{},
		&model.Review{},
		&model.PromptConfig{},
		&model.SummaryCache{},
		&model.AppConfig{},
		&model.BlogPost{},
	)
	require.NoError(t, err)

	return db
}

func createTherapist(t *testing.T, db *gorm.DB, id uint) *model.Therapist {
	t.Helper()

	therapist := model.Therapist{
		ID:       id,
		Slug:     fmt.Sprintf("therapist-%d", id),
		Name:     "Dr. Test",
		IsActive: true,
	}
	require.NoError(t, db.Create(&therapist).Error)
	return &therapist
}

// stubChat records calls and returns a canned completion.
type stubChat struct {
	response   string
	err        error
	calls      int
	lastSystem string
	lastUser   string
	lastCtx    context.Context
}

func (s *stubChat) Chat(ctx context.Context, system, user string) (string, error) {
	s.calls++
	s.lastSystem = system
	s.lastUser = user
	s.lastCtx = ctx
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}
