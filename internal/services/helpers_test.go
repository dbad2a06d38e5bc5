package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rishanreddy/habitmind/internal/database"
	"github.com/rishanreddy/habitmind/internal/models"
	"github.com/rishanreddy/habitmind/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	return db
}

// countingHabitRepository records the writes that reach the store.
type countingHabitRepository struct {
	repository.HabitRepository
	creates int
	updates int
}

func (r *countingHabitRepository) Create(ctx context.Context, habit *models.Habit) error {
	r.creates++
	return r.HabitRepository.Create(ctx, habit)
}

func (r *countingHabitRepository) Update(ctx context.Context, habit *models.Habit) error {
	r.updates++
	return r.HabitRepository.Update(ctx, habit)
}
