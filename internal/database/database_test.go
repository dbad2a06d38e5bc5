package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rishanreddy/habitmind/internal/config"
	"github.com/rishanreddy/habitmind/internal/models"
)

func TestDialector(t *testing.T) {
	cfg := config.Default().Database

	for driver, want := range map[string]string{
		"mysql":    "mysql",
		"postgres": "postgres",
		"sqlite":   "sqlite",
	} {
		cfg.Driver = driver
		d, err := Dialector(cfg)
		require.NoError(t, err, driver)
		assert.Equal(t, want, d.Name())
	}

	cfg.Driver = "mongo"
	_, err := Dialector(cfg)
	assert.Error(t, err)
}

func TestMigrate_CreatesIndexesOnce(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable(&models.Habit{}))
	assert.True(t, migrator.HasTable(&models.User{}))
	assert.True(t, migrator.HasIndex(&models.Habit{}, "idx_habits_owner_priority"))
	assert.True(t, migrator.HasIndex(&models.Habit{}, "idx_habits_owner_active"))
}
