package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/rishanreddy/habitmind/internal/logger"
	"github.com/rishanreddy/habitmind/internal/models"
)

// AddIndexes adds the composite indexes the habit queries depend on
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		name    string
		columns string
	}{
		// Listing a user's habits sorted by priority
		{&models.Habit{}, "idx_habits_owner_priority", "owner_id, priority"},
		// "Due today" filtering
		{&models.Habit{}, "idx_habits_owner_active", "owner_id, is_active"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			logger.Debug("Index already exists, skipping", "index", idx.name)
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.Info("Created index", "index", idx.name, "table", stmt.Schema.Table, "columns", idx.columns)
	}

	return nil
}
