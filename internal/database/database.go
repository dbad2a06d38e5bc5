package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rishanreddy/habitmind/internal/config"
	"github.com/rishanreddy/habitmind/internal/logger"
	"github.com/rishanreddy/habitmind/internal/models"
)

// Dialector picks the gorm driver for the configured database.
func Dialector(cfg config.Database) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Driver) {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.Name,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("database driver %q is not a SQL driver", cfg.Driver)
	}
}

// Connect opens a gorm connection for the configured SQL driver.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Warn
	if cfg.Server.GinMode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Database connection established", "driver", cfg.Database.Driver)
	return db, nil
}

// Migrate creates or updates the schema and its indexes.
func Migrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")
	if err := db.AutoMigrate(&models.User{}, &models.Habit{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := AddIndexes(db); err != nil {
		return err
	}
	logger.Info("Database migrations completed")
	return nil
}

// ConnectMongo connects to MongoDB and verifies the connection.
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info("Database connection established", "driver", "mongo", "database", cfg.Database.Name)
	return client, client.Database(cfg.Database.Name), nil
}
