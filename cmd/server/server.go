package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rishanreddy/habitmind/internal/config"
	"github.com/rishanreddy/habitmind/internal/constants"
	"github.com/rishanreddy/habitmind/internal/database"
	"github.com/rishanreddy/habitmind/internal/handlers"
	"github.com/rishanreddy/habitmind/internal/logger"
	"github.com/rishanreddy/habitmind/internal/middleware"
	"github.com/rishanreddy/habitmind/internal/repository"
	"github.com/rishanreddy/habitmind/internal/services"
	"github.com/rishanreddy/habitmind/internal/storage"
)

// repositories bundles the persistence backends selected by DB_DRIVER.
type repositories struct {
	habits repository.HabitRepository
	users  repository.UserRepository
	close  func(ctx context.Context) error
}

func (r repositories) Close(ctx context.Context) {
	if r.close == nil {
		return
	}
	if err := r.close(ctx); err != nil {
		logger.Warn("Failed to close database", "err", err)
	}
}

// openRepositories connects to the configured database and brings its
// schema up to date.
func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	if strings.EqualFold(cfg.Database.Driver, "mongo") {
		client, db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return repositories{}, fmt.Errorf("failed to create mongo indexes: %w", err)
		}
		return mongoRepositories(client, db), nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return repositories{}, err
	}
	if err := database.Migrate(db); err != nil {
		return repositories{}, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return repositories{}, err
	}
	return repositories{
		habits: repository.NewHabitRepository(db),
		users:  repository.NewUserRepository(db),
		close:  func(context.Context) error { return sqlDB.Close() },
	}, nil
}

func mongoRepositories(client *mongo.Client, db *mongo.Database) repositories {
	return repositories{
		habits: repository.NewMongoHabitRepository(db),
		users:  repository.NewMongoUserRepository(db),
		close:  client.Disconnect,
	}
}

// newSessionStore returns the redis or cookie session store with the
// cookie options shared by both.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch strings.ToLower(cfg.Session.Store) {
	case "redis":
		redisAddr := cfg.Session.RedisHost + ":" + cfg.Session.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.Session.Secret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
	default:
		store = cookie.NewStore([]byte(cfg.Session.Secret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

type serverDeps struct {
	authService    *services.AuthService
	habitService   *services.HabitService
	insightService *services.InsightService
}

// buildServices wires the services. AI and object storage are optional.
func buildServices(ctx context.Context, cfg *config.Config, repos repositories) (serverDeps, error) {
	loc, err := cfg.Location()
	if err != nil {
		return serverDeps{}, err
	}

	authService := services.NewAuthService(repos.users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if cfg.StorageEnabled() {
		store, err := storage.NewS3Storage(ctx, storage.S3Config{
			Region:    cfg.Storage.S3Region,
			Endpoint:  cfg.Storage.S3Endpoint,
			AccessKey: cfg.Storage.S3AccessKey,
			SecretKey: cfg.Storage.S3SecretKey,
			Bucket:    cfg.Storage.S3Bucket,
		})
		if err != nil {
			return serverDeps{}, err
		}
		authService.WithStorage(store)
	} else {
		logger.Warn("S3 bucket not configured, avatar uploads are disabled")
	}

	habitService := services.NewHabitService(repos.habits, loc)

	var generator services.InsightGenerator
	if cfg.AI.APIKey != "" {
		generator = services.NewAIService(services.AIConfig{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.Model,
		})
	} else {
		logger.Warn("OPENAI_API_KEY not set, insight endpoints are disabled")
	}

	return serverDeps{
		authService:    authService,
		habitService:   habitService,
		insightService: services.NewInsightService(habitService, generator),
	}, nil
}

func newRouter(deps serverDeps, store sessions.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware())
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	authHandler := handlers.NewAuthHandler(deps.authService, deps.habitService)
	habitHandler := handlers.NewHabitHandler(deps.habitService)
	insightHandler := handlers.NewInsightHandler(deps.insightService)
	requireAuth := middleware.RequireAuth(deps.authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "HabitMind API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/token", requireAuth, authHandler.IssueToken)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		api.POST("/users/me/avatar", requireAuth, authHandler.UploadAvatar)

		// Habit routes (protected)
		habits := api.Group("/habits")
		habits.Use(requireAuth)
		{
			habits.GET("", habitHandler.ListHabits)
			habits.POST("", habitHandler.CreateHabit)
			habits.GET("/today", habitHandler.Today)
			habits.GET("/week", habitHandler.Week)
			habits.GET("/presets", habitHandler.Presets)
			habits.GET("/:id", habitHandler.GetHabit)
			habits.PATCH("/:id", habitHandler.UpdateHabit)
			habits.DELETE("/:id", habitHandler.DeleteHabit)
			habits.POST("/:id/complete", habitHandler.CompleteHabit)
			habits.POST("/:id/uncomplete", habitHandler.UncompleteHabit)
		}

		api.GET("/explore", requireAuth, habitHandler.Explore)
		api.POST("/decay", requireAuth, insightHandler.DecayRisk)
		api.POST("/insights", requireAuth, insightHandler.Insights)
	}

	return r
}
