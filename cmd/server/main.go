package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/rishanreddy/habitmind/internal/config"
	"github.com/rishanreddy/habitmind/internal/logger"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "habitmind",
		Short:         "HabitMind habit tracking API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (defaults to $"+config.EnvConfigPath+")")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE:  runServe,
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE:  runMigrate,
	})

	if err := root.Execute(); err != nil {
		logger.Fatal("Command failed", "err", err)
	}
}

// setup loads configuration and initializes logging
func setup() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.Config{
		Level:     cfg.Log.Level,
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
		Debug:     cfg.Server.GinMode == gin.DebugMode,
	}); err != nil {
		return nil, err
	}

	gin.SetMode(cfg.Server.GinMode)
	return cfg, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	repos, err := openRepositories(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer repos.Close(context.Background())

	logger.Info("Migrations finished", "driver", cfg.Database.Driver)
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close(context.Background())

	store, err := newSessionStore(cfg)
	if err != nil {
		return err
	}

	deps, err := buildServices(ctx, cfg, repos)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(deps, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case sig := <-quit:
		logger.Info("Shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("Server stopped")
	return nil
}
