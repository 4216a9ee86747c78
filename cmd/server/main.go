package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"anoa.com/socialfeed/internal/bootstrap"
	"anoa.com/socialfeed/internal/config"
	"anoa.com/socialfeed/internal/server"
	"anoa.com/socialfeed/pkg/cache"
	"anoa.com/socialfeed/pkg/clock"
	"anoa.com/socialfeed/pkg/database"
	"anoa.com/socialfeed/pkg/logger"
	"anoa.com/socialfeed/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "socialfeed",
	Short: "Social feed REST backend",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger.New(cfg.AppEnv, cfg.LogLevel)

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		slog.Info("migration completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		log.Info("redis connected, reaction counts are cached")
	}

	store, err := storage.New(ctx, cfg.BlobStorage())
	if err != nil {
		return fmt.Errorf("failed to initialize blob storage: %w", err)
	}
	log.Info("blob storage ready", "backend", cfg.Storage.Backend)

	srv := server.NewServer(server.Options{
		DB:             db,
		Redis:          redisClient,
		Store:          store,
		Logger:         log,
		Clock:          clock.Real{},
		AllowedOrigins: cfg.Origins(),
		MaxUploadMB:    cfg.MaxUploadMB,
	})

	return srv.Run(ctx, ":"+cfg.Port)
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg.Database())
	if err != nil {
		return nil, err
	}

	if err := bootstrap.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}
