package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"recipeshare/internal/config"
	"recipeshare/internal/db"
	"recipeshare/internal/logging"
	"recipeshare/internal/router"
	"recipeshare/internal/services"
	"recipeshare/internal/store"
	"recipeshare/internal/store/memory"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logging.Info().Msg("No .env file found, reading configuration from the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	gin.SetMode(cfg.Server.GinMode)

	repo, closeStore, err := openStore(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer closeStore()

	cache, err := services.NewRecipeCache(cfg.Cache.Size, cfg.Cache.TTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recipe cache")
	}
	tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpire)

	engine := router.New(router.Services{
		Auth:     services.NewAuthService(repo, tokens, cfg.Auth.BcryptCost),
		Recipes:  services.NewRecipeService(repo, cache),
		Ratings:  services.NewRatingService(repo, cache),
		Comments: services.NewCommentService(repo, cache),
		Store:    repo,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("port", cfg.Server.Port).Str("driver", cfg.Database.Driver).Msg("Recipe API server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Server forced to shutdown")
	}
}

func openStore(cfg config.DatabaseConfig) (store.Repository, func(), error) {
	if cfg.Driver == config.DriverMemory {
		logging.Warn().Msg("Using in-memory store, data is lost on restart")
		return memory.New(), func() {}, nil
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, nil, err
	}
	return store.NewGormStore(gdb), func() {
		if err := db.Close(gdb); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}, nil
}
