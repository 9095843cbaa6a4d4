package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jask/citycoords/internal/api"
	"github.com/jask/citycoords/internal/config"
	"github.com/jask/citycoords/internal/geocoding"
	"github.com/jask/citycoords/internal/logging"
	"github.com/jask/citycoords/internal/secrets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.ServerLog())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.Server.GinMode)

	var stored config.KeyLookup
	if store, err := secrets.NewStore(""); err == nil {
		stored = store
	}
	apiKey := cfg.APIKey(stored)
	if apiKey == "" {
		logger.Warn("no OpenWeatherMap API key configured; /api routes will return 500")
	}

	client := geocoding.NewClient(apiKey,
		geocoding.WithBaseURL(cfg.OpenWeather.BaseURL),
		geocoding.WithLimit(cfg.OpenWeather.Limit),
		geocoding.WithTimeout(cfg.OpenWeather.Timeout),
		geocoding.WithLogger(logger.Named("openweather")),
	)
	handler := api.NewHandler(client, apiKey != "", logger.Named("api"))
	router, err := api.NewRouter(cfg.Server, handler, logger.Named("http"))
	if err != nil {
		logger.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
