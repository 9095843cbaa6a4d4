package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/citycoords/internal/config"
	"github.com/jask/citycoords/internal/geocoding"
	"github.com/jask/citycoords/internal/logging"
	"github.com/jask/citycoords/internal/secrets"
	"github.com/jask/citycoords/internal/tui"
)

func main() {
	storeKey := flag.Bool("store-key", false, "read an OpenWeatherMap API key from stdin, save it to the secrets store and exit")
	flag.Parse()

	ctx := context.Background()

	store, err := secrets.NewStore("")
	if err != nil {
		log.Fatalf("secrets: %v", err)
	}
	if *storeKey {
		if err := saveKey(store); err != nil {
			log.Fatalf("store key: %v", err)
		}
		fmt.Println("API key saved")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	apiKey := cfg.APIKey(store)
	if apiKey == "" {
		// lookups will be rejected upstream and surface as the generic notice
		logger.Warn("no OpenWeatherMap API key configured", zap.String("env", cfg.OpenWeather.APIKeyEnv))
	}

	client := geocoding.NewClient(apiKey,
		geocoding.WithBaseURL(cfg.OpenWeather.BaseURL),
		geocoding.WithLimit(cfg.OpenWeather.Limit),
		geocoding.WithTimeout(cfg.OpenWeather.Timeout),
		geocoding.WithLogger(logger.Named("openweather")),
	)

	logger.Info("starting tui")
	p := tea.NewProgram(tui.New(ctx, cfg,
		tui.Services{Geocoder: client, AirQuality: client},
		logger.Named("tui"),
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func saveKey(store *secrets.Store) error {
	fmt.Fprint(os.Stderr, "OpenWeatherMap API key: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read stdin: %w", err)
	}
	return store.Put(config.SecretsService, strings.TrimSpace(line))
}
