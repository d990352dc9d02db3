package main

import (
	"context"
	"fmt"
	"listing-search-service/internal/adapters/listings_api_client"
	logger_adapter "listing-search-service/internal/adapters/logger"
	"listing-search-service/internal/cli"
	"listing-search-service/internal/configs"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/port"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Writer:   os.Stderr,
		Level:    slog.LevelWarn,
		UseColor: true,
	}).WithFields(port.Fields{"service_name": "listings-cli"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	root := cli.NewRootCommand(
		cli.Options{
			APIURL:   cfg.ListingsAPI.URL,
			Timeout:  cfg.ListingsAPI.Timeout,
			PageSize: cfg.Search.PageSize,
			Debounce: cfg.Search.Debounce,
		},
		func(apiURL string, timeout time.Duration) port.ListingsAPIPort {
			return listings_api_client.NewClient(apiURL, timeout, nil)
		},
	)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
