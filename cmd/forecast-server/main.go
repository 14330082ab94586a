package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weatherboy/api"
	"weatherboy/archive"
	"weatherboy/datasource"
	"weatherboy/render"
	"weatherboy/report"
	"weatherboy/store"
)

func main() {
	// Load environment variables from .env file
	if err := datasource.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	configFile := flag.String("config", "", "Path to configuration file")
	port := flag.Int("port", 0, "Port to run the server on (overrides config)")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable rate limiting of provider calls")
	flag.Parse()

	config, err := datasource.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		config.Server.Port = *port
	}
	logger := config.Logger(os.Stderr)

	units := render.UnitsFor(config.Units)
	st := store.New(config.DataDir, units)

	opts := api.Options{
		Port:     config.Server.Port,
		Location: config.Location,
		Store:    st,
		Timeout:  config.HTTPTimeout.Duration,
		Logger:   logger,
	}

	conditions := config.ConditionSource()
	if *enableRateLimiting {
		// one call per second with bursts of up to 5 requests
		conditions = datasource.NewRateLimitedConditionSource(conditions, 1.0, 5)
	}
	opts.Conditions = conditions

	// Refresh is only offered when a forecast provider is configured
	if source, err := config.ForecastSource(); err != nil {
		logger.Warn("refresh disabled", "error", err)
	} else {
		if *enableRateLimiting {
			source = datasource.NewRateLimitedForecastSource(source, config.Server.RefreshRPS, config.Server.RefreshBurst)
			logger.Info("applied rate limiting to forecast provider", "rps", config.Server.RefreshRPS)
		}
		opts.Job = &report.Job{Source: source, Store: st, Logger: logger}
	}

	if config.ArchivePath != "" {
		history, err := archive.Open(config.ArchivePath)
		if err != nil {
			logger.Error("failed to open archive", "path", config.ArchivePath, "error", err)
			os.Exit(1)
		}
		defer history.Close()
		opts.History = history
		if opts.Job != nil {
			opts.Job.Archive = history
		}
	}

	server := api.NewServer(opts)

	// Set up channel for graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	select {
	case sig := <-shutdownChan:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errChan:
		if err != nil {
			logger.Error("server stopped", "error", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("shutdown complete")
}
