package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

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
	dataDir := flag.String("dir", "", "Directory for the forecast files (overrides config)")
	quiet := flag.Bool("quiet", false, "Do not print the forecast to stdout")
	flag.Parse()

	config, err := datasource.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		config.DataDir = *dataDir
	}
	logger := config.Logger(os.Stderr)

	if err := run(config, logger, *quiet); err != nil {
		logger.Error("forecast failed", "error", err)
		os.Exit(1)
	}
}

func run(config *datasource.Config, logger *slog.Logger, quiet bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, err := config.ForecastSource()
	if err != nil {
		return err
	}

	units := render.UnitsFor(config.Units)
	job := &report.Job{
		Source: source,
		Store:  store.New(config.DataDir, units),
		Logger: logger,
	}

	if config.ArchivePath != "" {
		history, err := archive.Open(config.ArchivePath)
		if err != nil {
			return err
		}
		defer history.Close()
		job.Archive = history
	}

	res, err := job.Run(ctx, config.Location)
	if err != nil {
		return err
	}
	logger.Info("forecast saved", "dir", config.DataDir, "days", len(res.Days), "files", len(res.Files))

	if quiet {
		return nil
	}
	return render.Console(os.Stdout, res.Days, units)
}
