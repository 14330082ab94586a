// Package report runs the forecast pipeline: fetch, aggregate, save.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"weatherboy/aggregate"
	"weatherboy/archive"
	"weatherboy/datasource"
	"weatherboy/models"
	"weatherboy/store"
)

// ErrNoSamples is returned when the provider answered with an empty forecast
var ErrNoSamples = errors.New("provider returned no forecast samples")

// Archiver records finished runs. *archive.Store implements it.
type Archiver interface {
	SaveRun(ctx context.Context, run archive.Run, days []models.DaySummary) error
}

// Job fetches a forecast, aggregates it into days and saves the result
type Job struct {
	Source  datasource.ForecastSource
	Store   *store.Store
	Archive Archiver // optional
	Logger  *slog.Logger
	Now     func() time.Time
}

// Result describes a finished run
type Result struct {
	Run   archive.Run
	Days  []models.DaySummary
	Files []string
}

// Run executes the job once for loc
func (j *Job) Run(ctx context.Context, loc models.Location) (Result, error) {
	logger := j.logger()
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}

	logger.Debug("fetching forecast", "provider", j.Source.Name(), "location", loc.Name)
	samples, err := j.Source.FetchForecast(ctx, loc)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	if len(samples) == 0 {
		return Result{}, ErrNoSamples
	}

	days := aggregate.Days(samples)
	logger.Info("aggregated forecast", "samples", len(samples), "days", len(days))

	files, err := j.Store.SaveReport(days)
	if err != nil {
		return Result{}, fmt.Errorf("failed to save forecast: %w", err)
	}
	for _, f := range files {
		logger.Debug("wrote file", "path", f)
	}

	run := archive.NewRun(loc.Name, j.Source.Name(), now())
	run.Days = len(days)
	if j.Archive != nil {
		if err := j.Archive.SaveRun(ctx, run, days); err != nil {
			return Result{}, fmt.Errorf("failed to archive run: %w", err)
		}
		logger.Info("archived run", "run_id", run.ID)
	}

	return Result{Run: run, Days: days, Files: files}, nil
}

func (j *Job) logger() *slog.Logger {
	if j.Logger == nil {
		return slog.Default().With("component", "report")
	}
	return j.Logger.With("component", "report")
}
