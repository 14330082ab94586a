// Package store keeps the rendered forecast report and one JSON file per day
// on disk.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"weatherboy/models"
	"weatherboy/render"
)

const (
	reportBase = "forecast_summary"
	splitDir   = "split_days"
)

// ErrNoReport is returned when no forecast has been saved yet
var ErrNoReport = errors.New("no forecast report saved")

// ErrNoDay is returned when no day file exists for a date
var ErrNoDay = errors.New("no forecast for that date")

// Store reads and writes forecast files below a data directory
type Store struct {
	dir   string
	units render.Units
}

// New creates a store rooted at dir. Nothing is created on disk until the
// first save.
func New(dir string, units render.Units) *Store {
	return &Store{dir: dir, units: units}
}

// Dir returns the data directory
func (s *Store) Dir() string { return s.dir }

// ReportPath returns the path of the report with the given extension
// ("json", "md" or "html").
func (s *Store) ReportPath(ext string) string {
	return filepath.Join(s.dir, reportBase+"."+ext)
}

// SplitDir returns the directory holding one JSON file per day
func (s *Store) SplitDir() string {
	return filepath.Join(s.dir, splitDir)
}

// SaveReport writes the JSON, Markdown and HTML reports plus one file per day.
// It returns the paths written, reports first.
func (s *Store) SaveReport(days []models.DaySummary) ([]string, error) {
	if err := os.MkdirAll(s.SplitDir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	var written []string
	outputs := []struct {
		ext    string
		render func(*bytes.Buffer) error
	}{
		{"json", func(b *bytes.Buffer) error { return render.JSON(b, days) }},
		{"md", func(b *bytes.Buffer) error { return render.Markdown(b, days, s.units) }},
		{"html", func(b *bytes.Buffer) error { return render.HTML(b, days, s.units) }},
	}
	for _, out := range outputs {
		var buf bytes.Buffer
		if err := out.render(&buf); err != nil {
			return written, fmt.Errorf("failed to render %s report: %w", out.ext, err)
		}
		path := s.ReportPath(out.ext)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}

	for _, d := range days {
		path, err := s.SaveDay(d)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// SaveDay writes a single day file named after its date
func (s *Store) SaveDay(d models.DaySummary) (string, error) {
	if err := os.MkdirAll(s.SplitDir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create split directory: %w", err)
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode day %s: %w", d.Date, err)
	}
	path := filepath.Join(s.SplitDir(), d.Date+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Days lists the day files sorted by name, which is also date order.
// A missing directory yields an empty list.
func (s *Store) Days() ([]string, error) {
	entries, err := os.ReadDir(s.SplitDir())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list day files: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(s.SplitDir(), e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// LoadDay reads the day file for a date (YYYY-MM-DD)
func (s *Store) LoadDay(date string) (models.DaySummary, error) {
	if date == "" || strings.ContainsAny(date, `/\`) || strings.Contains(date, "..") {
		return models.DaySummary{}, ErrNoDay
	}
	return readDay(filepath.Join(s.SplitDir(), date+".json"))
}

// LoadReport reads back the JSON report
func (s *Store) LoadReport() ([]models.DaySummary, error) {
	data, err := os.ReadFile(s.ReportPath("json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoReport
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var days []models.DaySummary
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return days, nil
}

func readDay(path string) (models.DaySummary, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return models.DaySummary{}, ErrNoDay
	}
	if err != nil {
		return models.DaySummary{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var d models.DaySummary
	if err := json.Unmarshal(data, &d); err != nil {
		return models.DaySummary{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return d, nil
}
