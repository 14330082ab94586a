// Package archive keeps a history of forecast runs in SQLite.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"weatherboy/models"
)

// Run describes one forecast fetch
type Run struct {
	ID        uuid.UUID `json:"id"`
	FetchedAt time.Time `json:"fetchedAt"`
	Location  string    `json:"location"`
	Provider  string    `json:"provider"`
	Days      int       `json:"days"`
}

// NewRun creates a run with a fresh id
func NewRun(location, provider string, fetchedAt time.Time) Run {
	return Run{ID: uuid.New(), FetchedAt: fetchedAt.UTC(), Location: location, Provider: provider}
}

// Store is an SQLite backed archive of forecast runs
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	fetched_at TEXT NOT NULL,
	location   TEXT NOT NULL,
	provider   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS days (
	run_id          TEXT NOT NULL REFERENCES runs(id),
	date            TEXT NOT NULL,
	weekday         TEXT NOT NULL,
	temp_min        REAL NOT NULL,
	temp_max        REAL NOT NULL,
	weather         TEXT NOT NULL,
	avg_precip_prob REAL NOT NULL,
	avg_humidity    REAL NOT NULL,
	avg_wind        REAL NOT NULL,
	avg_cloudiness  REAL NOT NULL,
	icon            TEXT NOT NULL,
	summary         TEXT NOT NULL,
	PRIMARY KEY (run_id, date)
);`

// Open opens (or creates) the archive at path and applies the schema
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create archive schema: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveRun stores a run and its day summaries in one transaction
func (s *Store) SaveRun(ctx context.Context, run Run, days []models.DaySummary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs(id, fetched_at, location, provider) VALUES(?,?,?,?)`,
		run.ID.String(), run.FetchedAt.UTC().Format(time.RFC3339), run.Location, run.Provider); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO days(run_id, date, weekday, temp_min, temp_max, weather,
		avg_precip_prob, avg_humidity, avg_wind, avg_cloudiness, icon, summary) VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range days {
		if _, err := stmt.ExecContext(ctx, run.ID.String(), d.Date, d.Weekday, d.TempMin, d.TempMax, d.Weather,
			d.AvgPrecipProb, d.AvgHumidity, d.AvgWind, d.AvgCloudiness, d.Icon, d.Summary); err != nil {
			return fmt.Errorf("failed to insert day %s: %w", d.Date, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs first
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.fetched_at, r.location, r.provider, COUNT(d.date)
		FROM runs r LEFT JOIN days d ON d.run_id = r.id
		GROUP BY r.id
		ORDER BY r.fetched_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0)
	for rows.Next() {
		var r Run
		var id, ts string
		if err := rows.Scan(&id, &ts, &r.Location, &r.Provider, &r.Days); err != nil {
			return nil, err
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("bad run id %q: %w", id, err)
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			r.FetchedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DaysForRun returns the day summaries stored for a run, in date order
func (s *Store) DaysForRun(ctx context.Context, id uuid.UUID) ([]models.DaySummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, weekday, temp_min, temp_max, weather, avg_precip_prob, avg_humidity,
			avg_wind, avg_cloudiness, icon, summary
		FROM days WHERE run_id = ? ORDER BY date`, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.DaySummary, 0)
	for rows.Next() {
		var d models.DaySummary
		if err := rows.Scan(&d.Date, &d.Weekday, &d.TempMin, &d.TempMax, &d.Weather, &d.AvgPrecipProb,
			&d.AvgHumidity, &d.AvgWind, &d.AvgCloudiness, &d.Icon, &d.Summary); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
