package report

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"weatherboy/archive"
	"weatherboy/datasource"
	"weatherboy/models"
	"weatherboy/render"
	"weatherboy/store"
)

type fakeSource struct {
	samples []models.Sample
	err     error
}

func (f fakeSource) Name() string { return "fake" }
func (f fakeSource) FetchForecast(ctx context.Context, loc models.Location) ([]models.Sample, error) {
	return f.samples, f.err
}

type memArchive struct {
	runs []archive.Run
	days [][]models.DaySummary
	err  error
}

func (m *memArchive) SaveRun(ctx context.Context, run archive.Run, days []models.DaySummary) error {
	if m.err != nil {
		return m.err
	}
	m.runs = append(m.runs, run)
	m.days = append(m.days, days)
	return nil
}

func samples() []models.Sample {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	var out []models.Sample
	for i := 0; i < 16; i++ {
		out = append(out, models.Sample{
			Time:        base.Add(time.Duration(i*3) * time.Hour),
			Temperature: 60 + float64(i),
			Humidity:    50,
			WindSpeed:   10,
			Cloudiness:  50,
			Description: "scattered clouds",
		})
	}
	return out
}

func newJob(t *testing.T, src datasource.ForecastSource, arch Archiver) (*Job, *store.Store) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "data"), render.UnitsFor("imperial"))
	var logs bytes.Buffer
	j := &Job{
		Source: src,
		Store:  st,
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
		Now:    func() time.Time { return time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC) },
	}
	if arch != nil {
		j.Archive = arch
	}
	return j, st
}

func TestJob_Run(t *testing.T) {
	arch := &memArchive{}
	j, st := newJob(t, fakeSource{samples: samples()}, arch)

	res, err := j.Run(context.Background(), models.Location{Name: "Raleigh"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Days) != 2 {
		t.Fatalf("got %d days, want 2", len(res.Days))
	}
	if res.Days[0].TempMin != 60 || res.Days[0].TempMax != 67 || res.Days[1].TempMax != 75 {
		t.Errorf("days = %+v", res.Days)
	}

	files, err := st.Days()
	if err != nil || len(files) != 2 {
		t.Errorf("day files = %v, %v", files, err)
	}
	if _, err := st.LoadReport(); err != nil {
		t.Errorf("report not saved: %v", err)
	}

	if len(arch.runs) != 1 || arch.runs[0].Provider != "fake" || arch.runs[0].Days != 2 {
		t.Errorf("archived runs = %+v", arch.runs)
	}
	if !arch.runs[0].FetchedAt.Equal(time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)) {
		t.Errorf("fetchedAt = %v", arch.runs[0].FetchedAt)
	}
}

func TestJob_FetchErrorIsFatal(t *testing.T) {
	fetchErr := &datasource.NetworkError{Provider: "fake", Err: errors.New("connection refused")}
	j, st := newJob(t, fakeSource{err: fetchErr}, nil)

	_, err := j.Run(context.Background(), models.Location{})
	var netErr *datasource.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %v, want NetworkError", err)
	}
	if files, _ := st.Days(); len(files) != 0 {
		t.Errorf("nothing should be written on failure, found %v", files)
	}
}

func TestJob_NoSamples(t *testing.T) {
	j, _ := newJob(t, fakeSource{}, nil)
	if _, err := j.Run(context.Background(), models.Location{}); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("error = %v, want ErrNoSamples", err)
	}
}

func TestJob_ArchiveError(t *testing.T) {
	arch := &memArchive{err: errors.New("disk full")}
	j, _ := newJob(t, fakeSource{samples: samples()}, arch)
	if _, err := j.Run(context.Background(), models.Location{}); err == nil {
		t.Fatal("expected archive error")
	}
}
