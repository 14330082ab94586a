package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"weatherboy/cycle"
	"weatherboy/models"
)

// LoadCycleState reads the rotating index file. A missing, unreadable or
// corrupt file yields the zero state.
func LoadCycleState(path string) cycle.State {
	data, err := os.ReadFile(path)
	if err != nil {
		return cycle.State{}
	}
	idx, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || idx < 0 {
		return cycle.State{}
	}
	return cycle.State{Index: idx}
}

// SaveCycleState writes the rotating index file
func SaveCycleState(path string, st cycle.State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cycle index directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(st.Index)), 0o644); err != nil {
		return fmt.Errorf("failed to write cycle index: %w", err)
	}
	return nil
}

// NextDay loads the day the status bar should show now and advances the
// rotating index stored at indexPath. ok is false when there are no day files,
// in which case the index is left alone.
func (s *Store) NextDay(indexPath string) (day models.DaySummary, ok bool, err error) {
	files, err := s.Days()
	if err != nil {
		return models.DaySummary{}, false, err
	}

	idx, next, ok := cycle.Select(len(files), LoadCycleState(indexPath))
	if !ok {
		return models.DaySummary{}, false, nil
	}
	if err := SaveCycleState(indexPath, next); err != nil {
		return models.DaySummary{}, false, err
	}

	day, err = readDay(files[idx])
	if err != nil {
		return models.DaySummary{}, false, err
	}
	return day, true, nil
}
