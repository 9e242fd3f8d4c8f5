package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fightfeed/eventworker/internal/schedule"
)

// Storage represents a service for persisting the aggregated event list
type Storage interface {
	// Save persists the full ordered event list, replacing any previous run
	Save(events []schedule.Event) error
}

// JSONFile implements Storage by writing an indented JSON array. Non-ASCII
// text is written as-is, not escaped.
type JSONFile struct {
	path string
}

// NewJSONFile creates a new JSON file storage
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Save writes the event list to the configured path. The write goes through
// a temp file and rename so a crash never leaves a truncated output file.
func (j *JSONFile) Save(events []schedule.Event) error {
	if events == nil {
		events = []schedule.Event{}
	}

	dir := filepath.Dir(j.path)
	tmp, err := os.CreateTemp(dir, ".events-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(events); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode events: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp output file: %w", err)
	}

	if err := os.Rename(tmp.Name(), j.path); err != nil {
		return fmt.Errorf("failed to replace output file: %w", err)
	}
	return nil
}
