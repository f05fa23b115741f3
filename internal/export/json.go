// Package export moves the whole state aggregate in and out of the app:
// a lossless JSON backup format and a CSV view of the transaction log.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"daywise/internal/state"
)

// backupVersion guards future format changes; Import rejects versions
// it does not know.
const backupVersion = 1

type backup struct {
	Version    int            `json:"version"`
	ExportedAt string         `json:"exported_at"`
	State      state.AppState `json:"state"`
}

// ToJSON writes a full backup of the aggregate.
func ToJSON(app state.AppState, path string) error {
	b := backup{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		State:      app,
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	return nil
}

// FromJSON reads a backup back into a normalized state.
func FromJSON(path string) (state.AppState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return state.AppState{}, fmt.Errorf("read backup file: %w", err)
	}

	var b backup
	if err := json.Unmarshal(data, &b); err != nil {
		return state.AppState{}, fmt.Errorf("parse backup: %w", err)
	}
	if b.Version != backupVersion {
		return state.AppState{}, fmt.Errorf("unsupported backup version %d", b.Version)
	}
	return state.Normalize(b.State), nil
}
