package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"daywise/internal/state"
)

// SaveState serializes the aggregate and upserts the single snapshot
// row. Last write wins; there is only ever one logical writer.
func (s *Store) SaveState(app state.AppState) error {
	data, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO snapshots (id, data, saved_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		string(data), now,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadState returns the persisted aggregate, normalized. An empty or
// corrupt snapshot yields a fresh default state rather than an error;
// only the database itself failing is reported.
func (s *Store) LoadState() (state.AppState, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return state.NewAppState(), nil
	}
	if err != nil {
		return state.AppState{}, fmt.Errorf("load snapshot: %w", err)
	}

	var app state.AppState
	if err := json.Unmarshal([]byte(data), &app); err != nil {
		return state.NewAppState(), nil
	}
	return state.Normalize(app), nil
}

// LastSavedAt returns when the snapshot was last written, or the zero
// time when nothing has been saved yet.
func (s *Store) LastSavedAt() (time.Time, error) {
	var savedAt string
	err := s.db.QueryRow(`SELECT saved_at FROM snapshots WHERE id = 1`).Scan(&savedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read saved_at: %w", err)
	}
	t, _ := time.Parse(time.RFC3339, savedAt)
	return t, nil
}
