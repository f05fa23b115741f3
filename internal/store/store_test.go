package store

import (
	"testing"
	"time"

	"daywise/internal/state"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/daywise.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Snapshot
// ============================================================

func TestLoadStateEmpty(t *testing.T) {
	s := newTestStore(t)
	app, err := s.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if app.Routines == nil || app.Wallets == nil {
		t.Fatal("default state should have initialized collections")
	}
	if len(app.Habits) != 0 {
		t.Fatal("default state should be empty")
	}
}

func TestSaveLoadOverwrites(t *testing.T) {
	s := newTestStore(t)

	app := state.NewAppState()
	app.Profile.Name = "first"
	if err := s.SaveState(app); err != nil {
		t.Fatal(err)
	}

	app.Profile.Name = "second"
	if err := s.SaveState(app); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if got.Profile.Name != "second" {
		t.Fatalf("expected last write to win, got %q", got.Profile.Name)
	}
}

func TestLoadStateCorruptFallsBack(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.db.Exec(`INSERT INTO snapshots (id, data, saved_at) VALUES (1, 'not json', '2025-01-01T00:00:00Z')`); err != nil {
		t.Fatal(err)
	}

	app, err := s.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if app.Habits == nil || len(app.Habits) != 0 {
		t.Fatal("corrupt snapshot should yield a fresh default state")
	}
}

func TestLastSavedAt(t *testing.T) {
	s := newTestStore(t)

	ts, err := s.LastSavedAt()
	if err != nil {
		t.Fatal(err)
	}
	if !ts.IsZero() {
		t.Fatal("expected zero time before first save")
	}

	if err := s.SaveState(state.NewAppState()); err != nil {
		t.Fatal(err)
	}
	ts, err = s.LastSavedAt()
	if err != nil {
		t.Fatal(err)
	}
	if ts.IsZero() {
		t.Fatal("expected saved_at to be set")
	}
}

func TestSnapshotPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/daywise.db"

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	app := state.NewAppState()
	app.Habits = append(app.Habits, state.Habit{ID: "h1", Title: "Read", Records: []string{"2025-03-01"}})
	if err := s.SaveState(app); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	got, err := s2.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Habits) != 1 || got.Habits[0].Title != "Read" {
		t.Fatalf("unexpected habits after reopen: %+v", got.Habits)
	}
}

// ============================================================
// Saver
// ============================================================

func TestSaverDebouncesWrites(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("save_debounce_ms", "20"); err != nil {
		t.Fatal(err)
	}
	sv := NewSaver(s)

	app := state.NewAppState()
	for i := 0; i < 5; i++ {
		app.Profile.Name = string(rune('a' + i))
		sv.Notify(app)
	}

	time.Sleep(100 * time.Millisecond)
	got, err := s.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if got.Profile.Name != "e" {
		t.Fatalf("expected only the last notified state, got %q", got.Profile.Name)
	}
}

func TestSaverCloseFlushesPending(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("save_debounce_ms", "10000"); err != nil {
		t.Fatal(err)
	}
	sv := NewSaver(s)

	app := state.NewAppState()
	app.Profile.Name = "pending"
	sv.Notify(app)

	if err := sv.Close(); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if got.Profile.Name != "pending" {
		t.Fatal("close should flush the pending snapshot")
	}
}

func TestSaverCloseWithoutNotify(t *testing.T) {
	s := newTestStore(t)
	sv := NewSaver(s)
	if err := sv.Close(); err != nil {
		t.Fatal(err)
	}
}

// ============================================================
// Settings
// ============================================================

func TestDefaultSettingsSeeded(t *testing.T) {
	s := newTestStore(t)
	v, err := s.GetSetting("save_debounce_ms")
	if err != nil {
		t.Fatal(err)
	}
	if v != "300" {
		t.Fatalf("expected default debounce 300, got %q", v)
	}
}

func TestSetAndGetSetting(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("export_dir", "/tmp"); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetSetting("export_dir")
	if err != nil {
		t.Fatal(err)
	}
	if v != "/tmp" {
		t.Fatalf("expected /tmp, got %q", v)
	}
}

func TestGetSettingMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetSetting("nope"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) < 2 {
		t.Fatalf("expected seeded settings, got %d", len(settings))
	}
}
