package store

import (
	"strconv"
	"sync"
	"time"

	"daywise/internal/state"
)

const defaultDebounce = 300 * time.Millisecond

// Saver coalesces rapid dispatches into one snapshot write. Notify is
// cheap and non-blocking; the actual write happens on a timer after the
// debounce window closes, and Close flushes whatever is still pending.
type Saver struct {
	store *Store
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending *state.AppState
	lastErr error
}

// NewSaver reads the debounce window from the settings table, falling
// back to 300ms.
func NewSaver(s *Store) *Saver {
	delay := defaultDebounce
	if v, err := s.GetSetting("save_debounce_ms"); err == nil {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			delay = time.Duration(ms) * time.Millisecond
		}
	}
	return &Saver{store: s, delay: delay}
}

// Notify schedules app for persistence, replacing any snapshot already
// waiting.
func (sv *Saver) Notify(app state.AppState) {
	sv.mu.Lock()
	defer sv.mu.Unlock()

	sv.pending = &app
	if sv.timer != nil {
		sv.timer.Reset(sv.delay)
		return
	}
	sv.timer = time.AfterFunc(sv.delay, sv.flush)
}

func (sv *Saver) flush() {
	sv.mu.Lock()
	app := sv.pending
	sv.pending = nil
	sv.mu.Unlock()

	if app == nil {
		return
	}
	if err := sv.store.SaveState(*app); err != nil {
		sv.mu.Lock()
		sv.lastErr = err
		sv.mu.Unlock()
	}
}

// Close writes any pending snapshot immediately and returns the last
// persistence error observed, if any.
func (sv *Saver) Close() error {
	sv.mu.Lock()
	if sv.timer != nil {
		sv.timer.Stop()
	}
	sv.mu.Unlock()

	sv.flush()

	sv.mu.Lock()
	defer sv.mu.Unlock()
	return sv.lastErr
}

// Err reports the most recent background save failure. The UI surfaces
// it as a status message; the reducer never sees it.
func (sv *Saver) Err() error {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return sv.lastErr
}
