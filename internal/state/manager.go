package state

import "sync"

// Manager owns the live AppState. All writes funnel through Dispatch,
// which applies the reducer under a lock and hands the fresh snapshot
// to the save hook, preserving strict dispatch order. Reads get value
// copies of the aggregate; collections inside are never mutated in
// place by the reducer, so a snapshot stays coherent after later
// dispatches.
type Manager struct {
	mu     sync.Mutex
	state  AppState
	onSave func(AppState)
}

// NewManager wraps an initial state. onSave may be nil; otherwise it is
// called synchronously after every dispatch with the new snapshot
// (persistence debouncing lives behind the hook).
func NewManager(initial AppState, onSave func(AppState)) *Manager {
	return &Manager{state: Normalize(initial), onSave: onSave}
}

// State returns the current snapshot.
func (m *Manager) State() AppState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Replace swaps in a whole new state, used when restoring a backup.
// The replacement is normalized and handed to the save hook like any
// dispatched change.
func (m *Manager) Replace(app AppState) AppState {
	next := Normalize(app)
	m.mu.Lock()
	m.state = next
	m.mu.Unlock()

	if m.onSave != nil {
		m.onSave(next)
	}
	return next
}

// Dispatch applies the action and returns the resulting snapshot.
func (m *Manager) Dispatch(action Action) AppState {
	m.mu.Lock()
	next := Reduce(m.state, action)
	m.state = next
	m.mu.Unlock()

	if m.onSave != nil {
		m.onSave(next)
	}
	return next
}
