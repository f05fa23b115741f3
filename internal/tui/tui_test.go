package tui

import (
	"strings"
	"testing"
	"time"

	"daywise/internal/dateutil"
	"daywise/internal/state"
	"daywise/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestManager() *state.Manager {
	return state.NewManager(state.NewAppState(), nil)
}

// ============================================================
// Focus model
// ============================================================

func TestFocusInit(t *testing.T) {
	f := newFocusModel(newTestManager())

	if f.phase != focusIdle {
		t.Fatalf("expected idle phase, got %d", f.phase)
	}
	if f.workDuration != 25*time.Minute {
		t.Fatalf("expected 25min work, got %v", f.workDuration)
	}
	if f.breakDuration != 5*time.Minute {
		t.Fatalf("expected 5min break, got %v", f.breakDuration)
	}
	if f.longBreakDuration != 15*time.Minute {
		t.Fatalf("expected 15min long break, got %v", f.longBreakDuration)
	}
	if f.targetRounds != 4 {
		t.Fatalf("expected 4 rounds, got %d", f.targetRounds)
	}
}

func TestFocusLoadsTimerPrefs(t *testing.T) {
	mgr := newTestManager()
	mgr.Dispatch(state.UpdateTimer{Timer: state.TimerState{
		WorkSeconds:      600,
		BreakSeconds:     120,
		LongBreakSeconds: 600,
		TargetRounds:     2,
	}})

	f := newFocusModel(mgr)
	if f.workDuration != 10*time.Minute {
		t.Fatalf("expected 10min work, got %v", f.workDuration)
	}
	if f.breakDuration != 2*time.Minute {
		t.Fatalf("expected 2min break, got %v", f.breakDuration)
	}
	if f.targetRounds != 2 {
		t.Fatalf("expected 2 rounds, got %d", f.targetRounds)
	}
}

func TestFocusStartSession(t *testing.T) {
	f := newFocusModel(newTestManager())

	f, _ = f.startSession()
	if f.phase != focusWork {
		t.Fatal("should be in work phase after start")
	}
	if f.completedCount != 0 {
		t.Fatal("completed count should be 0")
	}
	if f.remaining <= 0 {
		t.Fatal("remaining should be positive")
	}
	if !f.running() {
		t.Fatal("session should be running")
	}
}

func TestFocusAdvanceWorkToBreak(t *testing.T) {
	f := newFocusModel(newTestManager())
	f, _ = f.startSession()

	f, _ = f.advancePhase()
	if f.completedCount != 1 {
		t.Fatalf("expected 1 completed, got %d", f.completedCount)
	}
	if f.phase != focusShortBreak {
		t.Fatalf("expected short break, got %d", f.phase)
	}
}

func TestFocusAdvanceBreakToWork(t *testing.T) {
	f := newFocusModel(newTestManager())
	f, _ = f.startSession()

	f, _ = f.advancePhase()
	if f.phase != focusShortBreak {
		t.Fatal("should be on short break")
	}

	f, _ = f.advancePhase()
	if f.phase != focusWork {
		t.Fatalf("should be back to work, got %d", f.phase)
	}
}

func TestFocusFullCycleRecordsSession(t *testing.T) {
	mgr := newTestManager()
	timer := mgr.State().Timer
	timer.TargetRounds = 2 // shorter cycle for test
	mgr.Dispatch(state.UpdateTimer{Timer: timer})

	f := newFocusModel(mgr)
	f, _ = f.startSession()

	f, _ = f.advancePhase() // work 1 -> short break
	if f.phase != focusShortBreak || f.completedCount != 1 {
		t.Fatalf("after work 1: phase=%d, count=%d", f.phase, f.completedCount)
	}

	f, _ = f.advancePhase() // break -> work 2
	if f.phase != focusWork {
		t.Fatal("should go back to work after break")
	}

	f, _ = f.advancePhase() // work 2 -> done
	if f.phase != focusDone {
		t.Fatalf("expected done, got %d", f.phase)
	}
	if f.completedCount != 2 {
		t.Fatalf("expected 2 completed, got %d", f.completedCount)
	}

	sessions := mgr.State().FocusSessions
	if len(sessions) != 1 {
		t.Fatalf("expected 1 recorded session, got %d", len(sessions))
	}
	if !sessions[0].Completed {
		t.Fatal("session should be marked completed")
	}
	if sessions[0].Rounds != 2 {
		t.Fatalf("expected 2 rounds recorded, got %d", sessions[0].Rounds)
	}
	if sessions[0].WorkSeconds != 2*25*60 {
		t.Fatalf("expected 3000 work seconds, got %d", sessions[0].WorkSeconds)
	}
}

func TestFocusCancelWithoutProgress(t *testing.T) {
	mgr := newTestManager()
	f := newFocusModel(mgr)
	f, _ = f.startSession()

	f, _ = f.cancelSession()
	if f.phase != focusIdle {
		t.Fatal("should be idle after cancel")
	}
	// No completed rounds means nothing worth recording.
	if len(mgr.State().FocusSessions) != 0 {
		t.Fatal("cancel with 0 rounds should not record a session")
	}
}

func TestFocusCancelWithProgress(t *testing.T) {
	mgr := newTestManager()
	f := newFocusModel(mgr)
	f, _ = f.startSession()
	f, _ = f.advancePhase() // one round done

	f, _ = f.cancelSession()
	sessions := mgr.State().FocusSessions
	if len(sessions) != 1 {
		t.Fatalf("expected 1 recorded session, got %d", len(sessions))
	}
	if sessions[0].Completed {
		t.Fatal("cancelled session should not be marked completed")
	}
	if sessions[0].Rounds != 1 {
		t.Fatalf("expected 1 round, got %d", sessions[0].Rounds)
	}
}

// ============================================================
// Today model
// ============================================================

func TestTodayRebuildIncludesRoutine(t *testing.T) {
	mgr := newTestManager()
	mgr.Dispatch(state.AddRoutine{Routine: state.Routine{
		ID:    "r1",
		Title: "Morning run",
		Days: []dateutil.Weekday{
			dateutil.Monday, dateutil.Tuesday, dateutil.Wednesday, dateutil.Thursday,
			dateutil.Friday, dateutil.Saturday, dateutil.Sunday,
		},
		CreatedAt: "2020-01-01",
	}})

	m := newTodayModel(mgr)
	m.rebuild()
	if len(m.rows) == 0 {
		t.Fatal("routine scheduled every day should appear today")
	}
}

func TestTodayRebuildClampsCursor(t *testing.T) {
	m := newTodayModel(newTestManager())
	m.cursor = 10
	m.rebuild()
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to 0 on empty day, got %d", m.cursor)
	}
}

// ============================================================
// Tasks model
// ============================================================

func TestTasksRebuildGroupsSubtasks(t *testing.T) {
	mgr := newTestManager()
	mgr.Dispatch(state.AddTask{Task: state.Task{ID: "p1", Title: "Parent one"}})
	mgr.Dispatch(state.AddTask{Task: state.Task{ID: "p2", Title: "Parent two"}})
	mgr.Dispatch(state.AddTask{Task: state.Task{ID: "s1", ParentID: "p1", Title: "Sub"}})

	m := newTasksModel(mgr)
	m.rebuild()

	if len(m.rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(m.rows))
	}
	if m.rows[0].ID != "p1" || m.rows[1].ID != "s1" || m.rows[2].ID != "p2" {
		t.Fatalf("rows out of order: %s, %s, %s", m.rows[0].ID, m.rows[1].ID, m.rows[2].ID)
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{time.Second, "00:01"},
		{time.Minute, "01:00"},
		{25 * time.Minute, "25:00"},
		{5*time.Minute + 30*time.Second, "05:30"},
		{-time.Second, "00:00"}, // negative should clamp to 0
	}
	for _, tt := range tests {
		got := formatCountdown(tt.d)
		if got != tt.want {
			t.Errorf("formatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		cents    int64
		currency string
		want     string
	}{
		{1234, "USD", "12.34 USD"},
		{5, "EUR", "0.05 EUR"},
		{-50, "", "-0.50"},
		{0, "USD", "0.00 USD"},
		{100000, "", "1000.00"},
	}
	for _, tt := range tests {
		got := formatMoney(tt.cents, tt.currency)
		if got != tt.want {
			t.Errorf("formatMoney(%d, %q) = %q, want %q", tt.cents, tt.currency, got, tt.want)
		}
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12.3", 1230, false},
		{"12", 1200, false},
		{"0.05", 5, false},
		{" 7.50 ", 750, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-5", 0, true},
	}
	for _, tt := range tests {
		got, err := parseMoney(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseMoney(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseMoney(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseMoney(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != viewCount {
		t.Fatalf("expected %d view names, got %d", viewCount, len(viewNames))
	}
	expected := []string{"Today", "Habits", "Tasks", "Finance", "Focus", "Notes", "Reports", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewToday != 0 || viewHabits != 1 || viewTasks != 2 || viewFinance != 3 ||
		viewFocus != 4 || viewNotes != 5 || viewReports != 6 || viewSettings != 7 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app := NewApp(newTestManager(), newTestStore(t))

	if app.activeView != viewToday {
		t.Fatal("default view should be today")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.backupPick {
		t.Fatal("backup picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	app := NewApp(newTestManager(), newTestStore(t))
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app := NewApp(newTestManager(), newTestStore(t))
	app.width = 120
	app.height = 40

	// All views should render without panicking.
	for v := viewState(0); v < viewCount; v++ {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app := NewApp(newTestManager(), newTestStore(t))
	app.width = 160
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	app := NewApp(newTestManager(), newTestStore(t))
	// Width 0 means not yet sized
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app := NewApp(newTestManager(), newTestStore(t))
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppBackupDirSetting(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("export_dir", "/tmp/daywise-backups"); err != nil {
		t.Fatal(err)
	}

	app := NewApp(newTestManager(), s)
	if got := app.backupDir(); got != "/tmp/daywise-backups" {
		t.Fatalf("backupDir = %q, want configured dir", got)
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test — just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"timer", func() string { return timerStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"streak", func() string { return streakStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
		{"doneItem", func() string { return doneItemStyle.Render("test") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
