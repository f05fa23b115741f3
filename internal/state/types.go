// Package state holds the application's domain model and the pure
// reducer that owns every mutation of it. The whole model is one
// AppState aggregate: screens project from it, the reducer replaces it
// wholesale, and the store persists it as a single snapshot.
package state

import (
	"fmt"
	"strings"
	"time"

	"daywise/internal/dateutil"
)

// TimeOfDay is minutes from local midnight (0..1439 for same-day values).
type TimeOfDay int

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// ParseTimeSpan parses a routine time specification, either "HH:MM" or
// "HH:MM-HH:MM". The second return value is nil when no explicit end
// time was given. An empty input yields (nil, nil, nil): the routine
// has no time of day and callers fall back to defaults.
func ParseTimeSpan(s string) (start, end *TimeOfDay, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil, nil
	}
	parts := strings.SplitN(s, "-", 2)
	st, err := parseClock(parts[0])
	if err != nil {
		return nil, nil, err
	}
	if len(parts) == 1 {
		return &st, nil, nil
	}
	en, err := parseClock(parts[1])
	if err != nil {
		return nil, nil, err
	}
	return &st, &en, nil
}

func parseClock(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// Routine is a recurring activity template scheduled on a subset of
// weekdays. Start/End are resolved once at creation from the user's
// time input; a nil Start means "no time of day".
type Routine struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Start       *TimeOfDay         `json:"start,omitempty"`
	End         *TimeOfDay         `json:"end,omitempty"`
	Duration    int                `json:"duration,omitempty"` // minutes
	Days        []dateutil.Weekday `json:"days"`
	Completed   map[string]bool    `json:"completed,omitempty"` // keyed by "YYYY-MM-DD"
	CreatedAt   string             `json:"createdAt,omitempty"` // "YYYY-MM-DD"
}

// HasDay reports whether the routine is scheduled on w.
func (r Routine) HasDay(w dateutil.Weekday) bool {
	for _, d := range r.Days {
		if d == w {
			return true
		}
	}
	return false
}

// Event is a concrete calendar occurrence. User-created events are
// persisted in AppState; routine-derived events are projected on demand
// by the schedule package and never stored.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon,omitempty"`
	Completed   bool      `json:"completed"`
	RoutineID   string    `json:"routineId,omitempty"`
}

// DayTask is a lightweight per-date todo item.
type DayTask struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Wallet holds a balance in minor currency units (cents).
type Wallet struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Balance  int64  `json:"balance"`
	Color    string `json:"color,omitempty"`
}

// Transaction types.
const (
	TxIncome   = "income"
	TxExpense  = "expense"
	TxTransfer = "transfer"
)

// Transaction records a balance movement. For transfers, ToAmount is
// the credited amount when the wallets use different currencies; zero
// means "same as Amount".
type Transaction struct {
	ID         string    `json:"id"`
	WalletID   string    `json:"walletId"`
	ToWalletID string    `json:"toWalletId,omitempty"`
	Type       string    `json:"type"`
	Amount     int64     `json:"amount"`
	ToAmount   int64     `json:"toAmount,omitempty"`
	Category   string    `json:"category,omitempty"`
	Note       string    `json:"note,omitempty"`
	Date       string    `json:"date"` // "YYYY-MM-DD"
	CreatedAt  time.Time `json:"createdAt"`
}

// Task is a standalone todo, optionally a subtask of another task.
type Task struct {
	ID          string     `json:"id"`
	ParentID    string     `json:"parentId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     string     `json:"dueDate,omitempty"` // "YYYY-MM-DD"
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Done reports whether the task carries a completion timestamp.
func (t Task) Done() bool { return t.CompletedAt != nil }

// Habit tracks per-day completions. Streak is derived from Records and
// rewritten on every toggle; BestStreak only ever increases.
type Habit struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color,omitempty"`
	Records     []string  `json:"records"` // sorted "YYYY-MM-DD" strings
	Streak      int       `json:"streak"`
	BestStreak  int       `json:"bestStreak"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Idea is a quick capture note, optionally filed in a folder.
type Idea struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	FolderID  string    `json:"folderId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Folder groups ideas and notes.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Note is a longer-form document.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	FolderID  string    `json:"folderId,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile holds the user's display information.
type Profile struct {
	Name  string `json:"name,omitempty"`
	Motto string `json:"motto,omitempty"`
}

// FocusSession records one completed (or cancelled) focus timer run.
type FocusSession struct {
	ID          string    `json:"id"`
	Label       string    `json:"label,omitempty"`
	StartedAt   time.Time `json:"startedAt"`
	WorkSeconds int       `json:"workSeconds"`
	Rounds      int       `json:"rounds"`
	Completed   bool      `json:"completed"`
}

// TimerState holds the focus timer preferences.
type TimerState struct {
	WorkSeconds      int `json:"workSeconds"`
	BreakSeconds     int `json:"breakSeconds"`
	LongBreakSeconds int `json:"longBreakSeconds"`
	TargetRounds     int `json:"targetRounds"`
}

// Settings holds app-wide preferences.
type Settings struct {
	Theme            string `json:"theme,omitempty"`
	Currency         string `json:"currency,omitempty"`
	DailyGoalMinutes int    `json:"dailyGoalMinutes,omitempty"`
}

// AppState is the root aggregate. It is only ever replaced wholesale by
// the reducer's return value and persisted as one snapshot.
type AppState struct {
	Routines      []Routine            `json:"routines"`
	Events        []Event              `json:"events"`
	DayTasks      map[string][]DayTask `json:"dayTasks"` // keyed by "YYYY-MM-DD"
	Wallets       []Wallet             `json:"wallets"`
	Transactions  []Transaction        `json:"transactions"`
	Tasks         []Task               `json:"tasks"`
	Habits        []Habit              `json:"habits"`
	Ideas         []Idea               `json:"ideas"`
	Folders       []Folder             `json:"folders"`
	Notes         []Note               `json:"notes"`
	Profile       Profile              `json:"profile"`
	FocusSessions []FocusSession       `json:"focusSessions"`
	Timer         TimerState           `json:"timerState"`
	Settings      Settings             `json:"settings"`
}

// NewAppState returns an empty state with all collections initialized
// and default timer preferences.
func NewAppState() AppState {
	return AppState{
		Routines:      []Routine{},
		Events:        []Event{},
		DayTasks:      map[string][]DayTask{},
		Wallets:       []Wallet{},
		Transactions:  []Transaction{},
		Tasks:         []Task{},
		Habits:        []Habit{},
		Ideas:         []Idea{},
		Folders:       []Folder{},
		Notes:         []Note{},
		FocusSessions: []FocusSession{},
		Timer: TimerState{
			WorkSeconds:      25 * 60,
			BreakSeconds:     5 * 60,
			LongBreakSeconds: 15 * 60,
			TargetRounds:     4,
		},
		Settings: Settings{Theme: "dark", Currency: "USD", DailyGoalMinutes: 8 * 60},
	}
}
