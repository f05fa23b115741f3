package state

import "time"

// Action is the closed union of state mutations. Every UI interaction
// becomes one of these and flows through Reduce; nothing else writes
// to AppState.
type Action interface{ isAction() }

// --- Routines ---

type AddRoutine struct{ Routine Routine }
type UpdateRoutine struct{ Routine Routine }
type DeleteRoutine struct{ ID string }

// ToggleRoutineDay flips a routine's completion flag for one date. The
// date is not validated against the routine's weekday set; callers only
// hand in dates they projected from it.
type ToggleRoutineDay struct {
	ID   string
	Date string // "YYYY-MM-DD"
}

// --- Events ---

type AddEvent struct{ Event Event }
type UpdateEvent struct{ Event Event }
type DeleteEvent struct{ ID string }
type ToggleEvent struct{ ID string }

// --- Day tasks ---

type AddDayTask struct {
	Date string // "YYYY-MM-DD"
	Task DayTask
}
type ToggleDayTask struct {
	Date string
	ID   string
}
type DeleteDayTask struct {
	Date string
	ID   string
}

// --- Wallets & transactions ---

type AddWallet struct{ Wallet Wallet }
type UpdateWallet struct{ Wallet Wallet }

// DeleteWallet removes the wallet and every transaction touching it.
// Balances of other wallets are left as they are.
type DeleteWallet struct{ ID string }

type AddTransaction struct{ Transaction Transaction }
type DeleteTransaction struct{ ID string }

// --- Tasks ---

type AddTask struct{ Task Task }
type UpdateTask struct{ Task Task }

// ToggleTask completes or un-completes a task at the given instant.
// Completing the last open sibling subtask auto-completes the parent.
type ToggleTask struct {
	ID string
	At time.Time
}

// DeleteTask removes the task and its direct subtasks (one level).
type DeleteTask struct{ ID string }

// --- Habits ---

type AddHabit struct{ Habit Habit }
type UpdateHabit struct{ Habit Habit }
type DeleteHabit struct{ ID string }

// ToggleHabit adds or removes Date from the habit's records and
// recomputes the streak relative to Today (the zero value means "use
// the local clock").
type ToggleHabit struct {
	ID    string
	Date  string // "YYYY-MM-DD"
	Today time.Time
}

// RecalculateStreaks refreshes every habit's streak without touching
// records. Dispatched once at app load to correct for day boundaries
// crossed while the app was closed.
type RecalculateStreaks struct{ Today time.Time }

// --- Ideas, folders, notes ---

type AddIdea struct{ Idea Idea }
type DeleteIdea struct{ ID string }

type AddFolder struct{ Folder Folder }

// DeleteFolder removes the folder; ideas and notes filed under it move
// back to the root.
type DeleteFolder struct{ ID string }

type AddNote struct{ Note Note }
type UpdateNote struct{ Note Note }
type DeleteNote struct{ ID string }

// --- Profile, focus, settings ---

type UpdateProfile struct{ Profile Profile }

type AddFocusSession struct{ Session FocusSession }
type UpdateTimer struct{ Timer TimerState }
type UpdateSettings struct{ Settings Settings }

func (AddRoutine) isAction()         {}
func (UpdateRoutine) isAction()      {}
func (DeleteRoutine) isAction()      {}
func (ToggleRoutineDay) isAction()   {}
func (AddEvent) isAction()           {}
func (UpdateEvent) isAction()        {}
func (DeleteEvent) isAction()        {}
func (ToggleEvent) isAction()        {}
func (AddDayTask) isAction()         {}
func (ToggleDayTask) isAction()      {}
func (DeleteDayTask) isAction()      {}
func (AddWallet) isAction()          {}
func (UpdateWallet) isAction()       {}
func (DeleteWallet) isAction()       {}
func (AddTransaction) isAction()     {}
func (DeleteTransaction) isAction()  {}
func (AddTask) isAction()            {}
func (UpdateTask) isAction()         {}
func (ToggleTask) isAction()         {}
func (DeleteTask) isAction()         {}
func (AddHabit) isAction()           {}
func (UpdateHabit) isAction()        {}
func (DeleteHabit) isAction()        {}
func (ToggleHabit) isAction()        {}
func (RecalculateStreaks) isAction() {}
func (AddIdea) isAction()            {}
func (DeleteIdea) isAction()         {}
func (AddFolder) isAction()          {}
func (DeleteFolder) isAction()       {}
func (AddNote) isAction()            {}
func (UpdateNote) isAction()         {}
func (DeleteNote) isAction()         {}
func (UpdateProfile) isAction()      {}
func (AddFocusSession) isAction()    {}
func (UpdateTimer) isAction()        {}
func (UpdateSettings) isAction()     {}
