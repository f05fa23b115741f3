package state

import (
	"maps"
	"slices"
	"sort"
	"time"

	"daywise/internal/habit"
)

// Reduce maps (state, action) to the next state. It is pure and total:
// unknown ids and malformed payloads leave the state unchanged, and the
// input state is never mutated — every case clones the collections it
// touches and shares the rest.
func Reduce(s AppState, action Action) AppState {
	switch a := action.(type) {

	// --- Routines ---

	case AddRoutine:
		s.Routines = append(slices.Clone(s.Routines), a.Routine)

	case UpdateRoutine:
		i := routineIndex(s.Routines, a.Routine.ID)
		if i < 0 {
			return s
		}
		routines := slices.Clone(s.Routines)
		// Completion history survives schedule edits.
		a.Routine.Completed = routines[i].Completed
		routines[i] = a.Routine
		s.Routines = routines

	case DeleteRoutine:
		s.Routines = deleteRoutine(s.Routines, a.ID)

	case ToggleRoutineDay:
		i := routineIndex(s.Routines, a.ID)
		if i < 0 {
			return s
		}
		routines := slices.Clone(s.Routines)
		r := routines[i]
		completed := maps.Clone(r.Completed)
		if completed == nil {
			completed = map[string]bool{}
		}
		completed[a.Date] = !completed[a.Date]
		r.Completed = completed
		routines[i] = r
		s.Routines = routines

	// --- Events ---

	case AddEvent:
		s.Events = append(slices.Clone(s.Events), a.Event)

	case UpdateEvent:
		i := eventIndex(s.Events, a.Event.ID)
		if i < 0 {
			return s
		}
		events := slices.Clone(s.Events)
		events[i] = a.Event
		s.Events = events

	case DeleteEvent:
		s.Events = slices.DeleteFunc(slices.Clone(s.Events), func(e Event) bool {
			return e.ID == a.ID
		})

	case ToggleEvent:
		i := eventIndex(s.Events, a.ID)
		if i < 0 {
			return s
		}
		events := slices.Clone(s.Events)
		events[i].Completed = !events[i].Completed
		s.Events = events

	// --- Day tasks ---

	case AddDayTask:
		dayTasks := maps.Clone(s.DayTasks)
		if dayTasks == nil {
			dayTasks = map[string][]DayTask{}
		}
		dayTasks[a.Date] = append(slices.Clone(dayTasks[a.Date]), a.Task)
		s.DayTasks = dayTasks

	case ToggleDayTask:
		tasks, i := dayTaskIndex(s.DayTasks, a.Date, a.ID)
		if i < 0 {
			return s
		}
		tasks[i].Done = !tasks[i].Done
		dayTasks := maps.Clone(s.DayTasks)
		dayTasks[a.Date] = tasks
		s.DayTasks = dayTasks

	case DeleteDayTask:
		tasks, i := dayTaskIndex(s.DayTasks, a.Date, a.ID)
		if i < 0 {
			return s
		}
		dayTasks := maps.Clone(s.DayTasks)
		dayTasks[a.Date] = slices.Delete(tasks, i, i+1)
		if len(dayTasks[a.Date]) == 0 {
			delete(dayTasks, a.Date)
		}
		s.DayTasks = dayTasks

	// --- Wallets & transactions ---

	case AddWallet:
		s.Wallets = append(slices.Clone(s.Wallets), a.Wallet)

	case UpdateWallet:
		i := walletIndex(s.Wallets, a.Wallet.ID)
		if i < 0 {
			return s
		}
		wallets := slices.Clone(s.Wallets)
		wallets[i] = a.Wallet
		s.Wallets = wallets

	case DeleteWallet:
		if walletIndex(s.Wallets, a.ID) < 0 {
			return s
		}
		s.Wallets = slices.DeleteFunc(slices.Clone(s.Wallets), func(w Wallet) bool {
			return w.ID == a.ID
		})
		s.Transactions = slices.DeleteFunc(slices.Clone(s.Transactions), func(t Transaction) bool {
			return t.WalletID == a.ID || t.ToWalletID == a.ID
		})

	case AddTransaction:
		return addTransaction(s, a.Transaction)

	case DeleteTransaction:
		return deleteTransaction(s, a.ID)

	// --- Tasks ---

	case AddTask:
		s.Tasks = append(slices.Clone(s.Tasks), a.Task)

	case UpdateTask:
		i := taskIndex(s.Tasks, a.Task.ID)
		if i < 0 {
			return s
		}
		tasks := slices.Clone(s.Tasks)
		// Completion state is owned by ToggleTask.
		a.Task.CompletedAt = tasks[i].CompletedAt
		tasks[i] = a.Task
		s.Tasks = tasks

	case ToggleTask:
		return toggleTask(s, a.ID, a.At)

	case DeleteTask:
		if taskIndex(s.Tasks, a.ID) < 0 {
			return s
		}
		s.Tasks = slices.DeleteFunc(slices.Clone(s.Tasks), func(t Task) bool {
			return t.ID == a.ID || t.ParentID == a.ID
		})

	// --- Habits ---

	case AddHabit:
		s.Habits = append(slices.Clone(s.Habits), a.Habit)

	case UpdateHabit:
		i := habitIndex(s.Habits, a.Habit.ID)
		if i < 0 {
			return s
		}
		habits := slices.Clone(s.Habits)
		// Records and streaks are owned by ToggleHabit.
		a.Habit.Records = habits[i].Records
		a.Habit.Streak = habits[i].Streak
		a.Habit.BestStreak = habits[i].BestStreak
		a.Habit.CreatedAt = habits[i].CreatedAt
		habits[i] = a.Habit
		s.Habits = habits

	case DeleteHabit:
		s.Habits = slices.DeleteFunc(slices.Clone(s.Habits), func(h Habit) bool {
			return h.ID == a.ID
		})

	case ToggleHabit:
		i := habitIndex(s.Habits, a.ID)
		if i < 0 {
			return s
		}
		habits := slices.Clone(s.Habits)
		h := habits[i]
		records := slices.Clone(h.Records)
		if j := slices.Index(records, a.Date); j >= 0 {
			records = slices.Delete(records, j, j+1)
		} else {
			records = append(records, a.Date)
			sort.Strings(records)
		}
		h.Records = records
		h.Streak = habit.StreakOn(records, orNow(a.Today))
		h.BestStreak = max(h.BestStreak, h.Streak)
		habits[i] = h
		s.Habits = habits

	case RecalculateStreaks:
		today := orNow(a.Today)
		habits := slices.Clone(s.Habits)
		for i, h := range habits {
			h.Streak = habit.StreakOn(h.Records, today)
			h.BestStreak = max(h.BestStreak, h.Streak)
			habits[i] = h
		}
		s.Habits = habits

	// --- Ideas, folders, notes ---

	case AddIdea:
		s.Ideas = append(slices.Clone(s.Ideas), a.Idea)

	case DeleteIdea:
		s.Ideas = slices.DeleteFunc(slices.Clone(s.Ideas), func(i Idea) bool {
			return i.ID == a.ID
		})

	case AddFolder:
		s.Folders = append(slices.Clone(s.Folders), a.Folder)

	case DeleteFolder:
		s.Folders = slices.DeleteFunc(slices.Clone(s.Folders), func(f Folder) bool {
			return f.ID == a.ID
		})
		ideas := slices.Clone(s.Ideas)
		for i := range ideas {
			if ideas[i].FolderID == a.ID {
				ideas[i].FolderID = ""
			}
		}
		s.Ideas = ideas
		notes := slices.Clone(s.Notes)
		for i := range notes {
			if notes[i].FolderID == a.ID {
				notes[i].FolderID = ""
			}
		}
		s.Notes = notes

	case AddNote:
		s.Notes = append(slices.Clone(s.Notes), a.Note)

	case UpdateNote:
		i := noteIndex(s.Notes, a.Note.ID)
		if i < 0 {
			return s
		}
		notes := slices.Clone(s.Notes)
		notes[i] = a.Note
		s.Notes = notes

	case DeleteNote:
		s.Notes = slices.DeleteFunc(slices.Clone(s.Notes), func(n Note) bool {
			return n.ID == a.ID
		})

	// --- Profile, focus, settings ---

	case UpdateProfile:
		s.Profile = a.Profile

	case AddFocusSession:
		s.FocusSessions = append(slices.Clone(s.FocusSessions), a.Session)

	case UpdateTimer:
		s.Timer = a.Timer

	case UpdateSettings:
		s.Settings = a.Settings
	}

	return s
}

// toggleTask flips a task's completion timestamp. When the toggled task
// is a subtask and every sibling under the same parent is now done, the
// parent is completed as well. The cascade only runs forward: clearing
// a subtask never reopens the parent.
func toggleTask(s AppState, id string, at time.Time) AppState {
	i := taskIndex(s.Tasks, id)
	if i < 0 {
		return s
	}
	tasks := slices.Clone(s.Tasks)
	t := tasks[i]
	if t.CompletedAt != nil {
		t.CompletedAt = nil
	} else {
		done := at
		t.CompletedAt = &done
	}
	tasks[i] = t

	if t.ParentID != "" && t.CompletedAt != nil {
		if p := taskIndex(tasks, t.ParentID); p >= 0 && tasks[p].CompletedAt == nil && allSubtasksDone(tasks, t.ParentID) {
			done := at
			tasks[p].CompletedAt = &done
		}
	}

	s.Tasks = tasks
	return s
}

func allSubtasksDone(tasks []Task, parentID string) bool {
	for _, t := range tasks {
		if t.ParentID == parentID && t.CompletedAt == nil {
			return false
		}
	}
	return true
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func deleteRoutine(routines []Routine, id string) []Routine {
	return slices.DeleteFunc(slices.Clone(routines), func(r Routine) bool {
		return r.ID == id
	})
}

// dayTaskIndex returns a cloned slice for the date plus the index of
// the target task within it, or -1 when either is missing.
func dayTaskIndex(dayTasks map[string][]DayTask, date, id string) ([]DayTask, int) {
	tasks := slices.Clone(dayTasks[date])
	for i, t := range tasks {
		if t.ID == id {
			return tasks, i
		}
	}
	return nil, -1
}

func routineIndex(routines []Routine, id string) int {
	return slices.IndexFunc(routines, func(r Routine) bool { return r.ID == id })
}

func eventIndex(events []Event, id string) int {
	return slices.IndexFunc(events, func(e Event) bool { return e.ID == id })
}

func walletIndex(wallets []Wallet, id string) int {
	return slices.IndexFunc(wallets, func(w Wallet) bool { return w.ID == id })
}

func taskIndex(tasks []Task, id string) int {
	return slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
}

func habitIndex(habits []Habit, id string) int {
	return slices.IndexFunc(habits, func(h Habit) bool { return h.ID == id })
}

func noteIndex(notes []Note, id string) int {
	return slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
}
