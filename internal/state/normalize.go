package state

// Normalize repairs a state that came in over the persistence or import
// boundary: nil collections become empty, derived habit fields are
// clamped sane, and zero timer preferences fall back to defaults. The
// pure algorithms downstream assume a normalized state.
func Normalize(s AppState) AppState {
	if s.Routines == nil {
		s.Routines = []Routine{}
	}
	if s.Events == nil {
		s.Events = []Event{}
	}
	if s.DayTasks == nil {
		s.DayTasks = map[string][]DayTask{}
	}
	if s.Wallets == nil {
		s.Wallets = []Wallet{}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.Habits == nil {
		s.Habits = []Habit{}
	}
	if s.Ideas == nil {
		s.Ideas = []Idea{}
	}
	if s.Folders == nil {
		s.Folders = []Folder{}
	}
	if s.Notes == nil {
		s.Notes = []Note{}
	}
	if s.FocusSessions == nil {
		s.FocusSessions = []FocusSession{}
	}

	for i, h := range s.Habits {
		if h.Records == nil {
			h.Records = []string{}
		}
		if h.Streak < 0 {
			h.Streak = 0
		}
		if h.BestStreak < h.Streak {
			h.BestStreak = h.Streak
		}
		s.Habits[i] = h
	}

	def := NewAppState().Timer
	if s.Timer.WorkSeconds <= 0 {
		s.Timer.WorkSeconds = def.WorkSeconds
	}
	if s.Timer.BreakSeconds <= 0 {
		s.Timer.BreakSeconds = def.BreakSeconds
	}
	if s.Timer.LongBreakSeconds <= 0 {
		s.Timer.LongBreakSeconds = def.LongBreakSeconds
	}
	if s.Timer.TargetRounds <= 0 {
		s.Timer.TargetRounds = def.TargetRounds
	}
	return s
}
