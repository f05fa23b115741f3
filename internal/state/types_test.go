package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSpanSingle(t *testing.T) {
	start, end, err := ParseTimeSpan("09:30")
	require.NoError(t, err)
	require.NotNil(t, start)
	assert.EqualValues(t, 9*60+30, *start)
	assert.Nil(t, end)
}

func TestParseTimeSpanRange(t *testing.T) {
	start, end, err := ParseTimeSpan("09:00-10:15")
	require.NoError(t, err)
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.EqualValues(t, 9*60, *start)
	assert.EqualValues(t, 10*60+15, *end)
}

func TestParseTimeSpanEmpty(t *testing.T) {
	start, end, err := ParseTimeSpan("  ")
	require.NoError(t, err)
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestParseTimeSpanInvalid(t *testing.T) {
	for _, in := range []string{"25:00", "09:61", "morning", "9am-10am"} {
		_, _, err := ParseTimeSpan(in)
		assert.Error(t, err, in)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "07:05", TimeOfDay(7*60+5).String())
	assert.Equal(t, "00:00", TimeOfDay(0).String())
}

func TestNormalizeRepairsNilCollections(t *testing.T) {
	s := Normalize(AppState{})
	assert.NotNil(t, s.Routines)
	assert.NotNil(t, s.DayTasks)
	assert.NotNil(t, s.FocusSessions)
	assert.Equal(t, NewAppState().Timer, s.Timer)
}

func TestNormalizeRepairsHabitFields(t *testing.T) {
	s := Normalize(AppState{Habits: []Habit{{ID: "h1", Streak: -2, BestStreak: 0}}})
	h := s.Habits[0]
	assert.NotNil(t, h.Records)
	assert.Zero(t, h.Streak)
	assert.Zero(t, h.BestStreak)

	s = Normalize(AppState{Habits: []Habit{{ID: "h2", Streak: 4, BestStreak: 1}}})
	assert.Equal(t, 4, s.Habits[0].BestStreak)
}

func TestManagerDispatchAndSaveHook(t *testing.T) {
	var saved []int
	m := NewManager(NewAppState(), func(s AppState) { saved = append(saved, len(s.Tasks)) })

	m.Dispatch(AddTask{Task: Task{ID: "t1"}})
	m.Dispatch(AddTask{Task: Task{ID: "t2"}})

	assert.Len(t, m.State().Tasks, 2)
	assert.Equal(t, []int{1, 2}, saved, "hook sees snapshots in dispatch order")
}

func TestManagerNormalizesInitialState(t *testing.T) {
	m := NewManager(AppState{}, nil)
	assert.NotNil(t, m.State().Wallets)
}
