package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daywise/internal/dateutil"
	"daywise/internal/state"
)

// 2025-03-03 is a Monday.
var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.Local)

func sunday() time.Time { return dateutil.AddDays(monday, 6) }

func tod(h, m int) *state.TimeOfDay {
	t := state.TimeOfDay(h*60 + m)
	return &t
}

func TestGenerateWeekdayFilter(t *testing.T) {
	r := state.Routine{
		ID:    "r1",
		Title: "Morning run",
		Days:  []dateutil.Weekday{dateutil.Monday, dateutil.Wednesday},
		Completed: map[string]bool{
			"2025-03-03": true,
		},
	}

	events := Generate(r, monday, sunday(), nil)
	require.Len(t, events, 2)

	assert.Equal(t, "2025-03-03", dateutil.FormatDate(events[0].Start))
	assert.True(t, events[0].Completed)
	assert.Equal(t, "2025-03-05", dateutil.FormatDate(events[1].Start))
	assert.False(t, events[1].Completed)

	for _, e := range events {
		assert.Equal(t, "Morning run", e.Title)
		assert.Equal(t, "r1", e.RoutineID)
		assert.Equal(t, RoutineColor, e.Color)
	}
}

func TestGenerateCreationDateFloor(t *testing.T) {
	r := state.Routine{
		ID: "r1",
		Days: []dateutil.Weekday{
			dateutil.Monday, dateutil.Tuesday, dateutil.Wednesday, dateutil.Thursday,
			dateutil.Friday, dateutil.Saturday, dateutil.Sunday,
		},
		CreatedAt: "2025-03-05", // the Wednesday of the window
	}

	events := Generate(r, monday, sunday(), nil)
	require.Len(t, events, 5)
	assert.Equal(t, "2025-03-05", dateutil.FormatDate(events[0].Start))
	assert.Equal(t, "2025-03-09", dateutil.FormatDate(events[4].Start))
}

func TestGenerateCreatedAfterWindow(t *testing.T) {
	r := state.Routine{
		ID:        "r1",
		Days:      []dateutil.Weekday{dateutil.Monday},
		CreatedAt: "2025-04-01",
	}
	assert.Empty(t, Generate(r, monday, sunday(), nil))
}

func TestGenerateDeduplicatesExisting(t *testing.T) {
	r := state.Routine{
		ID:   "r1",
		Days: []dateutil.Weekday{dateutil.Monday, dateutil.Wednesday},
	}
	existing := []state.Event{
		{ID: "e1", RoutineID: "r1", Start: monday.Add(9 * time.Hour)},
		// Another routine's event on Wednesday must not suppress ours.
		{ID: "e2", RoutineID: "other", Start: dateutil.AddDays(monday, 2).Add(9 * time.Hour)},
	}

	events := Generate(r, monday, sunday(), existing)
	require.Len(t, events, 1)
	assert.Equal(t, "2025-03-05", dateutil.FormatDate(events[0].Start))
}

func TestGenerateNoScheduledDays(t *testing.T) {
	r := state.Routine{ID: "r1"}
	assert.Empty(t, Generate(r, monday, sunday(), nil))
}

func TestGenerateDefaultTime(t *testing.T) {
	r := state.Routine{ID: "r1", Days: []dateutil.Weekday{dateutil.Monday}}
	events := Generate(r, monday, monday, nil)
	require.Len(t, events, 1)
	assert.Equal(t, 9, events[0].Start.Hour())
	assert.Equal(t, 10, events[0].End.Hour())
}

func TestGenerateExplicitSpan(t *testing.T) {
	r := state.Routine{
		ID:    "r1",
		Days:  []dateutil.Weekday{dateutil.Monday},
		Start: tod(7, 30),
		End:   tod(8, 15),
	}
	events := Generate(r, monday, monday, nil)
	require.Len(t, events, 1)
	assert.Equal(t, "07:30", events[0].Start.Format("15:04"))
	assert.Equal(t, "08:15", events[0].End.Format("15:04"))
}

func TestGenerateDurationClamp(t *testing.T) {
	r := state.Routine{
		ID:       "r1",
		Days:     []dateutil.Weekday{dateutil.Monday},
		Start:    tod(22, 0),
		Duration: 5, // below the minimum
	}
	events := Generate(r, monday, monday, nil)
	require.Len(t, events, 1)
	assert.Equal(t, 10*time.Minute, events[0].End.Sub(events[0].Start))
}

func TestGenerateWrapsPastMidnight(t *testing.T) {
	r := state.Routine{
		ID:    "r1",
		Days:  []dateutil.Weekday{dateutil.Monday},
		Start: tod(23, 30),
		End:   tod(0, 30),
	}
	events := Generate(r, monday, monday, nil)
	require.Len(t, events, 1)
	assert.Equal(t, "2025-03-03", dateutil.FormatDate(events[0].Start))
	assert.Equal(t, "2025-03-04", dateutil.FormatDate(events[0].End))
	assert.Equal(t, "00:30", events[0].End.Format("15:04"))
}

func TestGenerateDeterministicIDs(t *testing.T) {
	r := state.Routine{ID: "r1", Days: []dateutil.Weekday{dateutil.Monday}}
	a := Generate(r, monday, sunday(), nil)
	b := Generate(r, monday, sunday(), nil)
	require.Equal(t, a, b)
	assert.Equal(t, "r1:2025-03-03", a[0].ID)
}
