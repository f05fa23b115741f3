// Package schedule materializes routine definitions into concrete
// calendar events over a date window. Generated events are ephemeral
// projections: they are recomputed on every refresh and never stored.
package schedule

import (
	"time"

	"daywise/internal/dateutil"
	"daywise/internal/state"
)

// RoutineColor is used for all routine-derived events; user events
// carry their own color.
const RoutineColor = "#6C63FF"

const (
	defaultStart    = state.TimeOfDay(9 * 60)
	defaultDuration = 60
	minDuration     = 10
)

// EventID builds the deterministic identifier of a routine-derived
// event, a composite of the routine id and the event's calendar day.
// Repeated generation of the same window is referentially stable.
func EventID(routineID, dateStr string) string {
	return routineID + ":" + dateStr
}

// Generate projects routine occurrences onto every day in [start, end]
// whose weekday is scheduled, skipping days before the routine's
// creation date and days already covered by an event in existing.
// Events come back in day-ascending order.
func Generate(r state.Routine, start, end time.Time, existing []state.Event) []state.Event {
	if len(r.Days) == 0 {
		return nil
	}

	startMin, endMin := resolveSpan(r)

	day := dateutil.Midnight(start)
	if r.CreatedAt != "" {
		if created, err := dateutil.ParseDate(r.CreatedAt); err == nil && created.After(day) {
			day = created
		}
	}
	last := dateutil.Midnight(end)

	// Days already frozen by a persisted event for this routine.
	covered := make(map[string]struct{})
	for _, e := range existing {
		if e.RoutineID == r.ID {
			covered[dateutil.FormatDate(e.Start)] = struct{}{}
		}
	}

	var events []state.Event
	for ; !day.After(last); day = dateutil.AddDays(day, 1) {
		if !r.HasDay(dateutil.DayOf(day)) {
			continue
		}
		dateStr := dateutil.FormatDate(day)
		if _, ok := covered[dateStr]; ok {
			continue
		}
		events = append(events, state.Event{
			ID:          EventID(r.ID, dateStr),
			Title:       r.Title,
			Description: r.Description,
			Start:       day.Add(time.Duration(startMin) * time.Minute),
			End:         day.Add(time.Duration(endMin) * time.Minute),
			Color:       RoutineColor,
			Completed:   r.Completed[dateStr],
			RoutineID:   r.ID,
		})
	}
	return events
}

// resolveSpan returns start and end as minute offsets from the day's
// midnight. An end past 24h simply lands on the following day once
// added to the midnight anchor.
func resolveSpan(r state.Routine) (int, int) {
	start := defaultStart
	if r.Start != nil {
		start = *r.Start
	}
	if r.End != nil {
		end := *r.End
		if end <= start {
			// Wraps past midnight.
			end += 24 * 60
		}
		return int(start), int(end)
	}
	dur := r.Duration
	if dur == 0 {
		dur = defaultDuration
	}
	if dur < minDuration {
		dur = minDuration
	}
	return int(start), int(start) + dur
}
