// Package dateutil provides local-calendar date helpers shared by the
// scheduling and habit logic. All functions reason in the process-local
// time zone: persisted timestamps are instants, but routines and habits
// are defined in terms of local calendar days.
package dateutil

import "time"

// DateFormat is the canonical key format for calendar days.
const DateFormat = "2006-01-02"

// Weekday is a Monday-first day-of-week enumeration.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return "invalid"
	}
	return weekdayNames[w]
}

// FormatDate renders t as "YYYY-MM-DD" using its local calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDate parses a "YYYY-MM-DD" string into a local midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.Local)
}

// DayOf converts t's weekday into the Monday-first enumeration.
func DayOf(t time.Time) Weekday {
	// time.Weekday is Sunday-first.
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// AddDays returns t shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// Midnight truncates t to 00:00:00 of its local calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekDates returns the 7 consecutive days of the week containing t,
// Monday first.
func WeekDates(t time.Time) []time.Time {
	start := AddDays(Midnight(t), -int(DayOf(t)))
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = AddDays(start, i)
	}
	return days
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsToday reports whether t falls on the current local calendar day.
func IsToday(t time.Time) bool {
	return SameDay(t, time.Now())
}
