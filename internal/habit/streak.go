// Package habit computes completion streaks from per-day records.
package habit

import (
	"time"

	"daywise/internal/dateutil"
)

// maxScan bounds the backward walk so a pathological record set cannot
// make a render pass expensive.
const maxScan = 365

// StreakOn returns the consecutive-day streak ending on today or
// yesterday, evaluated against the given reference day. Records are
// "YYYY-MM-DD" strings; order does not matter.
func StreakOn(records []string, today time.Time) int {
	if len(records) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(records))
	for _, r := range records {
		set[r] = struct{}{}
	}

	day := dateutil.Midnight(today)
	if _, ok := set[dateutil.FormatDate(day)]; !ok {
		// Today not done yet: the chain survives only if yesterday is.
		day = dateutil.AddDays(day, -1)
		if _, ok := set[dateutil.FormatDate(day)]; !ok {
			return 0
		}
	}

	streak := 0
	for i := 0; i < maxScan; i++ {
		if _, ok := set[dateutil.FormatDate(day)]; !ok {
			break
		}
		streak++
		day = dateutil.AddDays(day, -1)
	}
	return streak
}

// CurrentStreak evaluates StreakOn against the local clock.
func CurrentStreak(records []string) int {
	return StreakOn(records, time.Now())
}
