package habit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"daywise/internal/dateutil"
)

var refDay = time.Date(2025, 3, 7, 14, 30, 0, 0, time.Local)

func daysAgo(n int) string {
	return dateutil.FormatDate(dateutil.AddDays(refDay, -n))
}

func TestStreakEmptyRecords(t *testing.T) {
	assert.Zero(t, StreakOn(nil, refDay))
	assert.Zero(t, StreakOn([]string{}, refDay))
}

func TestStreakConsecutiveThroughToday(t *testing.T) {
	records := []string{daysAgo(0), daysAgo(1), daysAgo(2)}
	assert.Equal(t, 3, StreakOn(records, refDay))
}

func TestStreakBrokenChain(t *testing.T) {
	// Today done but yesterday missing: only today counts.
	records := []string{daysAgo(0), daysAgo(2)}
	assert.Equal(t, 1, StreakOn(records, refDay))
}

func TestStreakEndingYesterday(t *testing.T) {
	// Today not done yet, chain through yesterday still alive.
	records := []string{daysAgo(1), daysAgo(2), daysAgo(3)}
	assert.Equal(t, 3, StreakOn(records, refDay))
}

func TestStreakZeroOnGap(t *testing.T) {
	// Neither today nor yesterday present.
	records := []string{daysAgo(2)}
	assert.Zero(t, StreakOn(records, refDay))
}

func TestStreakOrderIrrelevant(t *testing.T) {
	records := []string{daysAgo(2), daysAgo(0), daysAgo(1)}
	assert.Equal(t, 3, StreakOn(records, refDay))
}

func TestStreakAtMostRecordCount(t *testing.T) {
	for _, records := range [][]string{
		nil,
		{daysAgo(0)},
		{daysAgo(0), daysAgo(1)},
		{daysAgo(0), daysAgo(3), daysAgo(4)},
		{daysAgo(5), daysAgo(9)},
	} {
		s := StreakOn(records, refDay)
		assert.LessOrEqual(t, s, len(records))
		assert.GreaterOrEqual(t, s, 0)
	}
}

func TestStreakScanCap(t *testing.T) {
	records := make([]string, 0, 400)
	for i := 0; i < 400; i++ {
		records = append(records, daysAgo(i))
	}
	assert.Equal(t, 365, StreakOn(records, refDay))
}

func TestStreakIgnoresDuplicates(t *testing.T) {
	records := []string{daysAgo(0), daysAgo(0), daysAgo(1)}
	assert.Equal(t, 2, StreakOn(records, refDay))
}

func TestCurrentStreakUsesLocalClock(t *testing.T) {
	today := dateutil.FormatDate(time.Now())
	assert.Equal(t, 1, CurrentStreak([]string{today}))
}
