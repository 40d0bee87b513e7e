package schedule

import (
	"testing"
	"time"

	calendarapimodels "team-recruiting-backend/models/api/calendar"
	dbmodels "team-recruiting-backend/models/db"

	"github.com/stretchr/testify/require"
)

func testPolicy() dbmodels.SchedulingPolicy {
	return dbmodels.SchedulingPolicy{
		DurationMinutes:    60,
		BufferMinutes:      15,
		AvailableDays:      []int64{1, 2, 3, 4, 5},
		AvailableStartHour: 10,
		AvailableEndHour:   18,
		Timezone:           "Europe/Moscow",
	}
}

func TestEnsureInsideWindow(t *testing.T) {
	policy := testPolicy()
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, testLocation)

	t.Run(`slot inside window check`, func(t *testing.T) {
		start := monday.Add(10 * time.Hour)
		require.Nil(t, ensureInsideWindow(policy, start, start.Add(time.Hour)))
	})

	t.Run(`slot ends exactly at window end check`, func(t *testing.T) {
		start := monday.Add(17 * time.Hour)
		require.Nil(t, ensureInsideWindow(policy, start, start.Add(time.Hour)))
	})

	t.Run(`weekend rejected check`, func(t *testing.T) {
		sunday := monday.AddDate(0, 0, -1).Add(12 * time.Hour)
		require.NotNil(t, ensureInsideWindow(policy, sunday, sunday.Add(time.Hour)))
	})

	t.Run(`too early rejected check`, func(t *testing.T) {
		start := monday.Add(9 * time.Hour)
		require.NotNil(t, ensureInsideWindow(policy, start, start.Add(time.Hour)))
	})

	t.Run(`slot past window end rejected check`, func(t *testing.T) {
		start := monday.Add(17*time.Hour + 30*time.Minute)
		require.NotNil(t, ensureInsideWindow(policy, start, start.Add(time.Hour)))
	})

	t.Run(`day and hour taken in policy timezone check`, func(t *testing.T) {
		// 07:00 UTC понедельника = 10:00 по Москве
		start := time.Date(2026, 9, 7, 7, 0, 0, 0, time.UTC)
		require.Nil(t, ensureInsideWindow(policy, start, start.Add(time.Hour)))
	})

	t.Run(`unknown timezone rejected check`, func(t *testing.T) {
		broken := testPolicy()
		broken.Timezone = "Mars/Olympus"
		start := monday.Add(10 * time.Hour)
		require.NotNil(t, ensureInsideWindow(broken, start, start.Add(time.Hour)))
	})
}

func TestHasOverlap(t *testing.T) {
	start := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	buffer := 15 * time.Minute

	cases := []struct {
		name       string
		eventStart time.Time
		eventEnd   time.Time
		expected   bool
	}{
		{"direct intersection", start.Add(30 * time.Minute), start.Add(90 * time.Minute), true},
		{"inside the buffer", end.Add(5 * time.Minute), end.Add(35 * time.Minute), true},
		{"touches buffer edge", end.Add(buffer), end.Add(buffer + time.Hour), false},
		{"far away", end.Add(3 * time.Hour), end.Add(4 * time.Hour), false},
	}
	for _, tCase := range cases {
		t.Run(tCase.name, func(t *testing.T) {
			events := []calendarapimodels.Event{{Start: tCase.eventStart, End: tCase.eventEnd}}
			require.Equal(t, tCase.expected, hasOverlap(events, start, end, buffer))
		})
	}
}

func TestHasOverlapEmpty(t *testing.T) {
	start := time.Now()
	require.Equal(t, false, hasOverlap(nil, start, start.Add(time.Hour), 0))
}
