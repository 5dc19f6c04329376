package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripplanner/backend/internal/schedule"
)

// ---- helpers ---------------------------------------------------------------

func day(t *testing.T, s string) schedule.Day {
	t.Helper()
	d, err := schedule.ParseDay(s)
	require.NoError(t, err)
	return d
}

func clock(t *testing.T, s string) schedule.Clock {
	t.Helper()
	c, err := schedule.ParseClock(s)
	require.NoError(t, err)
	return c
}

// span builds an interval from "2025-07-01 09:00" style strings.
func span(t *testing.T, start, end string) schedule.Interval {
	t.Helper()
	iv, err := schedule.NewInterval(
		day(t, start[:10]), clock(t, start[11:]),
		day(t, end[:10]), clock(t, end[11:]),
	)
	require.NoError(t, err)
	return iv
}

// sampleIntervals is a mixed bag used by the property-style tests below.
func sampleIntervals(t *testing.T) []schedule.Interval {
	return []schedule.Interval{
		span(t, "2025-07-01 09:00", "2025-07-01 10:00"),
		span(t, "2025-07-01 10:00", "2025-07-01 11:00"),
		span(t, "2025-07-01 09:30", "2025-07-01 09:45"),
		span(t, "2025-07-01 22:00", "2025-07-02 06:00"),
		span(t, "2025-06-30 00:00", "2025-07-03 23:59"),
		span(t, "2025-07-02 12:00", "2025-07-02 12:00"),
		span(t, "2025-07-05 08:00", "2025-07-06 08:00"),
	}
}

// ---- Overlaps --------------------------------------------------------------

func TestOverlaps_Symmetric(t *testing.T) {
	ivs := sampleIntervals(t)
	for _, a := range ivs {
		for _, b := range ivs {
			assert.Equal(t, schedule.Overlaps(a, b), schedule.Overlaps(b, a), "%s vs %s", a, b)
		}
	}
}

func TestOverlaps_SelfWithPositiveDuration(t *testing.T) {
	for _, a := range sampleIntervals(t) {
		if a.Duration() > 0 {
			assert.True(t, schedule.Overlaps(a, a), "%s should overlap itself", a)
		}
	}
}

func TestOverlaps_TouchingIsNotOverlap(t *testing.T) {
	a := span(t, "2025-07-01 09:00", "2025-07-01 10:00")
	b := span(t, "2025-07-01 10:00", "2025-07-01 11:00")

	assert.False(t, schedule.Overlaps(a, b))
	assert.False(t, schedule.Overlaps(b, a))
}

func TestOverlaps_AcrossMidnight(t *testing.T) {
	overnight := span(t, "2025-07-01 22:00", "2025-07-02 06:00")
	breakfast := span(t, "2025-07-02 05:30", "2025-07-02 07:00")

	assert.True(t, schedule.Overlaps(overnight, breakfast))
}

func TestOverlaps_Disjoint(t *testing.T) {
	a := span(t, "2025-07-01 09:00", "2025-07-01 10:00")
	b := span(t, "2025-07-03 09:00", "2025-07-03 10:00")

	assert.False(t, schedule.Overlaps(a, b))
}

// ---- ConflictsWith ---------------------------------------------------------

func TestConflictsWith_Scenario(t *testing.T) {
	a := span(t, "2025-07-01 09:00", "2025-07-01 12:00")
	b := span(t, "2025-07-01 11:00", "2025-07-01 13:00")
	c := span(t, "2025-07-01 12:00", "2025-07-01 13:00")

	assert.True(t, schedule.ConflictsWith(a, b))
	assert.False(t, schedule.ConflictsWith(a, c))
}

// ---- IntersectsDay ---------------------------------------------------------

func TestIntersectsDay(t *testing.T) {
	multiDay := span(t, "2025-07-01 10:00", "2025-07-03 18:00")

	cases := []struct {
		name string
		iv   schedule.Interval
		day  string
		want bool
	}{
		{"single day inside", span(t, "2025-07-02 09:00", "2025-07-02 10:00"), "2025-07-02", true},
		{"single day other day", span(t, "2025-07-02 09:00", "2025-07-02 10:00"), "2025-07-03", false},
		{"multi day middle", multiDay, "2025-07-02", true},
		{"multi day first", multiDay, "2025-07-01", true},
		{"multi day last", multiDay, "2025-07-03", true},
		{"multi day miss", multiDay, "2025-07-05", false},
		{"overnight from previous day", span(t, "2025-07-01 22:00", "2025-07-02 06:00"), "2025-07-02", true},
		{"overnight into next day", span(t, "2025-07-01 22:00", "2025-07-02 06:00"), "2025-07-01", true},
		{"ends exactly at midnight", span(t, "2025-07-01 22:00", "2025-07-02 00:00"), "2025-07-02", false},
		{"zero length at midnight", span(t, "2025-07-02 00:00", "2025-07-02 00:00"), "2025-07-02", true},
		{"zero length previous day", span(t, "2025-07-01 23:59", "2025-07-01 23:59"), "2025-07-02", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, schedule.IntersectsDay(tc.iv, day(t, tc.day)))
		})
	}
}

// ---- WindowForDay ----------------------------------------------------------

func TestWindowForDay_MultiDayMiddleIsFullDay(t *testing.T) {
	iv := span(t, "2025-07-01 10:00", "2025-07-03 18:00")

	w := schedule.WindowForDay(iv, day(t, "2025-07-02"))

	assert.Equal(t, 0, w.StartMinute)
	assert.Equal(t, 1440, w.DurationMinutes)
}

func TestWindowForDay_FirstAndLastDay(t *testing.T) {
	iv := span(t, "2025-07-01 10:00", "2025-07-03 18:00")

	first := schedule.WindowForDay(iv, day(t, "2025-07-01"))
	assert.Equal(t, 600, first.StartMinute)
	assert.Equal(t, 840, first.DurationMinutes)
	assert.Equal(t, 1440, first.EndMinute())

	last := schedule.WindowForDay(iv, day(t, "2025-07-03"))
	assert.Equal(t, 0, last.StartMinute)
	assert.Equal(t, 18*60, last.DurationMinutes)
}

func TestWindowForDay_SameDay(t *testing.T) {
	iv := span(t, "2025-07-01 09:15", "2025-07-01 10:45")

	w := schedule.WindowForDay(iv, day(t, "2025-07-01"))

	assert.Equal(t, schedule.Window{StartMinute: 555, DurationMinutes: 90}, w)
}

func TestWindowForDay_NeverZeroDuration(t *testing.T) {
	cases := []struct {
		name string
		iv   schedule.Interval
		day  string
	}{
		{"zero length", span(t, "2025-07-01 12:00", "2025-07-01 12:00"), "2025-07-01"},
		{"ends at midnight", span(t, "2025-06-30 20:00", "2025-07-01 00:00"), "2025-07-01"},
		{"entirely before day", span(t, "2025-06-28 08:00", "2025-06-28 09:00"), "2025-07-01"},
		{"entirely after day", span(t, "2025-07-04 08:00", "2025-07-04 09:00"), "2025-07-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := schedule.WindowForDay(tc.iv, day(t, tc.day))
			assert.GreaterOrEqual(t, w.DurationMinutes, 1)
			assert.GreaterOrEqual(t, w.StartMinute, 0)
			assert.LessOrEqual(t, w.StartMinute, 1440)
		})
	}
}

// ---- ConstrainToBounds -----------------------------------------------------

func TestConstrainToBounds(t *testing.T) {
	lo, hi := day(t, "2025-07-01"), day(t, "2025-07-10")

	assert.Equal(t, lo, schedule.ConstrainToBounds(day(t, "2025-06-15"), lo, hi))
	assert.Equal(t, hi, schedule.ConstrainToBounds(day(t, "2025-08-01"), lo, hi))
	assert.Equal(t, day(t, "2025-07-04"), schedule.ConstrainToBounds(day(t, "2025-07-04"), lo, hi))
}

func TestConstrainToBounds_IdentityInsideRange(t *testing.T) {
	lo, hi := day(t, "2025-07-01"), day(t, "2025-07-10")
	for d := lo; !d.After(hi); d = d.AddDays(1) {
		assert.Equal(t, d, schedule.ConstrainToBounds(d, lo, hi))
	}
}

func TestConstrainToBounds_Idempotent(t *testing.T) {
	start := day(t, "2025-06-25")
	bounds := [][2]schedule.Day{
		{day(t, "2025-07-01"), day(t, "2025-07-01")},
		{day(t, "2025-07-01"), day(t, "2025-07-10")},
		{day(t, "2025-06-20"), day(t, "2025-06-28")},
	}
	for _, b := range bounds {
		for i := 0; i < 30; i++ {
			d := start.AddDays(i)
			once := schedule.ConstrainToBounds(d, b[0], b[1])
			twice := schedule.ConstrainToBounds(once, b[0], b[1])
			assert.Equal(t, once, twice)
		}
	}
}

func TestConstrainToBounds_InvertedBoundsPanics(t *testing.T) {
	assert.Panics(t, func() {
		schedule.ConstrainToBounds(day(t, "2025-07-05"), day(t, "2025-07-10"), day(t, "2025-07-01"))
	})
}

// ---- Days ------------------------------------------------------------------

func TestAllDays_Inclusive(t *testing.T) {
	iv := span(t, "2025-07-01 18:00", "2025-07-03 07:00")

	got := schedule.AllDays(iv)

	assert.Equal(t, []schedule.Day{
		day(t, "2025-07-01"),
		day(t, "2025-07-02"),
		day(t, "2025-07-03"),
	}, got)
}

func TestAllDays_SingleDay(t *testing.T) {
	iv := span(t, "2025-07-01 09:00", "2025-07-01 10:00")

	assert.Equal(t, []schedule.Day{day(t, "2025-07-01")}, schedule.AllDays(iv))
}

func TestAllDays_AcrossMonthAndYear(t *testing.T) {
	iv := span(t, "2025-12-30 09:00", "2026-01-02 10:00")

	got := schedule.AllDays(iv)

	require.Len(t, got, 4)
	assert.Equal(t, "2025-12-31", got[1].String())
	assert.Equal(t, "2026-01-01", got[2].String())
}

func TestDays_Restartable(t *testing.T) {
	seq := schedule.Days(span(t, "2025-07-01 00:00", "2025-07-03 00:00"))

	var first, second []schedule.Day
	for d := range seq {
		first = append(first, d)
	}
	for d := range seq {
		second = append(second, d)
	}
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestDays_StopsEarly(t *testing.T) {
	var n int
	for range schedule.Days(span(t, "2025-07-01 00:00", "2025-07-31 00:00")) {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}

// ---- Contains --------------------------------------------------------------

func TestContains(t *testing.T) {
	trip := span(t, "2025-07-01 00:00", "2025-07-10 23:59")

	assert.True(t, schedule.Contains(trip, span(t, "2025-07-02 09:00", "2025-07-02 10:00")))
	assert.True(t, schedule.Contains(trip, trip))
	assert.False(t, schedule.Contains(trip, span(t, "2025-06-30 23:00", "2025-07-01 01:00")))
}

func TestIntervalOf_DropsSeconds(t *testing.T) {
	start := time.Date(2025, 7, 1, 9, 0, 42, 0, time.UTC)
	end := time.Date(2025, 7, 1, 9, 30, 5, 0, time.UTC)

	iv, err := schedule.IntervalOf(start, end)

	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, iv.Duration())
}
