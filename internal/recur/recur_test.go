package recur_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/recur"
	"github.com/tripplanner/backend/internal/schedule"
)

func interval(t *testing.T, startDay, startClock, endDay, endClock string) schedule.Interval {
	t.Helper()
	sd, err := schedule.ParseDay(startDay)
	require.NoError(t, err)
	sc, err := schedule.ParseClock(startClock)
	require.NoError(t, err)
	ed, err := schedule.ParseDay(endDay)
	require.NoError(t, err)
	ec, err := schedule.ParseClock(endClock)
	require.NoError(t, err)
	iv, err := schedule.NewInterval(sd, sc, ed, ec)
	require.NoError(t, err)
	return iv
}

func tripWindow(t *testing.T) schedule.Interval {
	return interval(t, "2025-07-01", "00:00", "2025-07-07", "23:59")
}

func TestExpand_OneOff(t *testing.T) {
	ev := domain.Event{ID: uuid.New(), Name: "Museum", When: interval(t, "2025-07-02", "10:00", "2025-07-02", "12:00")}

	got, err := recur.Expand(ev, tripWindow(t))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ev.When, got[0].When)
	assert.Equal(t, ev.ID, got[0].Event.ID)
}

func TestExpand_DailyCount(t *testing.T) {
	ev := domain.Event{
		Name:       "Breakfast",
		When:       interval(t, "2025-07-02", "08:00", "2025-07-02", "09:00"),
		Recurrence: "FREQ=DAILY;COUNT=3",
	}

	got, err := recur.Expand(ev, tripWindow(t))

	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, want := range []string{"2025-07-02", "2025-07-03", "2025-07-04"} {
		assert.Equal(t, want, got[i].When.StartDay().String())
		assert.Equal(t, "08:00", got[i].When.StartClock().String())
		assert.Equal(t, "09:00", got[i].When.EndClock().String())
	}
}

func TestExpand_UnboundedRuleStopsAtWindow(t *testing.T) {
	ev := domain.Event{
		Name:       "Night market",
		When:       interval(t, "2025-07-01", "22:00", "2025-07-02", "01:00"),
		Recurrence: "RRULE:FREQ=DAILY",
	}

	got, err := recur.Expand(ev, tripWindow(t))

	require.NoError(t, err)
	assert.Len(t, got, 7)
	last := got[len(got)-1]
	assert.Equal(t, "2025-07-07", last.When.StartDay().String())
	assert.Equal(t, "2025-07-08", last.When.EndDay().String(), "overnight occurrences keep their length")
}

func TestExpand_Weekly(t *testing.T) {
	ev := domain.Event{
		Name:       "Yoga",
		When:       interval(t, "2025-07-01", "07:00", "2025-07-01", "08:00"),
		Recurrence: "FREQ=WEEKLY;COUNT=4",
	}
	window := interval(t, "2025-07-01", "00:00", "2025-07-31", "23:59")

	got, err := recur.Expand(ev, window)

	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "2025-07-22", got[3].When.StartDay().String())
}

func TestExpand_InvalidRule(t *testing.T) {
	ev := domain.Event{
		When:       interval(t, "2025-07-01", "07:00", "2025-07-01", "08:00"),
		Recurrence: "FREQ=SOMETIMES",
	}

	_, err := recur.Expand(ev, tripWindow(t))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, recur.Validate("FREQ=DAILY;COUNT=2"))
	assert.NoError(t, recur.Validate("FREQ=WEEKLY;BYDAY=MO,WE"))
	assert.ErrorIs(t, recur.Validate(""), domain.ErrValidation)
	assert.ErrorIs(t, recur.Validate("FREQ=HOURLY"), domain.ErrValidation)
	assert.ErrorIs(t, recur.Validate("not a rule"), domain.ErrValidation)
}

func TestExpandAll(t *testing.T) {
	events := []domain.Event{
		{Name: "A", When: interval(t, "2025-07-02", "10:00", "2025-07-02", "11:00")},
		{Name: "B", When: interval(t, "2025-07-03", "10:00", "2025-07-03", "11:00"), Recurrence: "FREQ=DAILY;COUNT=2"},
	}

	got, err := recur.ExpandAll(events, tripWindow(t))

	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestExpand_TripStartingAfterMidnight(t *testing.T) {
	window := interval(t, "2025-07-01", "14:00", "2025-07-03", "23:59")
	ev := domain.Event{
		Name:       "Coffee",
		When:       interval(t, "2025-07-01", "09:00", "2025-07-01", "10:00"),
		Recurrence: "FREQ=DAILY;COUNT=3",
	}

	got, err := recur.Expand(ev, window)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, ev.When, got[0].When, "first occurrence is the event itself")
	assert.Equal(t, "2025-07-03", got[2].When.StartDay().String())
}

func TestNormalize(t *testing.T) {
	for in, want := range map[string]string{
		"FREQ=DAILY":                  "FREQ=DAILY",
		"  RRULE:FREQ=DAILY;COUNT=2 ": "FREQ=DAILY;COUNT=2",
		"rrule: FREQ=WEEKLY":          "FREQ=WEEKLY",
		"":                            "",
	} {
		assert.Equal(t, want, recur.Normalize(in), in)
	}
}
