package repo

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripplanner/backend/internal/schedule"
)

// Intervals are stored as four columns: start_date, start_time, end_date,
// end_time (DATE and TIME without zone), matching the wall-clock model of
// schedule.Interval.

type intervalColumns struct {
	startDate pgtype.Date
	startTime pgtype.Time
	endDate   pgtype.Date
	endTime   pgtype.Time
}

func (c intervalColumns) interval() (schedule.Interval, error) {
	if !c.startDate.Valid || !c.endDate.Valid {
		return schedule.Interval{}, fmt.Errorf("interval: null date")
	}
	startClock, err := clockFromTime(c.startTime)
	if err != nil {
		return schedule.Interval{}, err
	}
	endClock, err := clockFromTime(c.endTime)
	if err != nil {
		return schedule.Interval{}, err
	}
	return schedule.NewInterval(
		schedule.DayOf(c.startDate.Time), startClock,
		schedule.DayOf(c.endDate.Time), endClock,
	)
}

// putInterval adds the four interval columns to args under the names
// start_date, start_time, end_date, end_time.
func putInterval(args pgx.NamedArgs, iv schedule.Interval) {
	args["start_date"] = dateArg(iv.StartDay())
	args["start_time"] = timeArg(iv.StartClock())
	args["end_date"] = dateArg(iv.EndDay())
	args["end_time"] = timeArg(iv.EndClock())
}

func dateArg(d schedule.Day) pgtype.Date {
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func timeArg(c schedule.Clock) pgtype.Time {
	return pgtype.Time{
		Microseconds: (time.Duration(c.Minutes()) * time.Minute).Microseconds(),
		Valid:        true,
	}
}

func clockFromTime(t pgtype.Time) (schedule.Clock, error) {
	if !t.Valid {
		return schedule.Clock{}, fmt.Errorf("interval: null time")
	}
	minutes := int(time.Duration(t.Microseconds) * time.Microsecond / time.Minute)
	return schedule.NewClock(minutes/60, minutes%60)
}
