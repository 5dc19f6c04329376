// Package schedule models the date/time spans that trips and events occupy
// and answers the questions the trip calendar asks about them: do two spans
// overlap, which calendar days does a span touch, and where does a span sit on
// a single day's timeline.
//
// Everything in this package is a pure function over immutable values. There
// is no I/O and no shared state, so it is safe to call from any goroutine.
package schedule

import (
	"cmp"
	"fmt"
	"time"

	"cloudeng.io/datetime"
)

// DayLayout is the text form of a Day, e.g. "2025-07-01".
const DayLayout = "2006-01-02"

// Day is a calendar date with no time-of-day component, held as a
// datetime.CalendarDate. It is the lookup key for "which events show on this
// day". Days are comparable with == and ordered with Compare.
type Day struct {
	cd datetime.CalendarDate
}

// NewDay returns the Day for year, month and day. Out-of-range values are
// normalized the same way time.Date normalizes them (e.g. June 31 is July 1).
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the calendar date of t in t's own location.
func DayOf(t time.Time) Day {
	return Day{cd: datetime.NewCalendarDate(t.Year(), datetime.Month(t.Month()), t.Day())}
}

// ParseDay parses a date in DayLayout form.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return DayOf(t), nil
}

func (d Day) Year() int             { return d.cd.Year() }
func (d Day) Month() time.Month     { return time.Month(d.cd.Month()) }
func (d Day) DayOfMonth() int       { return d.cd.Day() }
func (d Day) IsZero() bool          { return d == Day{} }
func (d Day) Weekday() time.Weekday { return d.Time().Weekday() }

// Time returns midnight UTC at the start of d.
func (d Day) Time() time.Time {
	return time.Date(d.Year(), d.Month(), d.DayOfMonth(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the day n days after d (before d when n is negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to
// or after o.
func (d Day) Compare(o Day) int {
	return cmp.Compare(d.ordinal(), o.ordinal())
}

func (d Day) Before(o Day) bool { return d.Compare(o) < 0 }
func (d Day) After(o Day) bool  { return d.Compare(o) > 0 }

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), int(d.Month()), d.DayOfMonth())
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	v, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ordinal is the number of days since 1970-01-01. Midnight UTC is always an
// exact multiple of a day in Unix time, so the division never truncates.
func (d Day) ordinal() int64 {
	return d.Time().Unix() / secondsPerDay
}

const secondsPerDay = 24 * 60 * 60
