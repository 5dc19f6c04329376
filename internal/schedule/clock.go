package schedule

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
)

// ClockLayout is the text form of a Clock, e.g. "09:30".
const ClockLayout = "15:04"

// MinutesPerDay is the length of a calendar day on the timeline.
const MinutesPerDay = 24 * 60

// Clock is a time of day with minute precision, 00:00 through 23:59.
// The zero value is midnight. Seconds are always zero.
type Clock struct {
	tod datetime.TimeOfDay
}

// Midnight is 00:00.
var Midnight = Clock{}

// NewClock returns the Clock for hour and minute.
func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("invalid hour: %d", hour)
	}
	if minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("invalid minute: %d", minute)
	}
	return Clock{tod: datetime.NewTimeOfDay(hour, minute, 0)}, nil
}

// ClockOf returns the wall-clock time of t, truncated to the minute.
func ClockOf(t time.Time) Clock {
	return Clock{tod: datetime.NewTimeOfDay(t.Hour(), t.Minute(), 0)}
}

// ParseClock parses a time of day in ClockLayout form.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return ClockOf(t), nil
}

func (c Clock) Hour() int   { return c.tod.Hour() }
func (c Clock) Minute() int { return c.tod.Minute() }

// Minutes returns the number of minutes since midnight.
func (c Clock) Minutes() int { return c.Hour()*60 + c.Minute() }

// clockOfMinutes returns the Clock m minutes after midnight, 0 <= m < MinutesPerDay.
func clockOfMinutes(m int) Clock {
	return Clock{tod: datetime.NewTimeOfDay(m/60, m%60, 0)}
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
