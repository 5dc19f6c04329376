package schedule

import (
	"errors"
	"time"
)

// ErrInvalidInterval is returned when an interval's end instant is before its
// start instant.
var ErrInvalidInterval = errors.New("end must be after start")

// Interval is a span of time from a start date and time of day to an end
// date and time of day. The start instant is never after the end instant.
//
// An Interval is a value: it has no identity and cannot be changed once
// built. The With methods return a new Interval.
type Interval struct {
	startDay   Day
	startClock Clock
	endDay     Day
	endClock   Clock
}

// NewInterval builds an Interval, rejecting one whose end is before its start
// with ErrInvalidInterval. Equal start and end instants are allowed.
func NewInterval(startDay Day, startClock Clock, endDay Day, endClock Clock) (Interval, error) {
	iv := Interval{startDay: startDay, startClock: startClock, endDay: endDay, endClock: endClock}
	if iv.start() > iv.end() {
		return Interval{}, ErrInvalidInterval
	}
	return iv, nil
}

// IntervalOf builds an Interval from the wall-clock date and time of start
// and end. Seconds and below are dropped.
func IntervalOf(start, end time.Time) (Interval, error) {
	return NewInterval(DayOf(start), ClockOf(start), DayOf(end), ClockOf(end))
}

// AllDay returns the interval from 00:00 on first to 23:59 on last.
func AllDay(first, last Day) (Interval, error) {
	return NewInterval(first, Midnight, last, clockOfMinutes(MinutesPerDay - 1))
}

func (iv Interval) StartDay() Day     { return iv.startDay }
func (iv Interval) StartClock() Clock { return iv.startClock }
func (iv Interval) EndDay() Day       { return iv.endDay }
func (iv Interval) EndClock() Clock   { return iv.endClock }
func (iv Interval) IsZero() bool      { return iv == Interval{} }

// Start returns the start instant as a UTC wall-clock time.
func (iv Interval) Start() time.Time {
	return iv.startDay.Time().Add(time.Duration(iv.startClock.Minutes()) * time.Minute)
}

// End returns the end instant as a UTC wall-clock time.
func (iv Interval) End() time.Time {
	return iv.endDay.Time().Add(time.Duration(iv.endClock.Minutes()) * time.Minute)
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return time.Duration(iv.end()-iv.start()) * time.Minute
}

// WithDays returns a copy of iv moved onto new start and end days, keeping
// both times of day.
func (iv Interval) WithDays(startDay, endDay Day) (Interval, error) {
	return NewInterval(startDay, iv.startClock, endDay, iv.endClock)
}

// WithStart returns a copy of iv with a new start.
func (iv Interval) WithStart(day Day, clock Clock) (Interval, error) {
	return NewInterval(day, clock, iv.endDay, iv.endClock)
}

// WithEnd returns a copy of iv with a new end.
func (iv Interval) WithEnd(day Day, clock Clock) (Interval, error) {
	return NewInterval(iv.startDay, iv.startClock, day, clock)
}

func (iv Interval) String() string {
	return iv.startDay.String() + " " + iv.startClock.String() + "/" +
		iv.endDay.String() + " " + iv.endClock.String()
}

// start and end are the interval's instants in minutes since 1970-01-01 00:00.
func (iv Interval) start() int64 {
	return iv.startDay.ordinal()*MinutesPerDay + int64(iv.startClock.Minutes())
}

func (iv Interval) end() int64 {
	return iv.endDay.ordinal()*MinutesPerDay + int64(iv.endClock.Minutes())
}
