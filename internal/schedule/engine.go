package schedule

import (
	"fmt"
	"iter"
	"slices"
)

// Overlaps reports whether a and b share any span of time.
// Intervals are treated as half-open: an interval ending at 10:00 and one
// starting at 10:00 are back-to-back and do not overlap.
func Overlaps(a, b Interval) bool {
	return a.start() < b.end() && b.start() < a.end()
}

// ConflictsWith reports whether scheduling proposed would clash with
// existing. It applies the same half-open rule as Overlaps.
func ConflictsWith(existing, proposed Interval) bool {
	return Overlaps(existing, proposed)
}

// Contains reports whether inner lies entirely within outer.
func Contains(outer, inner Interval) bool {
	return outer.start() <= inner.start() && inner.end() <= outer.end()
}

// IntersectsDay reports whether iv occupies any part of d, that is the span
// [d 00:00, d+1 00:00). An interval ending exactly at midnight does not show on
// the day that starts at that midnight. A zero-length interval shows on the
// day containing its instant.
func IntersectsDay(iv Interval, d Day) bool {
	lo, hi := dayBounds(d)
	s, e := iv.start(), iv.end()
	if s == e {
		return lo <= s && s < hi
	}
	return s < hi && e > lo
}

// Window is the part of an interval drawn on a single day's timeline,
// measured in minutes from that day's midnight.
type Window struct {
	StartMinute     int
	DurationMinutes int
}

// EndMinute returns the minute at which the window stops.
func (w Window) EndMinute() int {
	return w.StartMinute + w.DurationMinutes
}

// WindowForDay clamps iv to d for rendering. A start on an earlier day becomes
// 00:00 and an end on a later day becomes 24:00 (minute 1440). The duration is
// always at least one minute so an entry never renders with zero height.
func WindowForDay(iv Interval, d Day) Window {
	lo, _ := dayBounds(d)
	start := min(max(iv.start()-lo, 0), MinutesPerDay)
	end := min(max(iv.end()-lo, 0), MinutesPerDay)
	return Window{
		StartMinute:     int(start),
		DurationMinutes: int(max(end-start, 1)),
	}
}

// ConstrainToBounds clamps date into [lowerBound, upperBound].
// It panics if lowerBound is after upperBound; bounds come from a trip window
// that has already been validated.
func ConstrainToBounds(date, lowerBound, upperBound Day) Day {
	if lowerBound.After(upperBound) {
		panic(fmt.Sprintf("schedule: lower bound %s is after upper bound %s", lowerBound, upperBound))
	}
	switch {
	case date.Before(lowerBound):
		return lowerBound
	case date.After(upperBound):
		return upperBound
	}
	return date
}

// Days yields every calendar date from iv's start day through its end day,
// inclusive and in ascending order. Each range over the sequence starts again
// from the first day.
func Days(iv Interval) iter.Seq[Day] {
	return func(yield func(Day) bool) {
		for d := iv.startDay; !d.After(iv.endDay); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// AllDays returns Days(iv) as a slice.
func AllDays(iv Interval) []Day {
	return slices.Collect(Days(iv))
}

func dayBounds(d Day) (lo, hi int64) {
	lo = d.ordinal() * MinutesPerDay
	return lo, lo + MinutesPerDay
}
