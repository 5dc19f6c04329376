// Package draft holds the state of an event while it is being created or
// edited, as an immutable snapshot. Every change goes through a With method
// that returns a new Draft, so a caller can keep, compare or discard
// snapshots freely.
//
// Dates are kept inside the trip's days as they are set, the same way the
// date pickers in the client are bounded. Build validates the result and
// checks it against the trip's other events.
package draft

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/recur"
	"github.com/tripplanner/backend/internal/schedule"
)

// Draft is one snapshot of an event form.
type Draft struct {
	trip     domain.Trip
	existing []domain.Event

	id         uuid.UUID
	name       string
	location   string
	notes      string
	recurrence string

	startDay   schedule.Day
	startClock schedule.Clock
	endDay     schedule.Day
	endClock   schedule.Clock
}

// New starts an empty draft for trip, on the trip's first day from 09:00 to
// 10:00.
func New(trip domain.Trip) Draft {
	nine, _ := schedule.NewClock(9, 0)
	ten, _ := schedule.NewClock(10, 0)
	return Draft{
		trip:       trip,
		startDay:   trip.FirstDay(),
		startClock: nine,
		endDay:     trip.FirstDay(),
		endClock:   ten,
	}
}

// FromEvent starts a draft pre-filled from ev, with its dates clamped into
// trip. When ev.ID is set, Build skips that event among the existing ones so
// an edit does not conflict with itself.
func FromEvent(trip domain.Trip, ev domain.Event) Draft {
	d := New(trip).
		WithName(ev.Name).
		WithLocation(ev.Location).
		WithNotes(ev.Notes).
		WithRecurrence(ev.Recurrence).
		WithStart(ev.When.StartDay(), ev.When.StartClock()).
		WithEnd(ev.When.EndDay(), ev.When.EndClock())
	d.id = ev.ID
	return d
}

func (d Draft) WithName(name string) Draft {
	d.name = name
	return d
}

func (d Draft) WithLocation(location string) Draft {
	d.location = location
	return d
}

func (d Draft) WithNotes(notes string) Draft {
	d.notes = notes
	return d
}

func (d Draft) WithRecurrence(rule string) Draft {
	d.recurrence = rule
	return d
}

// WithStart sets the start date and time. The date is clamped into the trip.
func (d Draft) WithStart(day schedule.Day, clock schedule.Clock) Draft {
	d.startDay = d.clamp(day)
	d.startClock = clock
	return d
}

// WithEnd sets the end date and time. The date is clamped into the trip.
func (d Draft) WithEnd(day schedule.Day, clock schedule.Clock) Draft {
	d.endDay = d.clamp(day)
	d.endClock = clock
	return d
}

// WithExisting sets the trip's current events, which Build checks for
// conflicts.
func (d Draft) WithExisting(existing []domain.Event) Draft {
	d.existing = existing
	return d
}

func (d Draft) StartDay() schedule.Day     { return d.startDay }
func (d Draft) StartClock() schedule.Clock { return d.startClock }
func (d Draft) EndDay() schedule.Day       { return d.endDay }
func (d Draft) EndClock() schedule.Clock   { return d.endClock }

// Build validates the draft and returns the event it describes.
//
// It returns an error wrapping domain.ErrValidation when the name is blank,
// the end is before the start, the event runs outside the trip's start or
// end time, or the recurrence rule is unusable. It returns one wrapping
// domain.ErrConflict naming the first existing event that any occurrence of
// the draft would overlap.
func (d Draft) Build() (domain.Event, error) {
	name := strings.TrimSpace(d.name)
	if name == "" {
		return domain.Event{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	when, err := schedule.NewInterval(d.startDay, d.startClock, d.endDay, d.endClock)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !d.trip.Window.IsZero() && !schedule.Contains(d.trip.Window, when) {
		return domain.Event{}, fmt.Errorf("%w: event must be within the trip (%s)", domain.ErrValidation, d.trip.Window)
	}

	ev := domain.Event{
		ID:         d.id,
		TripID:     d.trip.ID,
		Name:       name,
		Location:   strings.TrimSpace(d.location),
		Notes:      d.notes,
		When:       when,
		Recurrence: recur.Normalize(d.recurrence),
	}
	if ev.IsRecurring() {
		if err := recur.Validate(ev.Recurrence); err != nil {
			return domain.Event{}, err
		}
	}

	if err := d.checkConflicts(ev); err != nil {
		return domain.Event{}, err
	}
	return ev, nil
}

func (d Draft) checkConflicts(ev domain.Event) error {
	others := make([]domain.Event, 0, len(d.existing))
	for _, o := range d.existing {
		if d.id != uuid.Nil && o.ID == d.id {
			continue
		}
		others = append(others, o)
	}
	if len(others) == 0 {
		return nil
	}

	mine, err := recur.Expand(ev, d.trip.Window)
	if err != nil {
		return err
	}
	theirs, err := recur.ExpandAll(others, d.trip.Window)
	if err != nil {
		return err
	}

	if a, b, ok := FirstConflict(mine, theirs); ok {
		return fmt.Errorf("%w: overlaps %q on %s", domain.ErrConflict, b.Event.Name, a.When.StartDay())
	}
	return nil
}

// FirstConflict returns the first pair (one from proposed, one from existing)
// whose intervals conflict.
func FirstConflict(proposed, existing []domain.Occurrence) (domain.Occurrence, domain.Occurrence, bool) {
	for _, p := range proposed {
		for _, e := range existing {
			if schedule.ConflictsWith(e.When, p.When) {
				return p, e, true
			}
		}
	}
	return domain.Occurrence{}, domain.Occurrence{}, false
}

func (d Draft) clamp(day schedule.Day) schedule.Day {
	if d.trip.Window.IsZero() {
		return day
	}
	return schedule.ConstrainToBounds(day, d.trip.FirstDay(), d.trip.LastDay())
}

// Fit moves ev's dates into trip's days, keeping its times of day. If the
// clamped dates would put the end before the start, the event collapses to a
// zero-length interval at its start. The result is then trimmed to the trip's
// start and end times. It reports whether anything changed.
func Fit(trip domain.Trip, ev domain.Event) (domain.Event, bool) {
	lo, hi := trip.FirstDay(), trip.LastDay()
	startDay := schedule.ConstrainToBounds(ev.When.StartDay(), lo, hi)
	endDay := schedule.ConstrainToBounds(ev.When.EndDay(), lo, hi)

	when, err := ev.When.WithDays(startDay, endDay)
	if err != nil {
		when, _ = schedule.NewInterval(startDay, ev.When.StartClock(), startDay, ev.When.StartClock())
	}
	when = trim(when, trip.Window)
	if when == ev.When {
		return ev, false
	}
	ev.When = when
	return ev, true
}

// trim clamps both instants of iv into window. iv's days must already be
// window's days.
func trim(iv, window schedule.Interval) schedule.Interval {
	if schedule.Contains(window, iv) {
		return iv
	}
	lo, hi := window.Start(), window.End()
	clampTime := func(t time.Time) time.Time {
		switch {
		case t.Before(lo):
			return lo
		case t.After(hi):
			return hi
		}
		return t
	}
	trimmed, err := schedule.IntervalOf(clampTime(iv.Start()), clampTime(iv.End()))
	if err != nil {
		return iv
	}
	return trimmed
}
