package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/schedule"
)

// Event is something scheduled during a trip: a tour, a flight, a dinner.
// When is the span of its first (or only) occurrence.
//
// Recurrence is an optional iCalendar RRULE such as "FREQ=DAILY;COUNT=3".
// Empty means the event happens once.
type Event struct {
	ID         uuid.UUID
	TripID     uuid.UUID
	Name       string
	Location   string
	Notes      string
	When       schedule.Interval
	Recurrence string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsRecurring reports whether the event repeats.
func (e Event) IsRecurring() bool { return e.Recurrence != "" }

// Occurrence is one concrete instance of an event. For a one-off event the
// only occurrence has When equal to Event.When.
type Occurrence struct {
	Event Event
	When  schedule.Interval
}

// AgendaEntry is an occurrence laid out on a single day's timeline.
type AgendaEntry struct {
	Occurrence
	Window schedule.Window
}

// DayAgenda is everything shown on one day of a trip, ordered by start minute.
type DayAgenda struct {
	Day     schedule.Day
	Entries []AgendaEntry
}
