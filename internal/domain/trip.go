// Package domain contains the core data types for the trip planner.
// Apart from google/uuid it only depends on the schedule package, and it is
// imported by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/schedule"
)

// Trip is the top-level aggregate; events belong to a trip.
// Window is the overall span of the trip. Every event's dates are kept
// inside it.
type Trip struct {
	ID          uuid.UUID
	Name        string
	Destination string
	Notes       string
	Window      schedule.Interval
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FirstDay is the first calendar day of the trip.
func (t Trip) FirstDay() schedule.Day { return t.Window.StartDay() }

// LastDay is the last calendar day of the trip.
func (t Trip) LastDay() schedule.Day { return t.Window.EndDay() }

// HasDay reports whether d falls on one of the trip's days.
func (t Trip) HasDay(d schedule.Day) bool {
	return !d.Before(t.FirstDay()) && !d.After(t.LastDay())
}
