package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/draft"
	"github.com/tripplanner/backend/internal/recur"
	"github.com/tripplanner/backend/internal/schedule"
)

// CalendarService answers the read-side questions of a trip's schedule:
// which days it has, what happens on each day, and whether a proposed time
// is free. Recurring events are expanded into occurrences first.
type CalendarService struct {
	trips  tripGetter
	events eventLister
}

// tripGetter and eventLister are the slices of repo.TripRepo and
// repo.EventRepo the calendar needs.
type tripGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

type eventLister interface {
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Event, error)
}

// NewCalendarService constructs a CalendarService.
func NewCalendarService(trips tripGetter, events eventLister) *CalendarService {
	return &CalendarService{trips: trips, events: events}
}

// Days returns every calendar day of the trip in order.
func (s *CalendarService) Days(ctx context.Context, tripID uuid.UUID) ([]schedule.Day, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.CalendarService.Days: %w", err)
	}
	return schedule.AllDays(trip.Window), nil
}

// Agenda returns the occurrences shown on day, each with its position on
// that day's timeline, ordered by start minute and then by name.
// Returns domain.ErrValidation if day is not one of the trip's days.
func (s *CalendarService) Agenda(ctx context.Context, tripID uuid.UUID, day schedule.Day) (domain.DayAgenda, error) {
	trip, occs, err := s.load(ctx, tripID)
	if err != nil {
		return domain.DayAgenda{}, fmt.Errorf("service.CalendarService.Agenda: %w", err)
	}
	if !trip.HasDay(day) {
		return domain.DayAgenda{}, fmt.Errorf("service.CalendarService.Agenda: %w: %s is not a day of trip %q",
			domain.ErrValidation, day, trip.Name)
	}
	return agendaFor(day, occs), nil
}

// Overview returns one agenda per trip day, in day order. Days without
// events are included with no entries.
func (s *CalendarService) Overview(ctx context.Context, tripID uuid.UUID) ([]domain.DayAgenda, error) {
	trip, occs, err := s.load(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.CalendarService.Overview: %w", err)
	}
	out := []domain.DayAgenda{}
	for d := range schedule.Days(trip.Window) {
		out = append(out, agendaFor(d, occs))
	}
	return out, nil
}

// CheckConflict reports the first occurrence of the trip's events that a new
// event spanning proposed would overlap. The event with ID exclude is skipped,
// so an edit can be checked against everything but itself; pass uuid.Nil to
// check against all events. It returns nil when the slot is free.
func (s *CalendarService) CheckConflict(ctx context.Context, tripID uuid.UUID, proposed schedule.Interval, exclude uuid.UUID) (*domain.Occurrence, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.CalendarService.CheckConflict: %w", err)
	}
	events, err := s.events.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.CalendarService.CheckConflict: %w", err)
	}
	events = slices.DeleteFunc(events, func(ev domain.Event) bool {
		return exclude != uuid.Nil && ev.ID == exclude
	})

	existing, err := recur.ExpandAll(events, trip.Window)
	if err != nil {
		return nil, fmt.Errorf("service.CalendarService.CheckConflict: %w", err)
	}
	candidate := []domain.Occurrence{{When: proposed}}
	if _, hit, ok := draft.FirstConflict(candidate, existing); ok {
		return &hit, nil
	}
	return nil, nil
}

func (s *CalendarService) load(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.Occurrence, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, err
	}
	events, err := s.events.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, err
	}
	occs, err := recur.ExpandAll(events, trip.Window)
	if err != nil {
		return domain.Trip{}, nil, err
	}
	return trip, occs, nil
}

func agendaFor(day schedule.Day, occs []domain.Occurrence) domain.DayAgenda {
	agenda := domain.DayAgenda{Day: day, Entries: []domain.AgendaEntry{}}
	for _, o := range occs {
		if !schedule.IntersectsDay(o.When, day) {
			continue
		}
		agenda.Entries = append(agenda.Entries, domain.AgendaEntry{
			Occurrence: o,
			Window:     schedule.WindowForDay(o.When, day),
		})
	}
	slices.SortStableFunc(agenda.Entries, func(a, b domain.AgendaEntry) int {
		return cmp.Or(
			cmp.Compare(a.Window.StartMinute, b.Window.StartMinute),
			strings.Compare(a.Event.Name, b.Event.Name),
		)
	})
	return agenda
}
