package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/recur"
	"github.com/tripplanner/backend/internal/repo"
	"github.com/tripplanner/backend/internal/schedule"
)

// ProductID identifies this service in generated iCalendar feeds.
const ProductID = "-//tripplanner//trip calendar//EN"

// floatingLayout is an iCalendar DATE-TIME with no zone suffix. Trip and
// event times are local to wherever the trip happens, so clients show them
// unshifted.
const floatingLayout = "20060102T150405"

// ExportService assembles the flat data export and per-trip calendar feeds.
type ExportService struct {
	trips  repo.TripRepo
	events repo.EventRepo
	tags   repo.TagRepo
	now    func() time.Time
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, events repo.EventRepo, tags repo.TagRepo) *ExportService {
	return &ExportService{trips: trips, events: events, tags: tags, now: time.Now}
}

// Export returns one ExportRow per event across all trips.
// Trips with no events contribute one row with empty event fields.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, trip := range trips {
		events, err := s.events.ListByTripID(ctx, trip.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: trip %s: %w", trip.ID, err)
		}

		base := domain.ExportRow{
			TripID:        trip.ID.String(),
			TripName:      trip.Name,
			TripStartDate: trip.FirstDay().String(),
			TripEndDate:   trip.LastDay().String(),
		}
		if len(events) == 0 {
			base.Tags = []string{}
			rows = append(rows, base)
			continue
		}

		slugs, err := s.tags.SlugsByTrip(ctx, trip.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: trip %s: %w", trip.ID, err)
		}
		for _, ev := range events {
			row := base
			row.EventName = ev.Name
			row.EventLocation = ev.Location
			row.EventStartDate = ev.When.StartDay().String()
			row.EventStartTime = ev.When.StartClock().String()
			row.EventEndDate = ev.When.EndDay().String()
			row.EventEndTime = ev.When.EndClock().String()
			row.EventRecurrence = ev.Recurrence
			row.EventNotes = ev.Notes
			row.Tags = slugs[ev.ID]
			if row.Tags == nil {
				row.Tags = []string{}
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// Calendar renders a trip and its events as an iCalendar document.
// Each event becomes one VEVENT; recurring events carry their RRULE rather
// than being expanded. Event times are written as floating local times;
// the DTSTAMP, CREATED and LAST-MODIFIED stamps stay in UTC.
func (s *ExportService) Calendar(ctx context.Context, tripID uuid.UUID) (string, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return "", fmt.Errorf("service.ExportService.Calendar: %w", err)
	}
	events, err := s.events.ListByTripID(ctx, tripID)
	if err != nil {
		return "", fmt.Errorf("service.ExportService.Calendar: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(trip.Name)
	if trip.Destination != "" {
		cal.SetXWRCalDesc(trip.Destination)
	}

	stamp := s.now().UTC()
	for _, ev := range events {
		vev := cal.AddEvent(eventUID(ev))
		vev.SetDtStampTime(stamp)
		if !ev.CreatedAt.IsZero() {
			vev.SetCreatedTime(ev.CreatedAt)
		}
		if !ev.UpdatedAt.IsZero() {
			vev.SetModifiedAt(ev.UpdatedAt)
		}
		vev.SetProperty(ics.ComponentPropertyDtStart, ev.When.Start().Format(floatingLayout))
		vev.SetProperty(ics.ComponentPropertyDtEnd, endForFeed(ev.When).Format(floatingLayout))
		vev.SetSummary(ev.Name)
		if ev.Location != "" {
			vev.SetLocation(ev.Location)
		}
		if ev.Notes != "" {
			vev.SetDescription(ev.Notes)
		}
		if ev.IsRecurring() {
			vev.AddProperty(ics.ComponentPropertyRrule, recur.Normalize(ev.Recurrence))
		}
	}
	return cal.Serialize(), nil
}

func eventUID(ev domain.Event) string {
	return ev.ID.String() + "@tripplanner"
}

// endForFeed returns the DTEND for iv. A zero-length interval is written as
// one minute long so DTEND is always after DTSTART.
func endForFeed(iv schedule.Interval) time.Time {
	if iv.Duration() == 0 {
		return iv.Start().Add(time.Minute)
	}
	return iv.End()
}
