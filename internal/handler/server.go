// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, event.go, etc.) but share the same Server struct
// so they can access its dependencies. Routes wires them onto a chi router
// following spec/openapi.yaml.
package handler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/schedule"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventServicer defines the event and event-tag operations.
type EventServicer interface {
	Create(ctx context.Context, ev domain.Event) (domain.Event, error)
	GetByID(ctx context.Context, tripID, eventID uuid.UUID) (domain.Event, error)
	ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Event, int64, error)
	Update(ctx context.Context, ev domain.Event) (domain.Event, error)
	Delete(ctx context.Context, tripID, eventID uuid.UUID) error
	AddTag(ctx context.Context, tripID, eventID uuid.UUID, tagName string) (domain.Tag, error)
	RemoveTagFromEvent(ctx context.Context, tripID, eventID uuid.UUID, slug string) error
	ListTagsByEvent(ctx context.Context, tripID, eventID uuid.UUID) ([]domain.Tag, error)
}

// TagServicer defines the global tag operations.
type TagServicer interface {
	UpsertByName(ctx context.Context, name string) (domain.Tag, error)
	ListPaged(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error)
}

// CalendarServicer defines the read-only day and agenda views of a trip.
type CalendarServicer interface {
	Days(ctx context.Context, tripID uuid.UUID) ([]schedule.Day, error)
	Agenda(ctx context.Context, tripID uuid.UUID, day schedule.Day) (domain.DayAgenda, error)
	Overview(ctx context.Context, tripID uuid.UUID) ([]domain.DayAgenda, error)
	CheckConflict(ctx context.Context, tripID uuid.UUID, proposed schedule.Interval, exclude uuid.UUID) (*domain.Occurrence, error)
}

// ExportServicer defines the export operations.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
	Calendar(ctx context.Context, tripID uuid.UUID) (string, error)
}

// Server holds the services behind every endpoint.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips    TripServicer
	events   EventServicer
	tags     TagServicer
	calendar CalendarServicer
	export   ExportServicer
	log      *slog.Logger
}

// Services groups the dependencies of a Server. Tests leave unused fields nil.
type Services struct {
	Trips    TripServicer
	Events   EventServicer
	Tags     TagServicer
	Calendar CalendarServicer
	Export   ExportServicer
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		trips:    svc.Trips,
		events:   svc.Events,
		tags:     svc.Tags,
		calendar: svc.Calendar,
		export:   svc.Export,
		log:      log,
	}
}
