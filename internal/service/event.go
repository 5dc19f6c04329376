package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/draft"
	"github.com/tripplanner/backend/internal/repo"
)

// EventService implements business logic for Event operations.
// It holds the trips repo because an event is always validated against its
// trip's window, and the tags repo because tag operations are scoped to an
// event.
type EventService struct {
	trips  repo.TripRepo
	events repo.EventRepo
	tags   repo.TagRepo
}

// NewEventService constructs an EventService backed by the provided repos.
func NewEventService(trips repo.TripRepo, events repo.EventRepo, tags repo.TagRepo) *EventService {
	return &EventService{trips: trips, events: events, tags: tags}
}

// Create checks ev against its trip through a draft and persists the result.
// The event's dates are clamped into the trip's days.
//
// Returns domain.ErrNotFound if the trip does not exist, domain.ErrValidation
// for invalid input and domain.ErrConflict if the event overlaps another
// event of the trip.
func (s *EventService) Create(ctx context.Context, ev domain.Event) (domain.Event, error) {
	ev.ID = uuid.Nil
	built, err := s.build(ctx, ev)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}
	result, err := s.events.Create(ctx, built)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single event, scoped to the given trip.
func (s *EventService) GetByID(ctx context.Context, tripID, eventID uuid.UUID) (domain.Event, error) {
	result, err := s.events.GetByID(ctx, tripID, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all events of a trip ordered by start.
// Always returns a non-nil slice so callers can safely range over it.
func (s *EventService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Event, error) {
	events, err := s.events.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.ListByTripID: %w", err)
	}
	if events == nil {
		return []domain.Event{}, nil
	}
	return events, nil
}

// ListByTripIDPaged returns one page of a trip's events and the total count.
func (s *EventService) ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Event, int64, error) {
	events, total, err := s.events.ListByTripIDPaged(ctx, tripID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.EventService.ListByTripIDPaged: %w", err)
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, total, nil
}

// Update applies the same checks as Create to an existing event. The event
// does not conflict with its own previous version.
func (s *EventService) Update(ctx context.Context, ev domain.Event) (domain.Event, error) {
	if _, err := s.events.GetByID(ctx, ev.TripID, ev.ID); err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}
	built, err := s.build(ctx, ev)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}
	result, err := s.events.Update(ctx, built)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an event, scoped to the given trip.
func (s *EventService) Delete(ctx context.Context, tripID, eventID uuid.UUID) error {
	if err := s.events.Delete(ctx, tripID, eventID); err != nil {
		return fmt.Errorf("service.EventService.Delete: %w", err)
	}
	return nil
}

// AddTag upserts a tag by name and links it to the event.
// Returns domain.ErrValidation if tagName is empty or normalizes to empty.
func (s *EventService) AddTag(ctx context.Context, tripID, eventID uuid.UUID, tagName string) (domain.Tag, error) {
	name, slug, err := tagSlug(tagName)
	if err != nil {
		return domain.Tag{}, err
	}
	if _, err := s.events.GetByID(ctx, tripID, eventID); err != nil {
		return domain.Tag{}, fmt.Errorf("service.EventService.AddTag: %w", err)
	}
	tag, err := s.tags.Upsert(ctx, name, slug)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.EventService.AddTag: %w", err)
	}
	if err := s.tags.AddToEvent(ctx, eventID, tag.ID); err != nil {
		return domain.Tag{}, fmt.Errorf("service.EventService.AddTag: %w", err)
	}
	return tag, nil
}

// RemoveTagFromEvent unlinks a tag from an event by slug.
// Returns domain.ErrNotFound if the event does not exist or the tag is not
// linked to it.
func (s *EventService) RemoveTagFromEvent(ctx context.Context, tripID, eventID uuid.UUID, slug string) error {
	if _, err := s.events.GetByID(ctx, tripID, eventID); err != nil {
		return fmt.Errorf("service.EventService.RemoveTagFromEvent: %w", err)
	}
	if err := s.tags.RemoveFromEvent(ctx, eventID, slug); err != nil {
		return fmt.Errorf("service.EventService.RemoveTagFromEvent: %w", err)
	}
	return nil
}

// ListTagsByEvent returns all tags linked to an event, ordered by slug.
// Always returns a non-nil slice.
func (s *EventService) ListTagsByEvent(ctx context.Context, tripID, eventID uuid.UUID) ([]domain.Tag, error) {
	if _, err := s.events.GetByID(ctx, tripID, eventID); err != nil {
		return nil, fmt.Errorf("service.EventService.ListTagsByEvent: %w", err)
	}
	tags, err := s.tags.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.ListTagsByEvent: %w", err)
	}
	if tags == nil {
		return []domain.Tag{}, nil
	}
	return tags, nil
}

// build loads the trip and its events and runs ev through a draft.
func (s *EventService) build(ctx context.Context, ev domain.Event) (domain.Event, error) {
	trip, err := s.trips.GetByID(ctx, ev.TripID)
	if err != nil {
		return domain.Event{}, err
	}
	existing, err := s.events.ListByTripID(ctx, trip.ID)
	if err != nil {
		return domain.Event{}, err
	}
	return draft.FromEvent(trip, ev).WithExisting(existing).Build()
}
