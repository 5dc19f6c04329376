// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/draft"
	"github.com/tripplanner/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
// It also holds the events repo because changing a trip's window moves the
// trip's events back inside it.
type TripService struct {
	trips  repo.TripRepo
	events repo.EventRepo
	log    *slog.Logger
}

// NewTripService constructs a TripService. A nil logger falls back to
// slog.Default().
func NewTripService(trips repo.TripRepo, events repo.EventRepo, log *slog.Logger) *TripService {
	if log == nil {
		log = slog.Default()
	}
	return &TripService{trips: trips, events: events, log: log}
}

// Create validates and persists a new trip.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListPaged returns one page of trips and the total count.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists changes to a trip, then moves any event
// whose dates fall outside the new window back inside it. Times of day are
// kept; an event that no longer fits collapses to a zero-length interval at
// its start.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	events, err := s.events.ListByTripID(ctx, result.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: list events: %w", err)
	}

	var moved []domain.Event
	for _, ev := range events {
		fitted, changed := draft.Fit(result, ev)
		if !changed {
			continue
		}
		s.log.InfoContext(ctx, "event moved into trip window",
			"trip_id", result.ID,
			"event_id", ev.ID,
			"from", ev.When.String(),
			"to", fitted.When.String(),
		)
		moved = append(moved, fitted)
	}
	if err := s.events.UpdateWindows(ctx, moved); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: move events: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID. Its events go with it.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - The window must be set. Its start not being after its end is already
//     guaranteed by schedule.NewInterval.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.Window.IsZero() {
		return fmt.Errorf("%w: start and end are required", domain.ErrValidation)
	}
	return nil
}
