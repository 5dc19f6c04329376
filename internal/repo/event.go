package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripplanner/backend/internal/domain"
)

// EventRepo defines the persistence operations for Events.
// Events are always scoped to a trip: every lookup takes both IDs so an event
// cannot be read or changed through another trip's URL.
type EventRepo interface {
	// Create inserts a new event and returns the persisted record.
	Create(ctx context.Context, ev domain.Event) (domain.Event, error)

	// GetByID retrieves an event by trip ID and event ID.
	// Returns domain.ErrNotFound if the event does not exist or belongs to
	// another trip.
	GetByID(ctx context.Context, tripID, eventID uuid.UUID) (domain.Event, error)

	// ListByTripID returns all events for a trip ordered by start.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Event, error)

	// ListByTripIDPaged returns one page of a trip's events and the total count.
	ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Event, int64, error)

	// Update overwrites the mutable fields of an event.
	// Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, ev domain.Event) (domain.Event, error)

	// Delete removes an event. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, tripID, eventID uuid.UUID) error

	// UpdateWindows rewrites only the start/end columns of the given events in
	// one round trip. Used when a trip is resized and its events are moved.
	UpdateWindows(ctx context.Context, events []domain.Event) error
}

type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

const eventColumns = `id, trip_id, name, location, notes, start_date, start_time, end_date, end_time, recurrence, created_at, updated_at`

const eventOrder = `ORDER BY start_date, start_time, name`

func (r *pgEventRepo) Create(ctx context.Context, ev domain.Event) (domain.Event, error) {
	const q = `
		INSERT INTO events (trip_id, name, location, notes, start_date, start_time, end_date, end_time, recurrence)
		VALUES (@trip_id, @name, @location, @notes, @start_date, @start_time, @end_date, @end_time, @recurrence)
		RETURNING ` + eventColumns

	args := pgx.NamedArgs{
		"trip_id":    ev.TripID,
		"name":       ev.Name,
		"location":   ev.Location,
		"notes":      ev.Notes,
		"recurrence": ev.Recurrence,
	}
	putInterval(args, ev.When)

	result, err := scanEvent(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) GetByID(ctx context.Context, tripID, eventID uuid.UUID) (domain.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = @id AND trip_id = @trip_id`

	result, err := scanEvent(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": eventID, "trip_id": tripID}))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE trip_id = @trip_id ` + eventOrder

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListByTripID: %w", err)
	}
	events, err := collectEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListByTripID: %w", err)
	}
	return events, nil
}

func (r *pgEventRepo) ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Event, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM events WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": tripID}).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventRepo.ListByTripIDPaged: count: %w", err)
	}

	const q = `
		SELECT ` + eventColumns + `
		FROM events
		WHERE trip_id = @trip_id
		` + eventOrder + `
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"trip_id": tripID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventRepo.ListByTripIDPaged: %w", err)
	}
	events, err := collectEvents(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventRepo.ListByTripIDPaged: %w", err)
	}
	return events, total, nil
}

func (r *pgEventRepo) Update(ctx context.Context, ev domain.Event) (domain.Event, error) {
	const q = `
		UPDATE events
		SET name       = @name,
		    location   = @location,
		    notes      = @notes,
		    start_date = @start_date,
		    start_time = @start_time,
		    end_date   = @end_date,
		    end_time   = @end_time,
		    recurrence = @recurrence,
		    updated_at = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + eventColumns

	args := pgx.NamedArgs{
		"id":         ev.ID,
		"trip_id":    ev.TripID,
		"name":       ev.Name,
		"location":   ev.Location,
		"notes":      ev.Notes,
		"recurrence": ev.Recurrence,
	}
	putInterval(args, ev.When)

	result, err := scanEvent(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) Delete(ctx context.Context, tripID, eventID uuid.UUID) error {
	const q = `DELETE FROM events WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": eventID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.EventRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EventRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// UpdateWindows queues one UPDATE per event on a pgx.Batch and sends them
// together. An event that no longer exists is reported as domain.ErrNotFound.
func (r *pgEventRepo) UpdateWindows(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	const q = `
		UPDATE events
		SET start_date = @start_date,
		    start_time = @start_time,
		    end_date   = @end_date,
		    end_time   = @end_time,
		    updated_at = now()
		WHERE id = @id AND trip_id = @trip_id`

	b := &pgx.Batch{}
	for _, ev := range events {
		args := pgx.NamedArgs{"id": ev.ID, "trip_id": ev.TripID}
		putInterval(args, ev.When)
		b.Queue(q, args)
	}

	br := r.db.SendBatch(ctx, b)
	defer br.Close()

	for _, ev := range events {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("repo.EventRepo.UpdateWindows: %s: %w", ev.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("repo.EventRepo.UpdateWindows: %s: %w", ev.ID, domain.ErrNotFound)
		}
	}
	return nil
}

func scanEvent(s scanner) (domain.Event, error) {
	var (
		e      domain.Event
		id     pgtype.UUID
		tripID pgtype.UUID
		iv     intervalColumns
	)

	err := s.Scan(&id, &tripID, &e.Name, &e.Location, &e.Notes,
		&iv.startDate, &iv.startTime, &iv.endDate, &iv.endTime,
		&e.Recurrence, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	if e.When, err = iv.interval(); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

func collectEvents(rows pgx.Rows) ([]domain.Event, error) {
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return events, nil
}
