package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/handler"
	"github.com/tripplanner/backend/internal/schedule"
)

// Test doubles for the handler's servicer interfaces.
// Set only the method fields your test needs.

type mockTripServicer struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockEventServicer struct {
	create            func(ctx context.Context, ev domain.Event) (domain.Event, error)
	getByID           func(ctx context.Context, tripID, eventID uuid.UUID) (domain.Event, error)
	listByTripIDPaged func(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Event, int64, error)
	update            func(ctx context.Context, ev domain.Event) (domain.Event, error)
	delete            func(ctx context.Context, tripID, eventID uuid.UUID) error
	addTag            func(ctx context.Context, tripID, eventID uuid.UUID, name string) (domain.Tag, error)
	removeTag         func(ctx context.Context, tripID, eventID uuid.UUID, slug string) error
	listTags          func(ctx context.Context, tripID, eventID uuid.UUID) ([]domain.Tag, error)
}

func (m *mockEventServicer) Create(ctx context.Context, ev domain.Event) (domain.Event, error) {
	return m.create(ctx, ev)
}
func (m *mockEventServicer) GetByID(ctx context.Context, tripID, eventID uuid.UUID) (domain.Event, error) {
	return m.getByID(ctx, tripID, eventID)
}
func (m *mockEventServicer) ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Event, int64, error) {
	return m.listByTripIDPaged(ctx, tripID, p)
}
func (m *mockEventServicer) Update(ctx context.Context, ev domain.Event) (domain.Event, error) {
	return m.update(ctx, ev)
}
func (m *mockEventServicer) Delete(ctx context.Context, tripID, eventID uuid.UUID) error {
	return m.delete(ctx, tripID, eventID)
}
func (m *mockEventServicer) AddTag(ctx context.Context, tripID, eventID uuid.UUID, name string) (domain.Tag, error) {
	return m.addTag(ctx, tripID, eventID, name)
}
func (m *mockEventServicer) RemoveTagFromEvent(ctx context.Context, tripID, eventID uuid.UUID, slug string) error {
	return m.removeTag(ctx, tripID, eventID, slug)
}
func (m *mockEventServicer) ListTagsByEvent(ctx context.Context, tripID, eventID uuid.UUID) ([]domain.Tag, error) {
	return m.listTags(ctx, tripID, eventID)
}

type mockTagServicer struct {
	upsert    func(ctx context.Context, name string) (domain.Tag, error)
	listPaged func(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error)
}

func (m *mockTagServicer) UpsertByName(ctx context.Context, name string) (domain.Tag, error) {
	return m.upsert(ctx, name)
}
func (m *mockTagServicer) ListPaged(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	return m.listPaged(ctx, prefix, p)
}

type mockCalendarServicer struct {
	days          func(ctx context.Context, tripID uuid.UUID) ([]schedule.Day, error)
	agenda        func(ctx context.Context, tripID uuid.UUID, day schedule.Day) (domain.DayAgenda, error)
	overview      func(ctx context.Context, tripID uuid.UUID) ([]domain.DayAgenda, error)
	checkConflict func(ctx context.Context, tripID uuid.UUID, proposed schedule.Interval, exclude uuid.UUID) (*domain.Occurrence, error)
}

func (m *mockCalendarServicer) Days(ctx context.Context, tripID uuid.UUID) ([]schedule.Day, error) {
	return m.days(ctx, tripID)
}
func (m *mockCalendarServicer) Agenda(ctx context.Context, tripID uuid.UUID, day schedule.Day) (domain.DayAgenda, error) {
	return m.agenda(ctx, tripID, day)
}
func (m *mockCalendarServicer) Overview(ctx context.Context, tripID uuid.UUID) ([]domain.DayAgenda, error) {
	return m.overview(ctx, tripID)
}
func (m *mockCalendarServicer) CheckConflict(ctx context.Context, tripID uuid.UUID, proposed schedule.Interval, exclude uuid.UUID) (*domain.Occurrence, error) {
	return m.checkConflict(ctx, tripID, proposed, exclude)
}

type mockExportServicer struct {
	export   func(ctx context.Context) ([]domain.ExportRow, error)
	calendar func(ctx context.Context, tripID uuid.UUID) (string, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}
func (m *mockExportServicer) Calendar(ctx context.Context, tripID uuid.UUID) (string, error) {
	return m.calendar(ctx, tripID)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer     = (*mockTripServicer)(nil)
	_ handler.EventServicer    = (*mockEventServicer)(nil)
	_ handler.TagServicer      = (*mockTagServicer)(nil)
	_ handler.CalendarServicer = (*mockCalendarServicer)(nil)
	_ handler.ExportServicer   = (*mockExportServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into its router.
// This mirrors how main.go wires it in production, minus middleware.
func newHTTPHandler(svc handler.Services) http.Handler {
	return handler.NewServer(svc, nil).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body *bytes.Buffer) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func clock(t *testing.T, s string) schedule.Clock {
	t.Helper()
	c, err := schedule.ParseClock(s)
	require.NoError(t, err)
	return c
}

func span(t *testing.T, startDay, startClock, endDay, endClock string) schedule.Interval {
	t.Helper()
	sd, err := schedule.ParseDay(startDay)
	require.NoError(t, err)
	ed, err := schedule.ParseDay(endDay)
	require.NoError(t, err)
	iv, err := schedule.NewInterval(sd, clock(t, startClock), ed, clock(t, endClock))
	require.NoError(t, err)
	return iv
}

func tripFixture(t *testing.T) domain.Trip {
	t.Helper()
	return domain.Trip{
		ID:          uuid.New(),
		Name:        "Lisbon Long Weekend",
		Destination: "Lisbon",
		Notes:       "test notes",
		Window:      span(t, "2025-06-01", "00:00", "2025-06-04", "23:59"),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func eventFixture(t *testing.T, tripID uuid.UUID) domain.Event {
	t.Helper()
	return domain.Event{
		ID:        uuid.New(),
		TripID:    tripID,
		Name:      "Tram 28",
		Location:  "Martim Moniz",
		When:      span(t, "2025-06-02", "09:00", "2025-06-02", "10:30"),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func tagFixture() domain.Tag {
	return domain.Tag{
		ID:        uuid.New(),
		Name:      "Food Tour",
		Slug:      "food-tour",
		CreatedAt: time.Now().UTC(),
	}
}
