package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/schedule"
)

// CreateEvent handles POST /trips/{tripId}/events.
// Dates outside the trip are clamped to its nearest day; an overlap with
// another event of the trip is rejected with 409.
func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		badParam(w, err)
		return
	}
	var body EventRequest
	if !decodeBody(w, r, &body) {
		return
	}
	ev, err := requestToEvent(body)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, invalidBody(err.Error()))
		return
	}
	ev.TripID = tripID

	created, err := s.events.Create(r.Context(), ev)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, eventToResponse(created))
}

// ListEvents handles GET /trips/{tripId}/events.
// Supports ?page= and ?limit= query parameters.
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		badParam(w, err)
		return
	}
	params, err := paginationParams(r)
	if err != nil {
		badParam(w, err)
		return
	}
	events, total, err := s.events.ListByTripIDPaged(r.Context(), tripID, params)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}

	data := make([]Event, len(events))
	for i, ev := range events {
		data[i] = eventToResponse(ev)
	}
	writeJSON(w, http.StatusOK, EventList{Data: data, Pagination: toPagination(params, total)})
}

// GetEvent handles GET /trips/{tripId}/events/{eventId}.
func (s *Server) GetEvent(w http.ResponseWriter, r *http.Request) {
	tripID, eventID, ok := eventPath(w, r)
	if !ok {
		return
	}
	ev, err := s.events.GetByID(r.Context(), tripID, eventID)
	if err != nil {
		s.writeError(w, r, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, eventToResponse(ev))
}

// UpdateEvent handles PUT /trips/{tripId}/events/{eventId}.
func (s *Server) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	tripID, eventID, ok := eventPath(w, r)
	if !ok {
		return
	}
	var body EventRequest
	if !decodeBody(w, r, &body) {
		return
	}
	ev, err := requestToEvent(body)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, invalidBody(err.Error()))
		return
	}
	ev.ID, ev.TripID = eventID, tripID

	updated, err := s.events.Update(r.Context(), ev)
	if err != nil {
		s.writeError(w, r, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, eventToResponse(updated))
}

// DeleteEvent handles DELETE /trips/{tripId}/events/{eventId}.
func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	tripID, eventID, ok := eventPath(w, r)
	if !ok {
		return
	}
	if err := s.events.Delete(r.Context(), tripID, eventID); err != nil {
		s.writeError(w, r, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// eventPath binds the tripId and eventId path parameters, writing a 400 if
// either is malformed.
func eventPath(w http.ResponseWriter, r *http.Request) (tripID, eventID uuid.UUID, ok bool) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		badParam(w, err)
		return tripID, eventID, false
	}
	eventID, err = pathUUID(r, "eventId")
	if err != nil {
		badParam(w, err)
		return tripID, eventID, false
	}
	return tripID, eventID, true
}

// requestToEvent converts an EventRequest into a domain.Event. Only the
// shape of the interval is checked here; the service clamps it into the trip.
func requestToEvent(body EventRequest) (domain.Event, error) {
	if body.StartDate.Time.IsZero() {
		return domain.Event{}, errors.New("start_date is required")
	}
	if body.EndDate.Time.IsZero() {
		return domain.Event{}, errors.New("end_date is required")
	}
	when, err := schedule.NewInterval(fromDate(body.StartDate), body.StartTime, fromDate(body.EndDate), body.EndTime)
	if err != nil {
		return domain.Event{}, err
	}
	return domain.Event{
		Name:       body.Name,
		Location:   deref(body.Location),
		Notes:      deref(body.Notes),
		When:       when,
		Recurrence: deref(body.Recurrence),
	}, nil
}

func eventToResponse(ev domain.Event) Event {
	return Event{
		Id:         ev.ID,
		TripId:     ev.TripID,
		Name:       ev.Name,
		Location:   optional(ev.Location),
		Notes:      optional(ev.Notes),
		StartDate:  toDate(ev.When.StartDay()),
		StartTime:  ev.When.StartClock(),
		EndDate:    toDate(ev.When.EndDay()),
		EndTime:    ev.When.EndClock(),
		Recurrence: optional(ev.Recurrence),
		CreatedAt:  ev.CreatedAt,
		UpdatedAt:  ev.UpdatedAt,
	}
}
