package handler

import (
	"errors"
	"net/http"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/schedule"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if !decodeBody(w, r, &body) {
		return
	}
	trip, err := requestToTrip(body)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, invalidBody(err.Error()))
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params, err := paginationParams(r)
	if err != nil {
		badParam(w, err)
		return
	}
	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}

	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{Data: data, Pagination: toPagination(params, total)})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		badParam(w, err)
		return
	}
	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripId}. Events falling outside the new
// window are moved inside it by the service.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		badParam(w, err)
		return
	}
	var body TripRequest
	if !decodeBody(w, r, &body) {
		return
	}
	trip, err := requestToTrip(body)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, invalidBody(err.Error()))
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripId}. The trip's events go with it.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		badParam(w, err)
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// lastMinute is the default end time of a trip's last day.
var lastMinute, _ = schedule.NewClock(23, 59)

// requestToTrip converts a TripRequest into a domain.Trip. Missing times
// default to the whole of the first and last day.
func requestToTrip(body TripRequest) (domain.Trip, error) {
	if body.StartDate.Time.IsZero() {
		return domain.Trip{}, errors.New("start_date is required")
	}
	if body.EndDate.Time.IsZero() {
		return domain.Trip{}, errors.New("end_date is required")
	}
	startClock, endClock := schedule.Midnight, lastMinute
	if body.StartTime != nil {
		startClock = *body.StartTime
	}
	if body.EndTime != nil {
		endClock = *body.EndTime
	}

	window, err := schedule.NewInterval(fromDate(body.StartDate), startClock, fromDate(body.EndDate), endClock)
	if err != nil {
		return domain.Trip{}, err
	}
	return domain.Trip{
		Name:        body.Name,
		Destination: deref(body.Destination),
		Notes:       deref(body.Notes),
		Window:      window,
	}, nil
}

func tripToResponse(t domain.Trip) Trip {
	return Trip{
		Id:          t.ID,
		Name:        t.Name,
		Destination: optional(t.Destination),
		Notes:       optional(t.Notes),
		StartDate:   toDate(t.Window.StartDay()),
		StartTime:   t.Window.StartClock(),
		EndDate:     toDate(t.Window.EndDay()),
		EndTime:     t.Window.EndClock(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
