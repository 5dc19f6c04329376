package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/schedule"
)

// ListTripDays handles GET /trips/{tripId}/days.
// It returns every calendar day the trip touches, first to last.
func (s *Server) ListTripDays(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		badParam(w, err)
		return
	}
	days, err := s.calendar.Days(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	if days == nil {
		days = []schedule.Day{}
	}
	writeJSON(w, http.StatusOK, days)
}

// GetDayAgenda handles GET /trips/{tripId}/days/{day}.
// A day outside the trip is rejected with 422.
func (s *Server) GetDayAgenda(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		badParam(w, err)
		return
	}
	day, err := pathDay(r, "day")
	if err != nil {
		badParam(w, err)
		return
	}
	agenda, err := s.calendar.Agenda(r.Context(), tripID, day)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, agendaToResponse(agenda))
}

// GetTripCalendar handles GET /trips/{tripId}/calendar: one agenda per day
// of the trip, recurring events expanded.
func (s *Server) GetTripCalendar(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		badParam(w, err)
		return
	}
	agendas, err := s.calendar.Overview(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	out := make([]DayAgenda, len(agendas))
	for i, a := range agendas {
		out[i] = agendaToResponse(a)
	}
	writeJSON(w, http.StatusOK, out)
}

// CheckConflict handles POST /trips/{tripId}/conflicts. It reports the first
// existing occurrence the proposed slot would overlap, without saving
// anything.
func (s *Server) CheckConflict(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		badParam(w, err)
		return
	}
	var body ConflictRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.StartDate.Time.IsZero() || body.EndDate.Time.IsZero() {
		writeJSON(w, http.StatusUnprocessableEntity, invalidBody("start_date and end_date are required"))
		return
	}
	proposed, err := schedule.NewInterval(fromDate(body.StartDate), body.StartTime, fromDate(body.EndDate), body.EndTime)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, invalidBody(err.Error()))
		return
	}
	exclude := uuid.Nil
	if body.ExcludeEventId != nil {
		exclude = *body.ExcludeEventId
	}

	hit, err := s.calendar.CheckConflict(r.Context(), tripID, proposed, exclude)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	resp := ConflictResponse{}
	if hit != nil {
		occ := occurrenceToResponse(*hit)
		resp = ConflictResponse{Conflict: true, With: &occ}
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetTripFeed handles GET /trips/{tripId}/calendar.ics and returns the trip
// as an iCalendar feed that calendar apps can import.
func (s *Server) GetTripFeed(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		badParam(w, err)
		return
	}
	feed, err := s.export.Calendar(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%s.ics"`, tripID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(feed))
}

func occurrenceToResponse(o domain.Occurrence) Occurrence {
	return Occurrence{
		EventId:   o.Event.ID,
		Name:      o.Event.Name,
		StartDate: toDate(o.When.StartDay()),
		StartTime: o.When.StartClock(),
		EndDate:   toDate(o.When.EndDay()),
		EndTime:   o.When.EndClock(),
	}
}

func agendaToResponse(a domain.DayAgenda) DayAgenda {
	entries := make([]AgendaEntry, len(a.Entries))
	for i, e := range a.Entries {
		entries[i] = AgendaEntry{
			Occurrence:      occurrenceToResponse(e.Occurrence),
			Location:        optional(e.Event.Location),
			Recurring:       e.Event.IsRecurring(),
			StartMinute:     e.Window.StartMinute,
			DurationMinutes: e.Window.DurationMinutes,
		}
	}
	return DayAgenda{Date: toDate(a.Day), Entries: entries}
}
