package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a chi router serving every endpoint in spec/openapi.yaml.
// Cross-cutting middleware (request IDs, logging, CORS, limits) is applied by
// the caller so tests can exercise the bare handlers.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/tags", s.ListTags)
	r.Post("/tags", s.UpsertTag)
	r.Get("/export", s.GetExport)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)

		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Get("/days", s.ListTripDays)
			r.Get("/days/{day}", s.GetDayAgenda)
			r.Get("/calendar", s.GetTripCalendar)
			r.Get("/calendar.ics", s.GetTripFeed)
			r.Post("/conflicts", s.CheckConflict)

			r.Route("/events", func(r chi.Router) {
				r.Get("/", s.ListEvents)
				r.Post("/", s.CreateEvent)

				r.Route("/{eventId}", func(r chi.Router) {
					r.Get("/", s.GetEvent)
					r.Put("/", s.UpdateEvent)
					r.Delete("/", s.DeleteEvent)

					r.Get("/tags", s.ListTagsByEvent)
					r.Post("/tags", s.AddTagToEvent)
					r.Delete("/tags/{slug}", s.RemoveTagFromEvent)
				})
			})
		})
	})

	return r
}
