package handler

import (
	"net/http"

	"github.com/tripplanner/backend/internal/domain"
)

// ListTags handles GET /tags.
// The optional ?q= query parameter filters tags by slug prefix.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	var q *string
	if err := queryParam(r, "q", &q); err != nil {
		badParam(w, err)
		return
	}
	params, err := paginationParams(r)
	if err != nil {
		badParam(w, err)
		return
	}

	tags, total, err := s.tags.ListPaged(r.Context(), deref(q), params)
	if err != nil {
		s.writeError(w, r, err, "tag not found")
		return
	}
	writeJSON(w, http.StatusOK, TagList{Data: tagsToResponse(tags), Pagination: toPagination(params, total)})
}

// UpsertTag handles POST /tags. A name whose slug already exists returns the
// existing tag unchanged.
func (s *Server) UpsertTag(w http.ResponseWriter, r *http.Request) {
	var body TagRequest
	if !decodeBody(w, r, &body) {
		return
	}
	tag, err := s.tags.UpsertByName(r.Context(), body.Name)
	if err != nil {
		s.writeError(w, r, err, "tag not found")
		return
	}
	writeJSON(w, http.StatusOK, tagToResponse(tag))
}

// ListTagsByEvent handles GET /trips/{tripId}/events/{eventId}/tags.
func (s *Server) ListTagsByEvent(w http.ResponseWriter, r *http.Request) {
	tripID, eventID, ok := eventPath(w, r)
	if !ok {
		return
	}
	tags, err := s.events.ListTagsByEvent(r.Context(), tripID, eventID)
	if err != nil {
		s.writeError(w, r, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, tagsToResponse(tags))
}

// AddTagToEvent handles POST /trips/{tripId}/events/{eventId}/tags.
// The tag is created on first use.
func (s *Server) AddTagToEvent(w http.ResponseWriter, r *http.Request) {
	tripID, eventID, ok := eventPath(w, r)
	if !ok {
		return
	}
	var body TagRequest
	if !decodeBody(w, r, &body) {
		return
	}
	tag, err := s.events.AddTag(r.Context(), tripID, eventID, body.Name)
	if err != nil {
		s.writeError(w, r, err, "event not found")
		return
	}
	writeJSON(w, http.StatusCreated, tagToResponse(tag))
}

// RemoveTagFromEvent handles DELETE /trips/{tripId}/events/{eventId}/tags/{slug}.
func (s *Server) RemoveTagFromEvent(w http.ResponseWriter, r *http.Request) {
	tripID, eventID, ok := eventPath(w, r)
	if !ok {
		return
	}
	var slug string
	if err := pathParam(r, "slug", &slug); err != nil {
		badParam(w, err)
		return
	}
	if err := s.events.RemoveTagFromEvent(r.Context(), tripID, eventID, slug); err != nil {
		s.writeError(w, r, err, "tag not linked to event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func tagToResponse(t domain.Tag) Tag {
	return Tag{
		Id:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: t.CreatedAt,
	}
}

// tagsToResponse always returns a non-nil slice so the JSON is [] not null.
func tagsToResponse(tags []domain.Tag) []Tag {
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = tagToResponse(t)
	}
	return out
}
