package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strings"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/schedule"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_start_date", "trip_end_date",
	"event_name", "event_location",
	"event_start_date", "event_start_time", "event_end_date", "event_end_time",
	"event_recurrence", "event_notes", "tags",
}

// GetExport handles GET /export.
// It returns a flat table of every trip, event, and tag combination.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := queryParam(r, "format", &format); err != nil {
		badParam(w, err)
		return
	}
	wantCSV := false
	switch deref(format) {
	case "", "json":
	case "csv":
		wantCSV = true
	default:
		writeJSON(w, http.StatusBadRequest, requestBody("format must be json or csv"))
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err, "not found")
		return
	}

	if wantCSV {
		writeCSV(w, rows)
		return
	}
	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes domain rows as CSV.
// Tags within a row are pipe-separated ("|") to keep each event on a single CSV line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="export.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// domainRowToResponse maps a domain.ExportRow to the JSON response type.
// Fields that are empty strings become nil pointers (omitempty in JSON).
func domainRowToResponse(r domain.ExportRow) ExportRow {
	tripID, _ := uuid.Parse(r.TripID)
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return ExportRow{
		TripId:          tripID,
		TripName:        r.TripName,
		TripStartDate:   mustParseDate(r.TripStartDate),
		TripEndDate:     mustParseDate(r.TripEndDate),
		EventName:       optional(r.EventName),
		EventLocation:   optional(r.EventLocation),
		EventStartDate:  optional(r.EventStartDate),
		EventStartTime:  optional(r.EventStartTime),
		EventEndDate:    optional(r.EventEndDate),
		EventEndTime:    optional(r.EventEndTime),
		EventRecurrence: optional(r.EventRecurrence),
		EventNotes:      optional(r.EventNotes),
		Tags:            tags,
	}
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Tags are joined with "|".
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.TripName,
		r.TripStartDate,
		r.TripEndDate,
		r.EventName,
		r.EventLocation,
		r.EventStartDate,
		r.EventStartTime,
		r.EventEndDate,
		r.EventEndTime,
		r.EventRecurrence,
		r.EventNotes,
		strings.Join(r.Tags, "|"),
	}
}

// mustParseDate parses a "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers are expected to pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	d, err := schedule.ParseDay(s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return toDate(d)
}
