package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripplanner/backend/internal/schedule"
)

// Request and response bodies. Field names and JSON tags follow
// spec/openapi.yaml; dates are "2006-01-02" and times of day "15:04".

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripRequest is the body of POST /trips and PUT /trips/{tripId}.
// StartTime defaults to 00:00 and EndTime to 23:59.
type TripRequest struct {
	Name        string             `json:"name"`
	Destination *string            `json:"destination,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
	StartDate   openapi_types.Date `json:"start_date"`
	StartTime   *schedule.Clock    `json:"start_time,omitempty"`
	EndDate     openapi_types.Date `json:"end_date"`
	EndTime     *schedule.Clock    `json:"end_time,omitempty"`
}

type Trip struct {
	Id          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Destination *string            `json:"destination,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
	StartDate   openapi_types.Date `json:"start_date"`
	StartTime   schedule.Clock     `json:"start_time"`
	EndDate     openapi_types.Date `json:"end_date"`
	EndTime     schedule.Clock     `json:"end_time"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// EventRequest is the body of POST and PUT on events. Dates outside the
// trip are moved to its nearest day.
type EventRequest struct {
	Name       string             `json:"name"`
	Location   *string            `json:"location,omitempty"`
	Notes      *string            `json:"notes,omitempty"`
	StartDate  openapi_types.Date `json:"start_date"`
	StartTime  schedule.Clock     `json:"start_time"`
	EndDate    openapi_types.Date `json:"end_date"`
	EndTime    schedule.Clock     `json:"end_time"`
	Recurrence *string            `json:"recurrence,omitempty"`
}

type Event struct {
	Id         openapi_types.UUID `json:"id"`
	TripId     openapi_types.UUID `json:"trip_id"`
	Name       string             `json:"name"`
	Location   *string            `json:"location,omitempty"`
	Notes      *string            `json:"notes,omitempty"`
	StartDate  openapi_types.Date `json:"start_date"`
	StartTime  schedule.Clock     `json:"start_time"`
	EndDate    openapi_types.Date `json:"end_date"`
	EndTime    schedule.Clock     `json:"end_time"`
	Recurrence *string            `json:"recurrence,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type EventList struct {
	Data       []Event    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type TagRequest struct {
	Name string `json:"name"`
}

type Tag struct {
	Id        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	Slug      string             `json:"slug"`
	CreatedAt time.Time          `json:"created_at"`
}

type TagList struct {
	Data       []Tag      `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Occurrence is one concrete instance of an event.
type Occurrence struct {
	EventId   openapi_types.UUID `json:"event_id"`
	Name      string             `json:"name"`
	StartDate openapi_types.Date `json:"start_date"`
	StartTime schedule.Clock     `json:"start_time"`
	EndDate   openapi_types.Date `json:"end_date"`
	EndTime   schedule.Clock     `json:"end_time"`
}

// AgendaEntry places an occurrence on one day's timeline. StartMinute is
// minutes after midnight of that day.
type AgendaEntry struct {
	Occurrence
	Location        *string `json:"location,omitempty"`
	Recurring       bool    `json:"recurring"`
	StartMinute     int     `json:"start_minute"`
	DurationMinutes int     `json:"duration_minutes"`
}

type DayAgenda struct {
	Date    openapi_types.Date `json:"date"`
	Entries []AgendaEntry      `json:"entries"`
}

// ConflictRequest is the body of POST /trips/{tripId}/conflicts.
type ConflictRequest struct {
	StartDate      openapi_types.Date  `json:"start_date"`
	StartTime      schedule.Clock      `json:"start_time"`
	EndDate        openapi_types.Date  `json:"end_date"`
	EndTime        schedule.Clock      `json:"end_time"`
	ExcludeEventId *openapi_types.UUID `json:"exclude_event_id,omitempty"`
}

type ConflictResponse struct {
	Conflict bool        `json:"conflict"`
	With     *Occurrence `json:"with,omitempty"`
}

// ExportRow is one row of GET /export. Event fields are absent for a trip
// without events.
type ExportRow struct {
	TripId          openapi_types.UUID `json:"trip_id"`
	TripName        string             `json:"trip_name"`
	TripStartDate   openapi_types.Date `json:"trip_start_date"`
	TripEndDate     openapi_types.Date `json:"trip_end_date"`
	EventName       *string            `json:"event_name,omitempty"`
	EventLocation   *string            `json:"event_location,omitempty"`
	EventStartDate  *string            `json:"event_start_date,omitempty"`
	EventStartTime  *string            `json:"event_start_time,omitempty"`
	EventEndDate    *string            `json:"event_end_date,omitempty"`
	EventEndTime    *string            `json:"event_end_time,omitempty"`
	EventRecurrence *string            `json:"event_recurrence,omitempty"`
	EventNotes      *string            `json:"event_notes,omitempty"`
	Tags            []string           `json:"tags"`
}
