package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per event, with trip fields
// repeated for every event on that trip. Trips with no events yield one row
// with zero values for all event fields.
//
// Dates are "2006-01-02" and times "15:04". Tags are the event's tag slugs,
// ordered alphabetically.
type ExportRow struct {
	TripID        string
	TripName      string
	TripStartDate string
	TripEndDate   string

	EventName       string
	EventLocation   string
	EventStartDate  string
	EventStartTime  string
	EventEndDate    string
	EventEndTime    string
	EventRecurrence string
	EventNotes      string

	Tags []string
}
