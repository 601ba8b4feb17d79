package models

import "time"

// CalendarRef pairs a display name with its service identifier. The id is
// resolved per request and never cached.
type CalendarRef struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// EventSummary is the normalized record produced by list operations.
type EventSummary struct {
	ID           string `json:"id"`
	Summary      string `json:"summary"`
	StartDisplay string `json:"startDisplay"`
	Recurring    bool   `json:"recurring"`
}

// Window is a half-open time range [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// DeleteReport accounts for a best-effort batch deletion.
type DeleteReport struct {
	Attempted int
	Succeeded int
}

func (r DeleteReport) Failed() int {
	return r.Attempted - r.Succeeded
}
