package domain

import "time"

type EventID string

const (
	EventIDPrefix = "EVT-"
	DateLayout    = "2006-01-02"
	ClockLayout   = "15:04"
)

type Event struct {
	ID          EventID `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Date        string  `json:"date" yaml:"date"`
	StartTime   string  `json:"start_time" yaml:"start_time"`
	EndTime     string  `json:"end_time" yaml:"end_time"`
	Location    string  `json:"location" yaml:"location"`
	Description string  `json:"description" yaml:"description"`
	// NeedsReschedule is set when a conflict could not be resolved inside the work window.
	NeedsReschedule bool      `json:"needs_reschedule" yaml:"needs_reschedule"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// EventPatch carries a partial update. Nil fields are left untouched.
type EventPatch struct {
	Title           *string
	Date            *string
	StartTime       *string
	EndTime         *string
	Location        *string
	Description     *string
	NeedsReschedule *bool
}

func (p EventPatch) Apply(event *Event) {
	if p.Title != nil && *p.Title != "" {
		event.Title = *p.Title
	}
	if p.Date != nil && *p.Date != "" {
		event.Date = *p.Date
	}
	if p.StartTime != nil && *p.StartTime != "" {
		event.StartTime = *p.StartTime
	}
	if p.EndTime != nil && *p.EndTime != "" {
		event.EndTime = *p.EndTime
	}
	if p.Location != nil {
		event.Location = *p.Location
	}
	if p.Description != nil {
		event.Description = *p.Description
	}
	if p.NeedsReschedule != nil {
		event.NeedsReschedule = *p.NeedsReschedule
	}
}

type EventFilter struct {
	Date      string
	StartDate string
	EndDate   string
}

// Match mirrors the query rules: an exact date wins, then an inclusive range,
// and an empty filter matches everything.
func (f EventFilter) Match(event Event) bool {
	switch {
	case f.Date != "":
		return event.Date == f.Date
	case f.StartDate != "" && f.EndDate != "":
		return f.StartDate <= event.Date && event.Date <= f.EndDate
	case f.StartDate == "" && f.EndDate == "":
		return true
	default:
		return false
	}
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. Back-to-back
// intervals do not overlap.
func Overlaps(s1, e1, s2, e2 string) bool {
	return !(e1 <= s2 || s1 >= e2)
}
