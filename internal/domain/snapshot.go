package domain

import "time"

// PlanSnapshot is the read-only view handed to the decision oracle.
// Nil slices mean the data was unavailable.
type PlanSnapshot struct {
	Today              string
	Now                time.Time
	Iteration          int
	Events             []Event
	Tasks              []Task
	Reminders          []UpcomingReminder
	Summary            string
	PreviousAdjustment *Adjustment
	DailyCapacityHours float64
	WorkStartHour      int
	WorkEndHour        int
}

// SessionSnapshot is what the long-term memory sink persists after an
// interaction.
type SessionSnapshot struct {
	SessionID   string
	UserID      string
	Request     string
	Route       string
	Response    string
	ActiveHours map[string]int
	Slots       map[string]string
	CapturedAt  time.Time
}
