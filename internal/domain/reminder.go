package domain

import (
	"strings"
	"time"
)

type ReminderID string

const (
	ReminderIDPrefix = "REM-"
	// ReminderTimeLayout is the wire form of ReminderTime.
	ReminderTimeLayout = "2006-01-02 15:04"
)

type ReminderStatus string

const (
	ReminderStatusActive    ReminderStatus = "active"
	ReminderStatusCompleted ReminderStatus = "completed"
	ReminderStatusCancelled ReminderStatus = "cancelled"
)

type RelatedType string

const (
	RelatedNone  RelatedType = ""
	RelatedEvent RelatedType = "event"
	RelatedTask  RelatedType = "task"
)

type Reminder struct {
	ID           ReminderID     `json:"id" yaml:"id"`
	Title        string         `json:"title" yaml:"title"`
	ReminderTime string         `json:"reminder_time" yaml:"reminder_time"`
	RelatedType  RelatedType    `json:"related_type" yaml:"related_type"`
	RelatedID    string         `json:"related_id" yaml:"related_id"`
	Status       ReminderStatus `json:"status" yaml:"status"`
	CreatedAt    time.Time      `json:"created_at" yaml:"created_at"`
	CompletedAt  time.Time      `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// Date returns the date part of ReminderTime.
func (r Reminder) Date() string {
	date, _, _ := strings.Cut(r.ReminderTime, " ")
	return date
}

type ReminderPatch struct {
	Title        *string
	ReminderTime *string
	Status       *ReminderStatus
}

func (p ReminderPatch) Apply(reminder *Reminder, now time.Time) {
	if p.Title != nil && *p.Title != "" {
		reminder.Title = *p.Title
	}
	if p.ReminderTime != nil && *p.ReminderTime != "" {
		reminder.ReminderTime = *p.ReminderTime
	}
	if p.Status != nil && *p.Status != "" {
		if *p.Status == ReminderStatusCompleted && reminder.CompletedAt.IsZero() {
			reminder.CompletedAt = now
		}
		reminder.Status = *p.Status
	}
}

type ReminderFilter struct {
	// Status defaults to active when empty.
	Status ReminderStatus
	Date   string
}

func (f ReminderFilter) Match(reminder Reminder) bool {
	status := f.Status
	if status == "" {
		status = ReminderStatusActive
	}
	if reminder.Status != status {
		return false
	}
	if f.Date != "" && reminder.Date() != f.Date {
		return false
	}
	return true
}

type UpcomingReminder struct {
	Reminder  `yaml:",inline"`
	TimeUntil time.Duration `json:"time_until" yaml:"time_until"`
}
