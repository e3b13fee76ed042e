package application

import "github.com/bnema/schedule-manager-cli/internal/domain"

type AddEventCommand struct {
	Title       string
	Date        string
	StartTime   string
	EndTime     string
	Location    string
	Description string
}

type CreateTaskCommand struct {
	Title          string
	Description    string
	Priority       domain.Priority
	DueDate        string
	EstimatedHours *float64
	Tags           []string
}

type SetReminderCommand struct {
	Title        string
	ReminderTime string
	RelatedType  domain.RelatedType
	RelatedID    string
}
