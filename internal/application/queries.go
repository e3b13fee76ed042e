package application

import "github.com/bnema/schedule-manager-cli/internal/domain"

type Conflict struct {
	EventID domain.EventID `json:"event_id" yaml:"event_id"`
	Title   string         `json:"title" yaml:"title"`
	Time    string         `json:"time" yaml:"time"`
}

type ConflictReport struct {
	HasConflict bool       `json:"has_conflict" yaml:"has_conflict"`
	Conflicts   []Conflict `json:"conflicts" yaml:"conflicts"`
}

type TaskStatistics struct {
	Total               int                       `json:"total" yaml:"total"`
	ByStatus            map[domain.TaskStatus]int `json:"by_status" yaml:"by_status"`
	ByPriority          map[domain.Priority]int   `json:"by_priority" yaml:"by_priority"`
	TotalEstimatedHours float64                   `json:"total_estimated_hours" yaml:"total_estimated_hours"`
	OverdueCount        int                       `json:"overdue_count" yaml:"overdue_count"`
}

// TaskDigest is the reduced task view used for analysis.
type TaskDigest struct {
	ID             domain.TaskID     `json:"id" yaml:"id"`
	Title          string            `json:"title" yaml:"title"`
	Priority       domain.Priority   `json:"priority" yaml:"priority"`
	Status         domain.TaskStatus `json:"status" yaml:"status"`
	DueDate        string            `json:"due_date" yaml:"due_date"`
	EstimatedHours float64           `json:"estimated_hours" yaml:"estimated_hours"`
}

type TaskAnalysis struct {
	Statistics TaskStatistics `json:"statistics" yaml:"statistics"`
	// CompletionRate is completed / total in percent, zero when there are no tasks.
	CompletionRate       float64                     `json:"completion_rate" yaml:"completion_rate"`
	PriorityDistribution map[domain.Priority]float64 `json:"priority_distribution" yaml:"priority_distribution"`
	OpenEstimatedHours   float64                     `json:"open_estimated_hours" yaml:"open_estimated_hours"`
}
