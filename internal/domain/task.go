package domain

import (
	"slices"
	"time"
)

type TaskID string

const TaskIDPrefix = "TSK-"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityOrder = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

// Rank orders priorities with urgent first. Unknown values rank last.
func (p Priority) Rank() int {
	if i := slices.Index(priorityOrder, p); i >= 0 {
		return i
	}
	return len(priorityOrder)
}

func (p Priority) Valid() bool {
	return slices.Contains(priorityOrder, p)
}

// Demote lowers the priority by one rank. Low stays low.
func (p Priority) Demote() Priority {
	rank := p.Rank()
	if rank >= len(priorityOrder)-1 {
		return PriorityLow
	}
	return priorityOrder[rank+1]
}

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) Closed() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

const (
	TagReschedule      = "reschedule"
	TagCancelCandidate = "cancel-candidate"
)

type Task struct {
	ID             TaskID     `json:"id" yaml:"id"`
	Title          string     `json:"title" yaml:"title"`
	Description    string     `json:"description" yaml:"description"`
	Priority       Priority   `json:"priority" yaml:"priority"`
	Status         TaskStatus `json:"status" yaml:"status"`
	DueDate        string     `json:"due_date" yaml:"due_date"`
	EstimatedHours float64    `json:"estimated_hours" yaml:"estimated_hours"`
	Tags           []string   `json:"tags" yaml:"tags"`
	CreatedAt      time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	CompletedAt    time.Time  `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

func (t Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// Overdue reports whether the task is open and its due date is before today.
func (t Task) Overdue(today string) bool {
	return t.DueDate != "" && t.DueDate < today && !t.Status.Closed()
}

type TaskPatch struct {
	Title          *string
	Description    *string
	Priority       *Priority
	Status         *TaskStatus
	DueDate        *string
	EstimatedHours *float64
	AddTags        []string
}

// Apply merges the patch into task and stamps CompletedAt when the status
// moves to completed.
func (p TaskPatch) Apply(task *Task, now time.Time) {
	if p.Title != nil && *p.Title != "" {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Priority != nil && *p.Priority != "" {
		task.Priority = *p.Priority
	}
	if p.Status != nil && *p.Status != "" {
		if *p.Status == TaskStatusCompleted && (task.Status != TaskStatusCompleted || task.CompletedAt.IsZero()) {
			task.CompletedAt = now
		}
		task.Status = *p.Status
	}
	if p.DueDate != nil && *p.DueDate != "" {
		task.DueDate = *p.DueDate
	}
	if p.EstimatedHours != nil {
		task.EstimatedHours = *p.EstimatedHours
	}
	for _, tag := range p.AddTags {
		if tag != "" && !task.HasTag(tag) {
			task.Tags = append(task.Tags, tag)
		}
	}
}

type TaskFilter struct {
	Status           TaskStatus
	Priority         Priority
	DueDate          string
	IncludeCompleted bool
}

func (f TaskFilter) Match(task Task) bool {
	if !f.IncludeCompleted && task.Status.Closed() {
		return false
	}
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	if f.Priority != "" && task.Priority != f.Priority {
		return false
	}
	if f.DueDate != "" && task.DueDate != f.DueDate {
		return false
	}
	return true
}

// LessTask is the list order: priority rank, then due date with unset dates
// last, then ID.
func LessTask(a, b Task) bool {
	if a.Priority.Rank() != b.Priority.Rank() {
		return a.Priority.Rank() < b.Priority.Rank()
	}
	ad, bd := dueSortKey(a.DueDate), dueSortKey(b.DueDate)
	if ad != bd {
		return ad < bd
	}
	return a.ID < b.ID
}

func dueSortKey(due string) string {
	if due == "" {
		return "9999-99-99"
	}
	return due
}
