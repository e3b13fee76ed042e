package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/domain"
)

// Seed fills empty stores with the sample schedule used by the demo,
// relative to now.
func Seed(ctx context.Context, now time.Time, events *EventStore, tasks *TaskStore, reminders *ReminderStore) error {
	today := now.Format(domain.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(domain.DateLayout)
	nextWeek := now.AddDate(0, 0, 7).Format(domain.DateLayout)

	for _, event := range []domain.Event{
		{ID: "EVT-001", Title: "Team weekly sync", Date: today, StartTime: "10:00", EndTime: "11:00", Location: "Room A", Description: "Progress this week and plan for next week"},
		{ID: "EVT-002", Title: "Project review", Date: today, StartTime: "14:00", EndTime: "16:00", Location: "Room B", Description: "Q4 project review"},
		{ID: "EVT-003", Title: "Client visit", Date: tomorrow, StartTime: "09:30", EndTime: "11:30", Location: "Client office", Description: "New product demo"},
	} {
		if _, err := events.Create(ctx, event); err != nil {
			return fmt.Errorf("seed event %s: %w", event.ID, err)
		}
	}

	for _, task := range []domain.Task{
		{ID: "TSK-001", Title: "Finish project report", Description: "Write the Q4 progress report", Priority: domain.PriorityHigh, Status: domain.TaskStatusInProgress, DueDate: today, EstimatedHours: 3, Tags: []string{"work", "report"}},
		{ID: "TSK-002", Title: "Reply to client email", Description: "Answer the client's feature questions", Priority: domain.PriorityMedium, Status: domain.TaskStatusTodo, DueDate: today, EstimatedHours: 1, Tags: []string{"work", "communication"}},
		{ID: "TSK-003", Title: "Prepare slides", Description: "Slides for next week's client visit", Priority: domain.PriorityHigh, Status: domain.TaskStatusTodo, DueDate: tomorrow, EstimatedHours: 4, Tags: []string{"work", "slides"}},
		{ID: "TSK-004", Title: "Learn a new framework", Description: "Research agent development frameworks", Priority: domain.PriorityLow, Status: domain.TaskStatusTodo, DueDate: nextWeek, EstimatedHours: 8, Tags: []string{"learning", "tech"}},
	} {
		if _, err := tasks.Create(ctx, task); err != nil {
			return fmt.Errorf("seed task %s: %w", task.ID, err)
		}
	}

	for _, reminder := range []domain.Reminder{
		{ID: "REM-001", Title: "Prepare meeting notes", ReminderTime: today + " 09:30", RelatedType: domain.RelatedEvent, RelatedID: "EVT-001"},
		{ID: "REM-002", Title: "Project report due", ReminderTime: today + " 17:00", RelatedType: domain.RelatedTask, RelatedID: "TSK-001"},
	} {
		if _, err := reminders.Create(ctx, reminder); err != nil {
			return fmt.Errorf("seed reminder %s: %w", reminder.ID, err)
		}
	}

	return nil
}
