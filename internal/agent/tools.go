package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/schedule-manager-cli/internal/application"
	"github.com/bnema/schedule-manager-cli/internal/domain"
)

// Tools is the operation surface exposed to the agents. Every call reports
// through domain.Result; a missing id is a failed result, not an error.
type Tools struct {
	calendar  *application.CalendarService
	tasks     *application.TaskService
	reminders *application.ReminderService
}

func NewTools(calendar *application.CalendarService, tasks *application.TaskService, reminders *application.ReminderService) *Tools {
	return &Tools{calendar: calendar, tasks: tasks, reminders: reminders}
}

func (t *Tools) AddEvent(ctx context.Context, cmd application.AddEventCommand) domain.Result {
	event, err := t.calendar.AddEvent(ctx, cmd)
	if err != nil {
		return failure(err, "")
	}
	return domain.Ok(string(event.ID), fmt.Sprintf("added event %s %q on %s %s-%s", event.ID, event.Title, event.Date, event.StartTime, event.EndTime))
}

func (t *Tools) UpdateEvent(ctx context.Context, id domain.EventID, patch domain.EventPatch) domain.Result {
	event, err := t.calendar.UpdateEvent(ctx, id, patch)
	if err != nil {
		return failure(err, string(id))
	}
	return domain.Ok(string(event.ID), fmt.Sprintf("updated event %s", event.ID))
}

func (t *Tools) DeleteEvent(ctx context.Context, id domain.EventID) domain.Result {
	event, err := t.calendar.DeleteEvent(ctx, id)
	if err != nil {
		return failure(err, string(id))
	}
	return domain.Ok(string(event.ID), fmt.Sprintf("deleted event %s %q", event.ID, event.Title))
}

func (t *Tools) CreateTask(ctx context.Context, cmd application.CreateTaskCommand) domain.Result {
	task, err := t.tasks.CreateTask(ctx, cmd)
	if err != nil {
		return failure(err, "")
	}
	return domain.Ok(string(task.ID), fmt.Sprintf("created task %s %q [%s]", task.ID, task.Title, task.Priority))
}

func (t *Tools) UpdateTask(ctx context.Context, id domain.TaskID, patch domain.TaskPatch) domain.Result {
	task, err := t.tasks.UpdateTask(ctx, id, patch)
	if err != nil {
		return failure(err, string(id))
	}
	return domain.Ok(string(task.ID), fmt.Sprintf("updated task %s", task.ID))
}

func (t *Tools) CompleteTask(ctx context.Context, id domain.TaskID) domain.Result {
	task, err := t.tasks.CompleteTask(ctx, id)
	if err != nil {
		return failure(err, string(id))
	}
	return domain.Ok(string(task.ID), fmt.Sprintf("completed task %s %q", task.ID, task.Title))
}

func (t *Tools) DeleteTask(ctx context.Context, id domain.TaskID) domain.Result {
	task, err := t.tasks.DeleteTask(ctx, id)
	if err != nil {
		return failure(err, string(id))
	}
	return domain.Ok(string(task.ID), fmt.Sprintf("deleted task %s %q", task.ID, task.Title))
}

func (t *Tools) SetReminder(ctx context.Context, cmd application.SetReminderCommand) domain.Result {
	reminder, err := t.reminders.SetReminder(ctx, cmd)
	if err != nil {
		return failure(err, "")
	}
	return domain.Ok(string(reminder.ID), fmt.Sprintf("reminder %s set for %s", reminder.ID, reminder.ReminderTime))
}

func (t *Tools) CancelReminder(ctx context.Context, id domain.ReminderID) domain.Result {
	reminder, err := t.reminders.CancelReminder(ctx, id)
	if err != nil {
		return failure(err, string(id))
	}
	return domain.Ok(string(reminder.ID), fmt.Sprintf("cancelled reminder %s %q", reminder.ID, reminder.Title))
}

func (t *Tools) CompleteReminder(ctx context.Context, id domain.ReminderID) domain.Result {
	reminder, err := t.reminders.CompleteReminder(ctx, id)
	if err != nil {
		return failure(err, string(id))
	}
	return domain.Ok(string(reminder.ID), fmt.Sprintf("completed reminder %s %q", reminder.ID, reminder.Title))
}

func failure(err error, id string) domain.Result {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return domain.Fail(fmt.Sprintf("event %s not found", id))
	case errors.Is(err, domain.ErrTaskNotFound):
		return domain.Fail(fmt.Sprintf("task %s not found", id))
	case errors.Is(err, domain.ErrReminderNotFound):
		return domain.Fail(fmt.Sprintf("reminder %s not found", id))
	default:
		return domain.Fail(err.Error())
	}
}
