package agent

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/adapters/repo/memory"
	"github.com/bnema/schedule-manager-cli/internal/application"
	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type fixture struct {
	clock     fixedClock
	events    *memory.EventStore
	tasks     *memory.TaskStore
	reminders *memory.ReminderStore
	calendar  *application.CalendarService
	taskSvc   *application.TaskService
	remindSvc *application.ReminderService
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	clock := fixedClock{now: now}
	f := &fixture{
		clock:     clock,
		events:    memory.NewEventStore(memory.WithClock(clock)),
		tasks:     memory.NewTaskStore(memory.WithClock(clock)),
		reminders: memory.NewReminderStore(memory.WithClock(clock)),
	}
	f.calendar = application.NewCalendarService(f.events, clock)
	f.taskSvc = application.NewTaskService(f.tasks, clock)
	f.remindSvc = application.NewReminderService(f.reminders, clock)
	return f
}

func (f *fixture) addTasks(t *testing.T, tasks ...domain.Task) {
	t.Helper()
	for _, task := range tasks {
		_, err := f.tasks.Create(context.Background(), task)
		require.NoError(t, err)
	}
}

func (f *fixture) addEvents(t *testing.T, events ...domain.Event) {
	t.Helper()
	for _, event := range events {
		_, err := f.events.Create(context.Background(), event)
		require.NoError(t, err)
	}
}

func (f *fixture) task(t *testing.T, id domain.TaskID) domain.Task {
	t.Helper()
	task, err := f.tasks.Get(context.Background(), id)
	require.NoError(t, err)
	return task
}

func (f *fixture) event(t *testing.T, id domain.EventID) domain.Event {
	t.Helper()
	event, err := f.events.Get(context.Background(), id)
	require.NoError(t, err)
	return event
}

func (f *fixture) tools() *Tools {
	return NewTools(f.calendar, f.taskSvc, f.remindSvc)
}

var testNow = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
