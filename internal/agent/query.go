package agent

import (
	"context"

	"github.com/bnema/schedule-manager-cli/internal/application"
	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
	"github.com/bnema/schedule-manager-cli/internal/session"
	"github.com/bnema/schedule-manager-cli/internal/workflow"
)

// QueryBranches returns the three read branches of the daily plan. Each
// reads one store and writes one slot.
func QueryBranches(calendar *application.CalendarService, tasks *application.TaskService, reminders *application.ReminderService, clock ports.Clock, settings Settings) []workflow.Branch {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	settings = settings.withDefaults()

	return []workflow.Branch{
		{
			Name: ownerCalendar,
			Slot: session.SlotCalendarResults,
			Run: func(ctx context.Context) (any, error) {
				return calendar.TodaySchedule(ctx)
			},
		},
		{
			Name: ownerTasks,
			Slot: session.SlotTaskResults,
			Run: func(ctx context.Context) (any, error) {
				return tasks.ListTasks(ctx, domain.TaskFilter{})
			},
		},
		{
			Name: ownerReminders,
			Slot: session.SlotReminderResults,
			Run: func(ctx context.Context) (any, error) {
				return reminders.Upcoming(ctx, clock.Now(), settings.UpcomingHours)
			},
		},
	}
}
