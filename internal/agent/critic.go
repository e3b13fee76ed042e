package agent

import (
	"context"
	"fmt"

	"github.com/bnema/schedule-manager-cli/internal/application"
	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
	"github.com/bnema/schedule-manager-cli/internal/session"
	"github.com/bnema/schedule-manager-cli/internal/workflow"
)

// Critic is the ASSESS phase. It rebuilds the snapshot from the stores on
// every iteration so it always sees the previous adjustments.
type Critic struct {
	calendar  *application.CalendarService
	tasks     *application.TaskService
	reminders *application.ReminderService
	oracle    ports.DecisionOracle
	clock     ports.Clock
	settings  Settings
}

var _ workflow.Assessor = (*Critic)(nil)

func NewCritic(calendar *application.CalendarService, tasks *application.TaskService, reminders *application.ReminderService, oracle ports.DecisionOracle, clock ports.Clock, settings Settings) *Critic {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Critic{
		calendar:  calendar,
		tasks:     tasks,
		reminders: reminders,
		oracle:    oracle,
		clock:     clock,
		settings:  settings.withDefaults(),
	}
}

func (c *Critic) Assess(ctx context.Context, state *session.State, iteration int, previous *domain.Adjustment) (domain.Critique, error) {
	snapshot, err := c.snapshot(ctx, iteration, previous)
	if err != nil {
		return domain.Critique{}, err
	}
	if summary, ok := session.Lookup[string](state, session.SlotDailySummary); ok {
		snapshot.Summary = summary
	}

	critique, err := c.oracle.Critique(ctx, snapshot)
	if err != nil {
		return domain.Critique{}, fmt.Errorf("critique schedule: %w", err)
	}
	if critique.Issues == nil {
		critique.Issues = []domain.Issue{}
	}
	if err := state.Set(ownerCritic, session.SlotCriticFeedback, critique); err != nil {
		return domain.Critique{}, err
	}

	return critique, nil
}

func (c *Critic) snapshot(ctx context.Context, iteration int, previous *domain.Adjustment) (domain.PlanSnapshot, error) {
	now := c.clock.Now()

	events, err := c.calendar.QueryEvents(ctx, domain.EventFilter{})
	if err != nil {
		return domain.PlanSnapshot{}, err
	}
	tasks, err := c.tasks.ListTasks(ctx, domain.TaskFilter{})
	if err != nil {
		return domain.PlanSnapshot{}, err
	}
	reminders, err := c.reminders.Upcoming(ctx, now, c.settings.UpcomingHours)
	if err != nil {
		return domain.PlanSnapshot{}, err
	}

	return domain.PlanSnapshot{
		Today:              now.Format(domain.DateLayout),
		Now:                now,
		Iteration:          iteration,
		Events:             events,
		Tasks:              tasks,
		Reminders:          reminders,
		PreviousAdjustment: previous,
		DailyCapacityHours: c.settings.DailyCapacityHours,
		WorkStartHour:      c.settings.WorkStartHour,
		WorkEndHour:        c.settings.WorkEndHour,
	}, nil
}
