package agent

import (
	"context"
	"fmt"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
	"github.com/bnema/schedule-manager-cli/internal/session"
	"go.uber.org/zap"
)

// Analyst writes the daily summary from whatever the query branches left in
// the session. Missing or failed slots are passed on as nil data.
type Analyst struct {
	oracle   ports.DecisionOracle
	clock    ports.Clock
	settings Settings
	logger   *zap.Logger
}

func NewAnalyst(oracle ports.DecisionOracle, clock ports.Clock, settings Settings, logger *zap.Logger) *Analyst {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyst{oracle: oracle, clock: clock, settings: settings.withDefaults(), logger: logger}
}

func (a *Analyst) Synthesize(ctx context.Context, state *session.State) (string, error) {
	now := a.clock.Now()
	snapshot := domain.PlanSnapshot{
		Today:              now.Format(domain.DateLayout),
		Now:                now,
		DailyCapacityHours: a.settings.DailyCapacityHours,
		WorkStartHour:      a.settings.WorkStartHour,
		WorkEndHour:        a.settings.WorkEndHour,
	}

	if events, ok := session.Lookup[[]domain.Event](state, session.SlotCalendarResults); ok {
		snapshot.Events = events
	} else {
		a.logger.Debug("no calendar data for summary")
	}
	if tasks, ok := session.Lookup[[]domain.Task](state, session.SlotTaskResults); ok {
		snapshot.Tasks = tasks
	} else {
		a.logger.Debug("no task data for summary")
	}
	if reminders, ok := session.Lookup[[]domain.UpcomingReminder](state, session.SlotReminderResults); ok {
		snapshot.Reminders = reminders
	} else {
		a.logger.Debug("no reminder data for summary")
	}

	summary, err := a.oracle.Summarize(ctx, snapshot)
	if err != nil {
		return "", fmt.Errorf("summarize day: %w", err)
	}
	if err := state.Set(ownerAnalysis, session.SlotDailySummary, summary); err != nil {
		return "", err
	}

	return summary, nil
}
