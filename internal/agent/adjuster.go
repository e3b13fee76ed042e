package agent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/application"
	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/session"
	"github.com/bnema/schedule-manager-cli/internal/workflow"
	"go.uber.org/zap"
)

// Adjuster is the ADJUST phase. It applies one rule per issue type and stops
// the loop once a critique is optimal.
type Adjuster struct {
	calendar *application.CalendarService
	tasks    *application.TaskService
	settings Settings
	logger   *zap.Logger
}

var _ workflow.Adjuster = (*Adjuster)(nil)

func NewAdjuster(calendar *application.CalendarService, tasks *application.TaskService, settings Settings, logger *zap.Logger) *Adjuster {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Adjuster{calendar: calendar, tasks: tasks, settings: settings.withDefaults(), logger: logger}
}

func (a *Adjuster) Adjust(ctx context.Context, state *session.State, iteration int, critique domain.Critique) (domain.Adjustment, workflow.Decision, error) {
	adjustment := domain.Adjustment{Iteration: iteration, Changes: []domain.Change{}}

	if critique.IsOptimal {
		adjustment.Stopped = true
		adjustment.Summary = "schedule is optimal, optimization finished"
		if err := state.Set(ownerAdjuster, session.SlotAdjustmentResults, adjustment); err != nil {
			return adjustment, workflow.Stop, err
		}
		return adjustment, workflow.Stop, nil
	}

	for _, issue := range critique.Issues {
		var (
			changes []domain.Change
			skipped []string
			err     error
		)

		switch issue.Type {
		case domain.IssuePriorityConflict:
			changes, skipped, err = a.resolvePriorityConflict(ctx, issue)
		case domain.IssueTimeConflict:
			changes, skipped, err = a.resolveTimeConflict(ctx, issue)
		case domain.IssueOverload:
			changes, skipped, err = a.resolveOverload(ctx, issue)
		case domain.IssueOverdue:
			changes, skipped, err = a.resolveOverdue(ctx, issue)
		default:
			skipped = []string{fmt.Sprintf("unknown issue type %q", issue.Type)}
		}
		if err != nil {
			return adjustment, workflow.Continue, fmt.Errorf("resolve %s: %w", issue.Type, err)
		}

		adjustment.Changes = append(adjustment.Changes, changes...)
		adjustment.Skipped = append(adjustment.Skipped, skipped...)
	}

	adjustment.Summary = fmt.Sprintf("iteration %d: %d change(s) for %d issue(s), waiting for the next review", iteration, len(adjustment.Changes), len(critique.Issues))
	a.logger.Debug("schedule adjusted",
		zap.Int("iteration", iteration),
		zap.Int("changes", len(adjustment.Changes)),
		zap.Strings("skipped", adjustment.Skipped),
	)

	if err := state.Set(ownerAdjuster, session.SlotAdjustmentResults, adjustment); err != nil {
		return adjustment, workflow.Continue, err
	}
	return adjustment, workflow.Continue, nil
}

// resolvePriorityConflict demotes the least important affected task by one
// rank.
func (a *Adjuster) resolvePriorityConflict(ctx context.Context, issue domain.Issue) ([]domain.Change, []string, error) {
	tasks, skipped, err := a.affectedTasks(ctx, issue)
	if err != nil || len(tasks) == 0 {
		return nil, skipped, err
	}

	target := tasks[0]
	for _, task := range tasks[1:] {
		if demotesBefore(task, target) {
			target = task
		}
	}

	demoted := target.Priority.Demote()
	if demoted == target.Priority {
		return nil, append(skipped, fmt.Sprintf("%s is already %s", target.ID, target.Priority)), nil
	}
	if _, err := a.tasks.UpdateTask(ctx, target.ID, domain.TaskPatch{Priority: &demoted}); err != nil {
		return nil, skipped, err
	}

	return []domain.Change{{
		ItemID: string(target.ID),
		Field:  "priority",
		From:   string(target.Priority),
		To:     string(demoted),
		Reason: "priority conflict",
	}}, skipped, nil
}

// demotesBefore reports whether a should be demoted rather than b: lower
// priority first, then the later due date, then the larger id.
func demotesBefore(a, b domain.Task) bool {
	if a.Priority.Rank() != b.Priority.Rank() {
		return a.Priority.Rank() > b.Priority.Rank()
	}
	ad, bd := dueOrLast(a.DueDate), dueOrLast(b.DueDate)
	if ad != bd {
		return ad > bd
	}
	return a.ID > b.ID
}

func dueOrLast(due string) string {
	if due == "" {
		return "9999-99-99"
	}
	return due
}

// resolveTimeConflict moves overlapping events apart inside the work window
// and tags affected tasks for rescheduling. Events that cannot fit are
// flagged, never dropped.
func (a *Adjuster) resolveTimeConflict(ctx context.Context, issue domain.Issue) ([]domain.Change, []string, error) {
	var (
		changes []domain.Change
		skipped []string
		events  []slotEvent
	)

	for _, item := range uniqueItems(issue.AffectedItems) {
		switch {
		case strings.HasPrefix(item, domain.EventIDPrefix):
			event, err := a.calendar.GetEvent(ctx, domain.EventID(item))
			if errors.Is(err, domain.ErrEventNotFound) {
				skipped = append(skipped, fmt.Sprintf("event %s not found", item))
				continue
			}
			if err != nil {
				return nil, nil, err
			}
			start, startErr := parseClock(event.StartTime)
			end, endErr := parseClock(event.EndTime)
			if startErr != nil || endErr != nil || end < start {
				skipped = append(skipped, fmt.Sprintf("event %s has unusable times %s-%s", event.ID, event.StartTime, event.EndTime))
				continue
			}
			events = append(events, slotEvent{event: event, start: start, end: end})
		case strings.HasPrefix(item, domain.TaskIDPrefix):
			change, ok, err := a.tagTask(ctx, domain.TaskID(item), domain.TagReschedule, "time conflict")
			if errors.Is(err, domain.ErrTaskNotFound) {
				skipped = append(skipped, fmt.Sprintf("task %s not found", item))
				continue
			}
			if err != nil {
				return nil, nil, err
			}
			if ok {
				changes = append(changes, change)
			}
		}
	}

	byDate := map[string][]slotEvent{}
	for _, ev := range events {
		byDate[ev.event.Date] = append(byDate[ev.event.Date], ev)
	}
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	workStart := a.settings.WorkStartHour * 60
	workEnd := a.settings.WorkEndHour * 60
	for _, date := range dates {
		moved, err := a.spreadEvents(ctx, byDate[date], workStart, workEnd)
		if err != nil {
			return nil, nil, err
		}
		changes = append(changes, moved...)
	}

	return changes, skipped, nil
}

type slotEvent struct {
	event      domain.Event
	start, end int
}

func (a *Adjuster) spreadEvents(ctx context.Context, events []slotEvent, workStart, workEnd int) ([]domain.Change, error) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].start != events[j].start {
			return events[i].start < events[j].start
		}
		return events[i].event.ID < events[j].event.ID
	})

	var changes []domain.Change
	earliest := events[0].start
	prevEnd := events[0].end
	for _, ev := range events[1:] {
		if ev.start >= prevEnd {
			prevEnd = max(prevEnd, ev.end)
			continue
		}

		duration := ev.end - ev.start
		start, end := prevEnd, prevEnd+duration
		if end > workEnd {
			start, end = earliest-duration, earliest
		}
		if start < workStart {
			flag := true
			if _, err := a.calendar.UpdateEvent(ctx, ev.event.ID, domain.EventPatch{NeedsReschedule: &flag}); err != nil {
				return nil, err
			}
			changes = append(changes, domain.Change{
				ItemID: string(ev.event.ID),
				Field:  "needs_reschedule",
				From:   "false",
				To:     "true",
				Reason: "time conflict outside the work window",
			})
			continue
		}

		newStart, newEnd := formatClock(start), formatClock(end)
		if _, err := a.calendar.UpdateEvent(ctx, ev.event.ID, domain.EventPatch{StartTime: &newStart, EndTime: &newEnd}); err != nil {
			return nil, err
		}
		changes = append(changes, domain.Change{
			ItemID: string(ev.event.ID),
			Field:  "time",
			From:   ev.event.StartTime + "-" + ev.event.EndTime,
			To:     newStart + "-" + newEnd,
			Reason: "time conflict",
		})

		if start < earliest {
			earliest = start
		} else {
			prevEnd = end
		}
	}

	return changes, nil
}

// resolveOverload defers the least important non-urgent tasks of each
// affected day until the day fits the capacity.
func (a *Adjuster) resolveOverload(ctx context.Context, issue domain.Issue) ([]domain.Change, []string, error) {
	days, skipped, err := a.overloadedDays(ctx, issue)
	if err != nil {
		return nil, skipped, err
	}

	var changes []domain.Change
	for _, day := range days {
		tasks, err := a.tasks.ListTasks(ctx, domain.TaskFilter{DueDate: day})
		if err != nil {
			return nil, nil, err
		}

		next, err := nextDay(day)
		if err != nil {
			skipped = append(skipped, err.Error())
			continue
		}

		total := 0.0
		for _, task := range tasks {
			total += task.EstimatedHours
		}

		// tasks arrive in list order, so the tail holds the least important.
		for i := len(tasks) - 1; i >= 0 && total > a.settings.DailyCapacityHours; i-- {
			task := tasks[i]
			if task.Priority == domain.PriorityUrgent {
				continue
			}
			if _, err := a.tasks.UpdateTask(ctx, task.ID, domain.TaskPatch{DueDate: &next}); err != nil {
				return nil, nil, err
			}
			total -= task.EstimatedHours
			changes = append(changes, domain.Change{
				ItemID: string(task.ID),
				Field:  "due_date",
				From:   day,
				To:     next,
				Reason: fmt.Sprintf("day over %.1fh capacity", a.settings.DailyCapacityHours),
			})
		}
		if total > a.settings.DailyCapacityHours {
			skipped = append(skipped, fmt.Sprintf("%s still over capacity with only urgent tasks left", day))
		}
	}

	return changes, skipped, nil
}

func (a *Adjuster) overloadedDays(ctx context.Context, issue domain.Issue) ([]string, []string, error) {
	seen := map[string]bool{}
	var days, skipped []string
	add := func(day string) {
		if day != "" && !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}

	for _, item := range issue.AffectedItems {
		if _, err := time.Parse(domain.DateLayout, item); err == nil {
			add(item)
			continue
		}
		if strings.HasPrefix(item, domain.TaskIDPrefix) {
			task, err := a.tasks.GetTask(ctx, domain.TaskID(item))
			if errors.Is(err, domain.ErrTaskNotFound) {
				skipped = append(skipped, fmt.Sprintf("task %s not found", item))
				continue
			}
			if err != nil {
				return nil, nil, err
			}
			add(task.DueDate)
		}
	}
	sort.Strings(days)

	return days, skipped, nil
}

// resolveOverdue promotes overdue tasks to urgent, or tags them as
// cancellation candidates when that policy is configured.
func (a *Adjuster) resolveOverdue(ctx context.Context, issue domain.Issue) ([]domain.Change, []string, error) {
	tasks, skipped, err := a.affectedTasks(ctx, issue)
	if err != nil {
		return nil, skipped, err
	}

	var changes []domain.Change
	for _, task := range tasks {
		if a.settings.OverduePolicy == OverdueCancelCandidate {
			change, ok, err := a.tagTask(ctx, task.ID, domain.TagCancelCandidate, "overdue")
			if err != nil {
				return nil, nil, err
			}
			if ok {
				changes = append(changes, change)
			}
			continue
		}

		if task.Priority == domain.PriorityUrgent {
			skipped = append(skipped, fmt.Sprintf("%s is already urgent", task.ID))
			continue
		}
		urgent := domain.PriorityUrgent
		if _, err := a.tasks.UpdateTask(ctx, task.ID, domain.TaskPatch{Priority: &urgent}); err != nil {
			return nil, nil, err
		}
		changes = append(changes, domain.Change{
			ItemID: string(task.ID),
			Field:  "priority",
			From:   string(task.Priority),
			To:     string(urgent),
			Reason: "overdue",
		})
	}

	return changes, skipped, nil
}

func (a *Adjuster) affectedTasks(ctx context.Context, issue domain.Issue) ([]domain.Task, []string, error) {
	var (
		tasks   []domain.Task
		skipped []string
	)
	for _, item := range issue.AffectedItems {
		if !strings.HasPrefix(item, domain.TaskIDPrefix) {
			continue
		}
		task, err := a.tasks.GetTask(ctx, domain.TaskID(item))
		if errors.Is(err, domain.ErrTaskNotFound) {
			skipped = append(skipped, fmt.Sprintf("task %s not found", item))
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, skipped, nil
}

func (a *Adjuster) tagTask(ctx context.Context, id domain.TaskID, tag, reason string) (domain.Change, bool, error) {
	task, err := a.tasks.GetTask(ctx, id)
	if err != nil {
		return domain.Change{}, false, err
	}
	if task.HasTag(tag) {
		return domain.Change{}, false, nil
	}
	if _, err := a.tasks.UpdateTask(ctx, id, domain.TaskPatch{AddTags: []string{tag}}); err != nil {
		return domain.Change{}, false, err
	}
	return domain.Change{ItemID: string(id), Field: "tags", To: tag, Reason: reason}, true, nil
}

func parseClock(value string) (int, error) {
	t, err := time.Parse(domain.ClockLayout, value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func nextDay(day string) (string, error) {
	t, err := time.Parse(domain.DateLayout, day)
	if err != nil {
		return "", fmt.Errorf("parse due date %q: %w", day, err)
	}
	return t.AddDate(0, 0, 1).Format(domain.DateLayout), nil
}

// uniqueItems drops repeated ids, keeping first occurrence order.
func uniqueItems(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
