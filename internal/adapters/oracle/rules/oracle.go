// Package rules is a deterministic decision oracle. It needs no model and
// is the default provider.
package rules

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
)

type Oracle struct{}

var _ ports.DecisionOracle = Oracle{}

func New() Oracle {
	return Oracle{}
}

// Critique flags overdue tasks that are not yet handled, days whose open
// work exceeds capacity, overlapping events today, and days with more than
// one urgent or high task.
func (Oracle) Critique(ctx context.Context, snapshot domain.PlanSnapshot) (domain.Critique, error) {
	if err := ctx.Err(); err != nil {
		return domain.Critique{}, err
	}

	var issues []domain.Issue
	issues = append(issues, overdueIssues(snapshot)...)
	issues = append(issues, overloadIssues(snapshot)...)
	issues = append(issues, timeConflictIssues(snapshot)...)
	issues = append(issues, priorityConflictIssues(snapshot)...)

	critique := domain.Critique{IsOptimal: len(issues) == 0, Issues: issues, Suggestions: []string{}}
	if critique.Issues == nil {
		critique.Issues = []domain.Issue{}
	}
	for _, issue := range issues {
		critique.Suggestions = append(critique.Suggestions, suggestionFor(issue))
	}

	return critique, nil
}

func overdueIssues(snapshot domain.PlanSnapshot) []domain.Issue {
	var ids []string
	for _, task := range snapshot.Tasks {
		if !task.Overdue(snapshot.Today) {
			continue
		}
		if task.Priority == domain.PriorityUrgent || task.HasTag(domain.TagCancelCandidate) {
			continue
		}
		ids = append(ids, string(task.ID))
	}
	if len(ids) == 0 {
		return nil
	}
	return []domain.Issue{{
		Type:          domain.IssueOverdue,
		Description:   fmt.Sprintf("%d task(s) are past their due date", len(ids)),
		AffectedItems: ids,
	}}
}

func overloadIssues(snapshot domain.PlanSnapshot) []domain.Issue {
	hours := map[string]float64{}
	ids := map[string][]string{}
	for _, task := range snapshot.Tasks {
		if task.Status.Closed() || task.DueDate == "" || task.DueDate < snapshot.Today {
			continue
		}
		hours[task.DueDate] += task.EstimatedHours
		ids[task.DueDate] = append(ids[task.DueDate], string(task.ID))
	}

	var issues []domain.Issue
	for _, day := range sortedKeys(hours) {
		if hours[day] <= snapshot.DailyCapacityHours {
			continue
		}
		issues = append(issues, domain.Issue{
			Type:          domain.IssueOverload,
			Description:   fmt.Sprintf("%s has %.1fh of work for %.1fh capacity", day, hours[day], snapshot.DailyCapacityHours),
			AffectedItems: append([]string{day}, ids[day]...),
		})
	}
	return issues
}

func timeConflictIssues(snapshot domain.PlanSnapshot) []domain.Issue {
	var today []domain.Event
	for _, event := range snapshot.Events {
		if event.Date == snapshot.Today && !event.NeedsReschedule {
			today = append(today, event)
		}
	}
	sort.SliceStable(today, func(i, j int) bool {
		return today[i].StartTime < today[j].StartTime
	})

	var issues []domain.Issue
	var cluster []string
	clusterEnd := ""
	flush := func() {
		if len(cluster) > 1 {
			issues = append(issues, domain.Issue{
				Type:          domain.IssueTimeConflict,
				Description:   fmt.Sprintf("events %s overlap", strings.Join(cluster, ", ")),
				AffectedItems: cluster,
			})
		}
		cluster = nil
	}
	for _, event := range today {
		if len(cluster) > 0 && event.StartTime < clusterEnd {
			cluster = append(cluster, string(event.ID))
			if event.EndTime > clusterEnd {
				clusterEnd = event.EndTime
			}
			continue
		}
		flush()
		cluster = []string{string(event.ID)}
		clusterEnd = event.EndTime
	}
	flush()

	return issues
}

func priorityConflictIssues(snapshot domain.PlanSnapshot) []domain.Issue {
	ids := map[string][]string{}
	for _, task := range snapshot.Tasks {
		if task.Status.Closed() || task.DueDate == "" || task.DueDate < snapshot.Today {
			continue
		}
		if task.Priority == domain.PriorityUrgent || task.Priority == domain.PriorityHigh {
			ids[task.DueDate] = append(ids[task.DueDate], string(task.ID))
		}
	}

	var issues []domain.Issue
	for _, day := range sortedKeys(ids) {
		if len(ids[day]) < 2 {
			continue
		}
		issues = append(issues, domain.Issue{
			Type:          domain.IssuePriorityConflict,
			Description:   fmt.Sprintf("%d high priority tasks due %s", len(ids[day]), day),
			AffectedItems: ids[day],
		})
	}
	return issues
}

func suggestionFor(issue domain.Issue) string {
	switch issue.Type {
	case domain.IssueOverdue:
		return "raise overdue tasks to urgent or decide to drop them"
	case domain.IssueOverload:
		return "move non-urgent work to the following day"
	case domain.IssueTimeConflict:
		return "move overlapping events apart"
	case domain.IssuePriorityConflict:
		return "lower the priority of the less important task"
	default:
		return issue.Description
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
