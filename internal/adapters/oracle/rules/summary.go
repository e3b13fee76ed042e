package rules

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/domain"
)

// Summarize renders the daily summary sections: schedule, tasks by
// priority, reminders, warnings and suggestions.
func (o Oracle) Summarize(ctx context.Context, snapshot domain.PlanSnapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Daily summary for %s\n", snapshot.Today)

	b.WriteString("\nSchedule\n")
	switch {
	case snapshot.Events == nil:
		b.WriteString("- calendar unavailable\n")
	case len(snapshot.Events) == 0:
		b.WriteString("- nothing scheduled\n")
	default:
		for _, event := range snapshot.Events {
			fmt.Fprintf(&b, "- [%s-%s] %s\n", event.StartTime, event.EndTime, event.Title)
		}
	}

	b.WriteString("\nTasks (by priority)\n")
	switch {
	case snapshot.Tasks == nil:
		b.WriteString("- tasks unavailable\n")
	case len(snapshot.Tasks) == 0:
		b.WriteString("- no open tasks\n")
	default:
		for i, task := range snapshot.Tasks {
			due := "no due date"
			if t, err := time.Parse(domain.DateLayout, task.DueDate); err == nil {
				due = "due " + t.Format("01/02")
			}
			fmt.Fprintf(&b, "%d. [%s] %s - %s\n", i+1, task.Priority, task.Title, due)
		}
	}

	b.WriteString("\nReminders\n")
	switch {
	case snapshot.Reminders == nil:
		b.WriteString("- reminders unavailable\n")
	case len(snapshot.Reminders) == 0:
		b.WriteString("- none upcoming\n")
	default:
		for _, reminder := range snapshot.Reminders {
			fmt.Fprintf(&b, "- [%s] %s\n", reminder.ReminderTime, reminder.Title)
		}
	}

	critique, _ := o.Critique(ctx, snapshot)
	b.WriteString("\nWarnings\n")
	if len(critique.Issues) == 0 {
		b.WriteString("- none\n")
	}
	for _, issue := range critique.Issues {
		fmt.Fprintf(&b, "- %s\n", issue.Description)
	}

	b.WriteString("\nSuggestions\n")
	b.WriteString(suggestionLine(snapshot))

	return strings.TrimRight(b.String(), "\n"), nil
}

func suggestionLine(snapshot domain.PlanSnapshot) string {
	for _, task := range snapshot.Tasks {
		if !task.Status.Closed() {
			return fmt.Sprintf("- start with %s (%s)\n", task.Title, task.ID)
		}
	}
	return "- enjoy the free time\n"
}
