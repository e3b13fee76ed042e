package cmd

import (
	"fmt"
	"strings"

	planrender "github.com/bnema/schedule-manager-cli/internal/adapters/render/plan"
	"github.com/bnema/schedule-manager-cli/internal/agent"
	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newEventsCmd(app *app) *cobra.Command {
	var date string
	var output string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List events for a day (today by default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := planrender.ParseFormat(output)
			if err != nil {
				return err
			}
			if date == "" {
				date = app.clock.Now().Format(domain.DateLayout)
			}

			events, err := app.calendar.QueryEvents(cmd.Context(), domain.EventFilter{Date: date})
			if err != nil {
				return err
			}
			if format != planrender.FormatText {
				return planrender.Encode(cmd.OutOrStdout(), events, format)
			}
			if len(events) == 0 {
				return writeLines(cmd, fmt.Sprintf("No events on %s.", date))
			}
			return writeLines(cmd, append([]string{fmt.Sprintf("Events on %s:", date)}, agent.FormatEvents(events)...)...)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to list (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	return cmd
}

func newTasksCmd(app *app) *cobra.Command {
	var all bool
	var priority string
	var output string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List open tasks by priority",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := planrender.ParseFormat(output)
			if err != nil {
				return err
			}

			tasks, err := app.tasks.ListTasks(cmd.Context(), domain.TaskFilter{
				Priority:         domain.Priority(priority),
				IncludeCompleted: all,
			})
			if err != nil {
				return err
			}
			if format != planrender.FormatText {
				return planrender.Encode(cmd.OutOrStdout(), tasks, format)
			}
			if len(tasks) == 0 {
				return writeLines(cmd, "No tasks.")
			}
			return writeLines(cmd, agent.FormatTasks(tasks)...)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed and cancelled tasks")
	cmd.Flags().StringVar(&priority, "priority", "", "Only tasks with this priority (low, medium, high, urgent)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	return cmd
}

func newRemindersCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Inspect reminders",
	}

	cmd.AddCommand(newRemindersUpcomingCmd(app))
	return cmd
}

func newRemindersUpcomingCmd(app *app) *cobra.Command {
	var hours float64
	var output string

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List active reminders due within the next hours",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := planrender.ParseFormat(output)
			if err != nil {
				return err
			}
			if hours <= 0 {
				hours = app.settings.UpcomingHours
			}

			upcoming, err := app.reminders.Upcoming(cmd.Context(), app.clock.Now(), hours)
			if err != nil {
				return err
			}
			if format != planrender.FormatText {
				return planrender.Encode(cmd.OutOrStdout(), upcoming, format)
			}
			if len(upcoming) == 0 {
				return writeLines(cmd, fmt.Sprintf("No reminders in the next %.0f hours.", hours))
			}
			return writeLines(cmd, agent.FormatReminders(upcoming)...)
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Look-ahead window in hours (defaults to UPCOMING_HOURS)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	return cmd
}

func newStatsCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := planrender.ParseFormat(output)
			if err != nil {
				return err
			}

			analysis, err := app.tasks.Analysis(cmd.Context())
			if err != nil {
				return err
			}
			if format != planrender.FormatText {
				return planrender.Encode(cmd.OutOrStdout(), analysis, format)
			}

			stats := analysis.Statistics
			return writeLines(cmd,
				fmt.Sprintf("total: %d", stats.Total),
				fmt.Sprintf("overdue: %d", stats.OverdueCount),
				fmt.Sprintf("completion rate: %.1f%%", analysis.CompletionRate),
				fmt.Sprintf("estimated hours: %.1f (open %.1f)", stats.TotalEstimatedHours, analysis.OpenEstimatedHours),
				fmt.Sprintf("by status: todo %d, in progress %d, completed %d, cancelled %d",
					stats.ByStatus[domain.TaskStatusTodo], stats.ByStatus[domain.TaskStatusInProgress],
					stats.ByStatus[domain.TaskStatusCompleted], stats.ByStatus[domain.TaskStatusCancelled]),
				fmt.Sprintf("by priority: urgent %d, high %d, medium %d, low %d",
					stats.ByPriority[domain.PriorityUrgent], stats.ByPriority[domain.PriorityHigh],
					stats.ByPriority[domain.PriorityMedium], stats.ByPriority[domain.PriorityLow]),
			)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	return cmd
}

func writeLines(cmd *cobra.Command, lines ...string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
	return err
}
