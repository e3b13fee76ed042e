package cmd

import (
	"context"
	"fmt"

	planrender "github.com/bnema/schedule-manager-cli/internal/adapters/render/plan"
	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/session"
	"github.com/bnema/schedule-manager-cli/internal/workflow"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPlanCmd(app *app) *cobra.Command {
	var output string
	var maxIterations int
	var metricsFile string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run the daily planning pipeline",
		Long:  "plan queries the calendar, tasks and reminders in parallel, writes a daily summary, then critiques and adjusts the schedule until it is optimal or the iteration budget runs out.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := planrender.ParseFormat(output)
			if err != nil {
				return err
			}
			if maxIterations <= 0 {
				maxIterations = app.cfg.MaxIterations
			}

			planner := app.newPlanner(maxIterations)
			var report workflow.PlanReport
			run := func(ctx context.Context) error {
				var runErr error
				report, runErr = planner.Run(ctx, session.New())
				return runErr
			}

			if format == planrender.FormatText && app.isTerminal(cmd.OutOrStdout()) {
				err = runPlanProgress(cmd.Context(), cmd.ErrOrStderr(), app.progress, run)
			} else {
				err = run(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("run daily planning: %w", err)
			}

			if metricsFile != "" {
				if err := app.metrics.WriteTextfile(metricsFile); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
				app.logger.Debug("metrics written", zap.String("path", metricsFile))
			}

			if format != planrender.FormatText {
				return planrender.Encode(cmd.OutOrStdout(), report, format)
			}

			rendered, err := app.renderPlan(cmd, report)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "Critique/adjust iteration budget (defaults to MAX_OPTIMIZATION_ITERATIONS)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write planning metrics in Prometheus text format to this file")

	return cmd
}

// renderPlan renders the report with today's workload bar, plain when stdout
// is not a terminal.
func (a *app) renderPlan(cmd *cobra.Command, report workflow.PlanReport) (string, error) {
	today := a.clock.Now().Format(domain.DateLayout)
	dueToday, err := a.tasks.ListTasks(cmd.Context(), domain.TaskFilter{DueDate: today})
	if err != nil {
		return "", fmt.Errorf("load today's tasks: %w", err)
	}

	var load float64
	for _, task := range dueToday {
		load += task.EstimatedHours
	}

	rendered, err := a.planRenderer(report, planrender.RenderOptions{
		Today:         today,
		LoadHours:     load,
		CapacityHours: a.settings.DailyCapacityHours,
		Plain:         !a.isTerminal(cmd.OutOrStdout()),
	})
	if err != nil {
		return "", fmt.Errorf("render plan: %w", err)
	}
	return rendered, nil
}
