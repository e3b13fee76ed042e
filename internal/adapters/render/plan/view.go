package plan

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/workflow"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Today string
	// LoadHours and CapacityHours drive the workload bar; it is hidden when
	// CapacityHours is zero.
	LoadHours     float64
	CapacityHours float64
	Plain         bool
}

var ErrNegativeLoad = errors.New("load and capacity hours must not be negative")

// Render lays out a planning report for the terminal. Plain drops every
// style so the output can be piped.
func Render(report workflow.PlanReport, opts RenderOptions) (string, error) {
	if opts.LoadHours < 0 || opts.CapacityHours < 0 {
		return "", fmt.Errorf("%w (load %.1fh, capacity %.1fh)", ErrNegativeLoad, opts.LoadHours, opts.CapacityHours)
	}
	return renderView(report, opts, newStyles(opts.Plain)), nil
}

func renderView(report workflow.PlanReport, opts RenderOptions, s styles) string {
	title := "Daily Plan"
	if opts.Today != "" {
		title += " " + opts.Today
	}
	lines := []string{
		s.title.Render(title),
		s.header.Render(fmt.Sprintf("query %s, total %s", roundDuration(report.Query.Duration), roundDuration(report.Elapsed))),
	}

	if opts.CapacityHours > 0 {
		lines = append(lines, loadLine(opts, s))
	}

	summary := strings.TrimSpace(report.Summary)
	if summary == "" {
		lines = append(lines, s.section.Render(s.empty.Render("No summary available.")))
	} else {
		lines = append(lines, s.section.Render(s.detail.Render(summary)))
	}

	if failed := failedBranches(report.Query); len(failed) > 0 {
		parts := []string{s.warning.Render("Unavailable data")}
		for _, branch := range failed {
			parts = append(parts, s.detail.Render(fmt.Sprintf("- %s: %s", branch.Name, branch.Error)))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	}

	lines = append(lines, s.section.Render(renderLoop(report.Loop, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderLoop(loop workflow.LoopResult, s styles) string {
	parts := []string{s.heading.Render("Optimization")}

	for _, adjustment := range loop.Adjustments {
		header := fmt.Sprintf("iteration %d: %d change(s)", adjustment.Iteration, len(adjustment.Changes))
		if adjustment.Stopped {
			header = fmt.Sprintf("iteration %d: schedule is optimal", adjustment.Iteration)
		}
		parts = append(parts, s.detail.Render(header))
		for _, change := range adjustment.Changes {
			parts = append(parts, s.change.Render("  "+changeLine(change)))
		}
		for _, skipped := range adjustment.Skipped {
			parts = append(parts, s.empty.Render("  skipped: "+skipped))
		}
	}

	switch {
	case loop.Iterations == 0:
		parts = append(parts, s.empty.Render("no optimization ran"))
	case loop.Reason == workflow.ExitSignal:
		parts = append(parts, s.ok.Render(fmt.Sprintf("optimal after %d iteration(s)", loop.Iterations)))
	default:
		parts = append(parts, s.warning.Render(fmt.Sprintf("best effort after %d iteration(s), not guaranteed optimal", loop.Iterations)))
		if critique, ok := loop.LastCritique(); ok {
			for _, issue := range critique.Issues {
				parts = append(parts, s.detail.Render(fmt.Sprintf("  open: %s %s", issue.Type, issue.Description)))
			}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func changeLine(change domain.Change) string {
	if change.From == "" {
		return fmt.Sprintf("%s %s +%s (%s)", change.ItemID, change.Field, change.To, change.Reason)
	}
	return fmt.Sprintf("%s %s %s -> %s (%s)", change.ItemID, change.Field, change.From, change.To, change.Reason)
}

func loadLine(opts RenderOptions, s styles) string {
	percent := opts.LoadHours / opts.CapacityHours * 100
	meta := fmt.Sprintf("%.1fh / %.1fh", opts.LoadHours, opts.CapacityHours)
	if percent > 100 {
		meta = s.warning.Render(meta + " over capacity")
	} else {
		meta = s.detail.Render(meta)
	}

	return s.detail.Render("today's load:") + " " + renderProgressBar(percent, 24, s) + " " + meta
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func failedBranches(report workflow.QueryReport) []workflow.BranchResult {
	var failed []workflow.BranchResult
	for _, branch := range report.Branches {
		if branch.Err != nil || branch.Error != "" {
			failed = append(failed, branch)
		}
	}
	return failed
}

func roundDuration(d time.Duration) time.Duration {
	if d < time.Second {
		return d.Round(time.Millisecond)
	}
	return d.Round(10 * time.Millisecond)
}
