package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/session"
	"go.uber.org/zap"
)

// Synthesizer turns the query slots into the daily summary.
type Synthesizer interface {
	Synthesize(ctx context.Context, state *session.State) (string, error)
}

type PlanReport struct {
	Summary string        `json:"summary" yaml:"summary"`
	Query   QueryReport   `json:"query" yaml:"query"`
	Loop    LoopResult    `json:"loop" yaml:"loop"`
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
	// BestEffort is set when the loop ran out of iterations or a query branch
	// failed.
	BestEffort bool `json:"best_effort" yaml:"best_effort"`
}

// DailyPlanning runs the query fan-out, the synthesis step and the
// critique/adjust loop, in that order.
type DailyPlanning struct {
	query       *ParallelStage
	synthesizer Synthesizer
	loop        *Loop
	logger      *zap.Logger
}

func NewDailyPlanning(query *ParallelStage, synthesizer Synthesizer, loop *Loop, logger *zap.Logger) *DailyPlanning {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DailyPlanning{query: query, synthesizer: synthesizer, loop: loop, logger: logger}
}

func (p *DailyPlanning) Run(ctx context.Context, state *session.State) (PlanReport, error) {
	start := time.Now()
	var report PlanReport

	report.Query = p.query.Run(ctx, state)
	if err := ctx.Err(); err != nil {
		return report, err
	}

	summary, err := p.synthesizer.Synthesize(ctx, state)
	if err != nil {
		return report, fmt.Errorf("synthesize daily summary: %w", err)
	}
	report.Summary = summary

	loop, err := p.loop.Run(ctx, state)
	report.Loop = loop
	if err != nil {
		return report, fmt.Errorf("optimize schedule: %w", err)
	}

	report.Elapsed = time.Since(start)
	report.BestEffort = loop.Reason == BudgetExhausted || report.Query.Failed() > 0
	p.logger.Info("daily planning finished",
		zap.Int("iterations", loop.Iterations),
		zap.String("reason", string(loop.Reason)),
		zap.Bool("best_effort", report.BestEffort),
		zap.Duration("elapsed", report.Elapsed),
	)

	return report, nil
}
