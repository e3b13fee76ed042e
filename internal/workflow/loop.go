package workflow

import (
	"context"
	"fmt"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/session"
	"go.uber.org/zap"
)

const DefaultMaxIterations = 3

type Decision int

const (
	Continue Decision = iota
	Stop
)

type TerminationReason string

const (
	ExitSignal      TerminationReason = "exit_signal"
	BudgetExhausted TerminationReason = "budget_exhausted"
)

// Assessor is the ASSESS phase. It must read current store state on every
// call.
type Assessor interface {
	Assess(ctx context.Context, state *session.State, iteration int, previous *domain.Adjustment) (domain.Critique, error)
}

// Adjuster is the ADJUST phase. Returning Stop ends the loop; the returned
// adjustment still counts for the iteration.
type Adjuster interface {
	Adjust(ctx context.Context, state *session.State, iteration int, critique domain.Critique) (domain.Adjustment, Decision, error)
}

type LoopResult struct {
	Iterations  int                 `json:"iterations" yaml:"iterations"`
	Reason      TerminationReason   `json:"reason" yaml:"reason"`
	Critiques   []domain.Critique   `json:"critiques" yaml:"critiques"`
	Adjustments []domain.Adjustment `json:"adjustments" yaml:"adjustments"`
}

// Optimal reports whether the loop ended on an optimal critique rather than
// running out of iterations.
func (r LoopResult) Optimal() bool {
	return r.Reason == ExitSignal
}

func (r LoopResult) LastCritique() (domain.Critique, bool) {
	if len(r.Critiques) == 0 {
		return domain.Critique{}, false
	}
	return r.Critiques[len(r.Critiques)-1], true
}

type Loop struct {
	maxIterations int
	assessor      Assessor
	adjuster      Adjuster
	logger        *zap.Logger
	observer      Observer
}

func NewLoop(maxIterations int, assessor Assessor, adjuster Adjuster, logger *zap.Logger, observer Observer) *Loop {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = NopObserver{}
	}

	return &Loop{
		maxIterations: maxIterations,
		assessor:      assessor,
		adjuster:      adjuster,
		logger:        logger,
		observer:      observer,
	}
}

// Run alternates ASSESS and ADJUST until the adjuster stops or the iteration
// budget is spent. Phase errors and context cancellation end the loop with
// the iterations completed so far.
func (l *Loop) Run(ctx context.Context, state *session.State) (LoopResult, error) {
	result := LoopResult{Reason: BudgetExhausted}
	var previous *domain.Adjustment

	for iteration := 1; iteration <= l.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		critique, err := l.assessor.Assess(ctx, state, iteration, previous)
		if err != nil {
			return result, fmt.Errorf("assess iteration %d: %w", iteration, err)
		}
		result.Critiques = append(result.Critiques, critique)

		if err := ctx.Err(); err != nil {
			return result, err
		}

		adjustment, decision, err := l.adjuster.Adjust(ctx, state, iteration, critique)
		if err != nil {
			return result, fmt.Errorf("adjust iteration %d: %w", iteration, err)
		}
		adjustment.Iteration = iteration
		result.Adjustments = append(result.Adjustments, adjustment)
		result.Iterations = iteration
		previous = &result.Adjustments[len(result.Adjustments)-1]

		l.logger.Debug("optimization iteration finished",
			zap.Int("iteration", iteration),
			zap.Int("issues", len(critique.Issues)),
			zap.Int("changes", len(adjustment.Changes)),
			zap.Bool("stopped", decision == Stop),
		)
		l.observer.IterationFinished(iteration, len(critique.Issues), len(adjustment.Changes))

		if decision == Stop {
			result.Reason = ExitSignal
			break
		}
	}

	l.observer.LoopFinished(result.Iterations, result.Reason)
	return result, nil
}
