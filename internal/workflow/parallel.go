package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/session"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrBranchPanicked wraps a panic raised inside a branch.
var ErrBranchPanicked = errors.New("query branch panicked")

// Branch is one independent query. Run must only touch its own store; its
// result lands in Slot.
type Branch struct {
	Name string
	Slot string
	Run  func(ctx context.Context) (any, error)
}

type BranchResult struct {
	Name     string        `json:"name" yaml:"name"`
	Slot     string        `json:"slot" yaml:"slot"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Err      error         `json:"-" yaml:"-"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

type QueryReport struct {
	Branches []BranchResult `json:"branches" yaml:"branches"`
	Duration time.Duration  `json:"duration" yaml:"duration"`
}

// Err joins every branch failure, nil when all branches succeeded.
func (r QueryReport) Err() error {
	var errs []error
	for _, branch := range r.Branches {
		if branch.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", branch.Name, branch.Err))
		}
	}
	return errors.Join(errs...)
}

func (r QueryReport) Failed() int {
	failed := 0
	for _, branch := range r.Branches {
		if branch.Err != nil {
			failed++
		}
	}
	return failed
}

type ParallelStage struct {
	branches []Branch
	logger   *zap.Logger
	observer Observer
}

func NewParallelStage(branches []Branch, logger *zap.Logger, observer Observer) *ParallelStage {
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = NopObserver{}
	}

	return &ParallelStage{branches: branches, logger: logger, observer: observer}
}

// Run starts every branch at once and waits for all of them. A failing
// branch leaves a session.ErrorMarker in its slot; siblings keep running.
func (p *ParallelStage) Run(ctx context.Context, state *session.State) QueryReport {
	start := time.Now()
	report := QueryReport{Branches: make([]BranchResult, len(p.branches))}

	var mu sync.Mutex
	record := func(i int, result BranchResult) {
		mu.Lock()
		report.Branches[i] = result
		mu.Unlock()
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for i, branch := range p.branches {
		eg.Go(func() error {
			record(i, p.runBranch(egCtx, state, branch))
			return nil
		})
	}
	_ = eg.Wait()

	report.Duration = time.Since(start)
	if failed := report.Failed(); failed > 0 {
		p.logger.Warn("parallel query finished with failures",
			zap.Int("failed", failed),
			zap.Int("branches", len(p.branches)),
			zap.Error(report.Err()),
		)
	}

	return report
}

func (p *ParallelStage) runBranch(ctx context.Context, state *session.State, branch Branch) BranchResult {
	start := time.Now()
	value, err := callBranch(ctx, branch)
	elapsed := time.Since(start)

	if err != nil {
		p.logger.Warn("query branch failed", zap.String("branch", branch.Name), zap.Error(err))
		value = session.ErrorMarker{Error: err.Error()}
	}
	if setErr := state.Set(branch.Name, branch.Slot, value); setErr != nil {
		err = errors.Join(err, setErr)
	}
	p.observer.BranchFinished(branch.Name, elapsed, err)

	result := BranchResult{Name: branch.Name, Slot: branch.Slot, Duration: elapsed, Err: err}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

func callBranch(ctx context.Context, branch Branch) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = nil, fmt.Errorf("%w: %v", ErrBranchPanicked, r)
		}
	}()
	return branch.Run(ctx)
}
