package workflow

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAssessor turns optimal on the given iteration, zero for never.
type scriptedAssessor struct {
	optimalAt int
	seen      []*domain.Adjustment
	err       error
}

func (a *scriptedAssessor) Assess(_ context.Context, _ *session.State, iteration int, previous *domain.Adjustment) (domain.Critique, error) {
	a.seen = append(a.seen, previous)
	if a.err != nil {
		return domain.Critique{}, a.err
	}
	if a.optimalAt != 0 && iteration >= a.optimalAt {
		return domain.Critique{IsOptimal: true}, nil
	}
	return domain.Critique{Issues: []domain.Issue{{Type: domain.IssueOverdue, AffectedItems: []string{"TSK-" + strconv.Itoa(iteration)}}}}, nil
}

type stopOnOptimal struct{}

func (stopOnOptimal) Adjust(_ context.Context, _ *session.State, _ int, critique domain.Critique) (domain.Adjustment, Decision, error) {
	if critique.IsOptimal {
		return domain.Adjustment{Stopped: true, Summary: "optimal"}, Stop, nil
	}
	return domain.Adjustment{Summary: "changed", Changes: []domain.Change{{ItemID: critique.Issues[0].AffectedItems[0]}}}, Continue, nil
}

func TestLoopStopsAtOptimalIteration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		optimalAt int
	}{
		{name: "first", optimalAt: 1},
		{name: "second", optimalAt: 2},
		{name: "last", optimalAt: 3},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			observer := newRecordingObserver()
			loop := NewLoop(3, &scriptedAssessor{optimalAt: tc.optimalAt}, stopOnOptimal{}, nil, observer)

			result, err := loop.Run(context.Background(), session.New())
			require.NoError(t, err)

			assert.Equal(t, ExitSignal, result.Reason)
			assert.True(t, result.Optimal())
			assert.Equal(t, tc.optimalAt, result.Iterations)
			assert.Len(t, result.Critiques, tc.optimalAt)
			assert.Len(t, result.Adjustments, tc.optimalAt)
			assert.True(t, result.Adjustments[tc.optimalAt-1].Stopped)
			assert.Equal(t, ExitSignal, observer.reason)
			assert.Len(t, observer.iterations, tc.optimalAt)
		})
	}
}

func TestLoopNeverOptimalRunsFullBudget(t *testing.T) {
	t.Parallel()

	assessor := &scriptedAssessor{}
	loop := NewLoop(4, assessor, stopOnOptimal{}, nil, nil)

	result, err := loop.Run(context.Background(), session.New())
	require.NoError(t, err)

	assert.Equal(t, BudgetExhausted, result.Reason)
	assert.Equal(t, 4, result.Iterations)
	assert.Len(t, result.Critiques, 4)
	assert.Len(t, result.Adjustments, 4)
	for i, adjustment := range result.Adjustments {
		assert.Equal(t, i+1, adjustment.Iteration)
	}

	require.Len(t, assessor.seen, 4)
	assert.Nil(t, assessor.seen[0])
	require.NotNil(t, assessor.seen[1])
	assert.Equal(t, 1, assessor.seen[1].Iteration)
	assert.Equal(t, 3, assessor.seen[3].Iteration)
}

func TestLoopDefaultsToThreeIterations(t *testing.T) {
	t.Parallel()

	result, err := NewLoop(0, &scriptedAssessor{}, stopOnOptimal{}, nil, nil).Run(context.Background(), session.New())
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxIterations, result.Iterations)
}

func TestLoopPropagatesAssessError(t *testing.T) {
	t.Parallel()

	boom := errors.New("oracle down")
	result, err := NewLoop(3, &scriptedAssessor{err: boom}, stopOnOptimal{}, nil, nil).Run(context.Background(), session.New())

	require.ErrorIs(t, err, boom)
	assert.Zero(t, result.Iterations)
}

func TestLoopHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoop(3, &scriptedAssessor{}, stopOnOptimal{}, nil, nil).Run(ctx, session.New())
	assert.ErrorIs(t, err, context.Canceled)
}
