package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressModelReportsPlanningStages(t *testing.T) {
	t.Parallel()

	var model tea.Model = newProgressModel(nil)
	assert.Contains(t, model.View(), planningLabel)
	assert.NotContains(t, model.View(), "queried")

	model, _ = model.Update(branchDoneMsg{name: "calendar_agent"})
	model, _ = model.Update(branchDoneMsg{name: "task_agent", failed: true})
	assert.Contains(t, model.View(), "2 source(s) queried, 1 unavailable")

	model, _ = model.Update(iterationDoneMsg{iteration: 1, changes: 2})
	model, _ = model.Update(iterationDoneMsg{iteration: 2, changes: 1})
	assert.Contains(t, model.View(), "iteration 2, 3 change(s) so far")

	model, cmd := model.Update(planDoneMsg{})
	require.NotNil(t, cmd)
	assert.Empty(t, model.View())
}

type countingObserver struct {
	workflow.NopObserver
	branches   int
	iterations int
}

func (o *countingObserver) BranchFinished(string, time.Duration, error) { o.branches++ }

func (o *countingObserver) IterationFinished(int, int, int) { o.iterations++ }

func TestProgressRelayForwardsOnlyWhileAttached(t *testing.T) {
	t.Parallel()

	relay := &progressRelay{}
	target := &countingObserver{}

	relay.BranchFinished("calendar_agent", time.Millisecond, nil)
	detach := relay.attach(target)
	relay.BranchFinished("task_agent", time.Millisecond, nil)
	relay.IterationFinished(1, 0, 0)
	relay.LoopFinished(1, workflow.ExitSignal)
	detach()
	relay.IterationFinished(2, 0, 0)

	assert.Equal(t, 1, target.branches)
	assert.Equal(t, 1, target.iterations)

	var unset *progressRelay
	assert.NotPanics(t, func() { unset.IterationFinished(1, 0, 0) })
}

func TestRunPlanProgressReturnsWorkError(t *testing.T) {
	t.Parallel()

	boom := errors.New("oracle offline")
	relay := &progressRelay{}
	var out bytes.Buffer

	err := runPlanProgress(context.Background(), &out, relay, func(context.Context) error {
		relay.IterationFinished(1, 1, 1)
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Nil(t, relay.current())
}
