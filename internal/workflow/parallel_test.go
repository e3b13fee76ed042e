package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu         sync.Mutex
	branches   map[string]error
	iterations []int
	reason     TerminationReason
	loops      int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{branches: map[string]error{}}
}

func (o *recordingObserver) BranchFinished(name string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.branches[name] = err
}

func (o *recordingObserver) IterationFinished(iteration, _, _ int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.iterations = append(o.iterations, iteration)
}

func (o *recordingObserver) LoopFinished(iterations int, reason TerminationReason) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loops = iterations
	o.reason = reason
}

func sleepingBranch(name, slot string, d time.Duration) Branch {
	return Branch{
		Name: name,
		Slot: slot,
		Run: func(ctx context.Context) (any, error) {
			select {
			case <-time.After(d):
				return name + "-done", nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	}
}

func TestParallelStageLatencyIsMaxNotSum(t *testing.T) {
	t.Parallel()

	stage := NewParallelStage([]Branch{
		sleepingBranch("calendar", session.SlotCalendarResults, 100*time.Millisecond),
		sleepingBranch("tasks", session.SlotTaskResults, 150*time.Millisecond),
		sleepingBranch("reminders", session.SlotReminderResults, 200*time.Millisecond),
	}, nil, nil)
	state := session.New()

	report := stage.Run(context.Background(), state)

	require.NoError(t, report.Err())
	assert.GreaterOrEqual(t, report.Duration, 200*time.Millisecond)
	assert.Less(t, report.Duration, 400*time.Millisecond)

	for slot, want := range map[string]string{
		session.SlotCalendarResults: "calendar-done",
		session.SlotTaskResults:     "tasks-done",
		session.SlotReminderResults: "reminders-done",
	} {
		value, ok := state.Get(slot)
		require.True(t, ok, slot)
		assert.Equal(t, want, value)
	}
}

func TestParallelStageFailureDoesNotAbortSiblings(t *testing.T) {
	t.Parallel()

	boom := errors.New("store offline")
	observer := newRecordingObserver()
	stage := NewParallelStage([]Branch{
		{Name: "calendar", Slot: session.SlotCalendarResults, Run: func(context.Context) (any, error) {
			return nil, boom
		}},
		sleepingBranch("tasks", session.SlotTaskResults, 50*time.Millisecond),
	}, nil, observer)
	state := session.New()

	report := stage.Run(context.Background(), state)

	assert.Equal(t, 1, report.Failed())
	assert.ErrorIs(t, report.Err(), boom)
	assert.Equal(t, "store offline", report.Branches[0].Error)

	marker, failed := state.Failed(session.SlotCalendarResults)
	require.True(t, failed)
	assert.Equal(t, "store offline", marker.Error)

	value, ok := session.Lookup[string](state, session.SlotTaskResults)
	require.True(t, ok)
	assert.Equal(t, "tasks-done", value)

	assert.ErrorIs(t, observer.branches["calendar"], boom)
	assert.NoError(t, observer.branches["tasks"])
}

func TestParallelStageReportsSlotOwnershipConflicts(t *testing.T) {
	t.Parallel()

	state := session.New()
	require.NoError(t, state.Set("someone-else", session.SlotTaskResults, "taken"))

	stage := NewParallelStage([]Branch{sleepingBranch("tasks", session.SlotTaskResults, 0)}, nil, nil)
	report := stage.Run(context.Background(), state)

	assert.ErrorIs(t, report.Err(), session.ErrSlotOwned)
}

func TestParallelStageRecoversPanickingBranch(t *testing.T) {
	t.Parallel()

	stage := NewParallelStage([]Branch{
		{Name: "reminders", Slot: session.SlotReminderResults, Run: func(context.Context) (any, error) {
			panic("nil reminder store")
		}},
		sleepingBranch("tasks", session.SlotTaskResults, 0),
	}, nil, nil)
	state := session.New()

	report := stage.Run(context.Background(), state)

	assert.Equal(t, 1, report.Failed())
	assert.ErrorIs(t, report.Err(), ErrBranchPanicked)

	marker, failed := state.Failed(session.SlotReminderResults)
	require.True(t, failed)
	assert.Contains(t, marker.Error, "nil reminder store")

	value, ok := session.Lookup[string](state, session.SlotTaskResults)
	require.True(t, ok)
	assert.Equal(t, "tasks-done", value)
}
