package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskServiceCreateTaskAppliesDefaults(t *testing.T) {
	t.Parallel()

	service, _ := newTestTaskService(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))

	task, err := service.CreateTask(context.Background(), CreateTaskCommand{Title: "write report"})
	require.NoError(t, err)

	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, domain.TaskStatusTodo, task.Status)
	assert.InDelta(t, 1.0, task.EstimatedHours, 0.0001)
	assert.Empty(t, task.Tags)
	assert.Contains(t, string(task.ID), domain.TaskIDPrefix)
}

func TestTaskServiceStatisticsCountsOverdue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, store := newTestTaskService(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))

	_, err := store.Create(ctx, domain.Task{ID: "TSK-001", Title: "late", Priority: domain.PriorityHigh, DueDate: "2024-01-01", EstimatedHours: 2})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.Task{ID: "TSK-002", Title: "done late", Priority: domain.PriorityLow, Status: domain.TaskStatusCompleted, DueDate: "2023-12-30", EstimatedHours: 1})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.Task{ID: "TSK-003", Title: "today", Priority: domain.PriorityMedium, DueDate: "2024-01-02", EstimatedHours: 1.5})
	require.NoError(t, err)

	stats, err := service.Statistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.OverdueCount)
	assert.Equal(t, 2, stats.ByStatus[domain.TaskStatusTodo])
	assert.Equal(t, 1, stats.ByStatus[domain.TaskStatusCompleted])
	assert.Equal(t, 0, stats.ByPriority[domain.PriorityUrgent])
	assert.InDelta(t, 4.5, stats.TotalEstimatedHours, 0.0001)
}

func TestTaskServiceCompleteTaskStampsCompletedAt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	service, _ := newTestTaskService(now)

	task, err := service.CreateTask(ctx, CreateTaskCommand{Title: "ship"})
	require.NoError(t, err)

	done, err := service.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, done.Status)
	assert.Equal(t, now, done.CompletedAt)

	open, err := service.ListTasks(ctx, domain.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestTaskServiceMissingTaskWrapsNotFound(t *testing.T) {
	t.Parallel()

	service, _ := newTestTaskService(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))

	_, err := service.UpdateTask(context.Background(), "TSK-404", domain.TaskPatch{Title: ptr("x")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTaskNotFound))

	_, err = service.DeleteTask(context.Background(), "TSK-404")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskServiceAnalysis(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, store := newTestTaskService(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))

	empty, err := service.Analysis(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.CompletionRate)

	for _, task := range []domain.Task{
		{ID: "TSK-001", Priority: domain.PriorityHigh, Status: domain.TaskStatusCompleted, EstimatedHours: 1},
		{ID: "TSK-002", Priority: domain.PriorityHigh, EstimatedHours: 2},
		{ID: "TSK-003", Priority: domain.PriorityLow, EstimatedHours: 3},
		{ID: "TSK-004", Priority: domain.PriorityMedium, Status: domain.TaskStatusCancelled, EstimatedHours: 4},
	} {
		_, err := store.Create(ctx, task)
		require.NoError(t, err)
	}

	analysis, err := service.Analysis(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, analysis.CompletionRate, 0.0001)
	assert.InDelta(t, 50.0, analysis.PriorityDistribution[domain.PriorityHigh], 0.0001)
	assert.InDelta(t, 5.0, analysis.OpenEstimatedHours, 0.0001)

	digests, err := service.TasksForAnalysis(ctx)
	require.NoError(t, err)
	assert.Len(t, digests, 4)
}
