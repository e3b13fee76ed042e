package domain

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityRankAndDemote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		priority Priority
		rank     int
		demoted  Priority
	}{
		{name: "urgent", priority: PriorityUrgent, rank: 0, demoted: PriorityHigh},
		{name: "high", priority: PriorityHigh, rank: 1, demoted: PriorityMedium},
		{name: "medium", priority: PriorityMedium, rank: 2, demoted: PriorityLow},
		{name: "low stays low", priority: PriorityLow, rank: 3, demoted: PriorityLow},
		{name: "unknown ranks last", priority: Priority("someday"), rank: 4, demoted: PriorityLow},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.rank, tc.priority.Rank())
			assert.Equal(t, tc.demoted, tc.priority.Demote())
		})
	}
}

func TestLessTaskSortsByRankThenDueDateWithUnsetLast(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "TSK-5", Priority: PriorityLow, DueDate: "2024-01-01"},
		{ID: "TSK-4", Priority: PriorityHigh},
		{ID: "TSK-3", Priority: PriorityHigh, DueDate: "2024-01-05"},
		{ID: "TSK-2", Priority: PriorityUrgent, DueDate: "2024-02-01"},
		{ID: "TSK-1", Priority: PriorityHigh, DueDate: "2024-01-02"},
	}

	sort.Slice(tasks, func(i, j int) bool { return LessTask(tasks[i], tasks[j]) })

	ids := make([]TaskID, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []TaskID{"TSK-2", "TSK-1", "TSK-3", "TSK-4", "TSK-5"}, ids)
}

func TestTaskPatchIsIdempotent(t *testing.T) {
	t.Parallel()

	first := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	priority := PriorityUrgent
	status := TaskStatusCompleted
	hours := 2.5
	patch := TaskPatch{Priority: &priority, Status: &status, EstimatedHours: &hours, AddTags: []string{TagReschedule}}

	task := Task{ID: "TSK-001", Title: "report", Priority: PriorityHigh, Status: TaskStatusTodo}
	patch.Apply(&task, first)
	once := task
	once.Tags = append([]string(nil), task.Tags...)
	patch.Apply(&task, second)

	assert.Equal(t, once, task)
	assert.Equal(t, first, task.CompletedAt)
	assert.Equal(t, []string{TagReschedule}, task.Tags)
}

func TestTaskPatchLeavesOmittedFieldsUntouched(t *testing.T) {
	t.Parallel()

	title := ""
	description := "new description"
	task := Task{ID: "TSK-001", Title: "keep", Description: "old", Priority: PriorityLow, DueDate: "2024-01-01"}

	TaskPatch{Title: &title, Description: &description}.Apply(&task, time.Now())

	assert.Equal(t, "keep", task.Title)
	assert.Equal(t, "new description", task.Description)
	assert.Equal(t, PriorityLow, task.Priority)
	assert.Equal(t, "2024-01-01", task.DueDate)
}

func TestTaskFilterExcludesClosedByDefault(t *testing.T) {
	t.Parallel()

	completed := Task{Status: TaskStatusCompleted}
	cancelled := Task{Status: TaskStatusCancelled}
	open := Task{Status: TaskStatusInProgress}

	require.False(t, TaskFilter{}.Match(completed))
	require.False(t, TaskFilter{}.Match(cancelled))
	require.True(t, TaskFilter{}.Match(open))
	assert.True(t, TaskFilter{IncludeCompleted: true}.Match(completed))
	assert.False(t, TaskFilter{IncludeCompleted: true, Status: TaskStatusTodo}.Match(completed))
}

func TestTaskOverdue(t *testing.T) {
	t.Parallel()

	assert.True(t, Task{DueDate: "2024-01-01", Status: TaskStatusTodo}.Overdue("2024-01-02"))
	assert.False(t, Task{DueDate: "2024-01-02", Status: TaskStatusTodo}.Overdue("2024-01-02"))
	assert.False(t, Task{DueDate: "2024-01-01", Status: TaskStatusCompleted}.Overdue("2024-01-02"))
	assert.False(t, Task{Status: TaskStatusTodo}.Overdue("2024-01-02"))
}
