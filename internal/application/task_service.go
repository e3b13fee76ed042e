package application

import (
	"context"
	"fmt"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
)

const defaultEstimatedHours = 1.0

type TaskService struct {
	tasks ports.TaskRepository
	clock ports.Clock
}

func NewTaskService(tasks ports.TaskRepository, clock ports.Clock) *TaskService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &TaskService{tasks: tasks, clock: clock}
}

func (s *TaskService) CreateTask(ctx context.Context, cmd CreateTaskCommand) (domain.Task, error) {
	priority := cmd.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	hours := defaultEstimatedHours
	if cmd.EstimatedHours != nil {
		hours = *cmd.EstimatedHours
	}
	tags := cmd.Tags
	if tags == nil {
		tags = []string{}
	}

	id, err := s.tasks.Create(ctx, domain.Task{
		Title:          cmd.Title,
		Description:    cmd.Description,
		Priority:       priority,
		Status:         domain.TaskStatusTodo,
		DueDate:        cmd.DueDate,
		EstimatedHours: hours,
		Tags:           tags,
		CreatedAt:      s.clock.Now(),
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("get created task: %w", err)
	}

	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id domain.TaskID) (domain.Task, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}

	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id domain.TaskID, patch domain.TaskPatch) (domain.Task, error) {
	task, err := s.tasks.Update(ctx, id, patch)
	if err != nil {
		return domain.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}

	return task, nil
}

func (s *TaskService) CompleteTask(ctx context.Context, id domain.TaskID) (domain.Task, error) {
	status := domain.TaskStatusCompleted
	return s.UpdateTask(ctx, id, domain.TaskPatch{Status: &status})
}

func (s *TaskService) DeleteTask(ctx context.Context, id domain.TaskID) (domain.Task, error) {
	task, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("delete task %s: %w", id, err)
	}

	return task, nil
}

// Statistics aggregates every task in the store, closed ones included.
// Overdue counts open tasks due before today.
func (s *TaskService) Statistics(ctx context.Context) (TaskStatistics, error) {
	tasks, err := s.tasks.List(ctx, domain.TaskFilter{IncludeCompleted: true})
	if err != nil {
		return TaskStatistics{}, fmt.Errorf("list tasks: %w", err)
	}

	return statisticsFor(tasks, s.clock.Now().Format(domain.DateLayout)), nil
}

func (s *TaskService) TasksForAnalysis(ctx context.Context) ([]TaskDigest, error) {
	tasks, err := s.tasks.List(ctx, domain.TaskFilter{IncludeCompleted: true})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	digests := make([]TaskDigest, 0, len(tasks))
	for _, task := range tasks {
		digests = append(digests, TaskDigest{
			ID:             task.ID,
			Title:          task.Title,
			Priority:       task.Priority,
			Status:         task.Status,
			DueDate:        task.DueDate,
			EstimatedHours: task.EstimatedHours,
		})
	}

	return digests, nil
}

func (s *TaskService) Analysis(ctx context.Context) (TaskAnalysis, error) {
	tasks, err := s.tasks.List(ctx, domain.TaskFilter{IncludeCompleted: true})
	if err != nil {
		return TaskAnalysis{}, fmt.Errorf("list tasks: %w", err)
	}

	stats := statisticsFor(tasks, s.clock.Now().Format(domain.DateLayout))
	analysis := TaskAnalysis{
		Statistics:           stats,
		PriorityDistribution: map[domain.Priority]float64{},
	}
	if stats.Total == 0 {
		return analysis, nil
	}

	analysis.CompletionRate = float64(stats.ByStatus[domain.TaskStatusCompleted]) / float64(stats.Total) * 100
	for priority, count := range stats.ByPriority {
		analysis.PriorityDistribution[priority] = float64(count) / float64(stats.Total) * 100
	}
	for _, task := range tasks {
		if !task.Status.Closed() {
			analysis.OpenEstimatedHours += task.EstimatedHours
		}
	}

	return analysis, nil
}

func statisticsFor(tasks []domain.Task, today string) TaskStatistics {
	stats := TaskStatistics{
		Total: len(tasks),
		ByStatus: map[domain.TaskStatus]int{
			domain.TaskStatusTodo:       0,
			domain.TaskStatusInProgress: 0,
			domain.TaskStatusCompleted:  0,
			domain.TaskStatusCancelled:  0,
		},
		ByPriority: map[domain.Priority]int{
			domain.PriorityLow:    0,
			domain.PriorityMedium: 0,
			domain.PriorityHigh:   0,
			domain.PriorityUrgent: 0,
		},
	}

	for _, task := range tasks {
		stats.ByStatus[task.Status]++
		stats.ByPriority[task.Priority]++
		stats.TotalEstimatedHours += task.EstimatedHours
		if task.Overdue(today) {
			stats.OverdueCount++
		}
	}

	return stats
}
