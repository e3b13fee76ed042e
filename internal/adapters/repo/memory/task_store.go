package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
)

type TaskStore struct {
	mu    sync.RWMutex
	tasks map[domain.TaskID]domain.Task
	opts  options
}

var _ ports.TaskRepository = (*TaskStore)(nil)

func NewTaskStore(opts ...Option) *TaskStore {
	return &TaskStore{tasks: map[domain.TaskID]domain.Task{}, opts: buildOptions(opts)}
}

func (s *TaskStore) Create(ctx context.Context, task domain.Task) (domain.TaskID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == "" {
		task.ID = domain.TaskID(s.opts.newID(domain.TaskIDPrefix))
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusTodo
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.opts.clock.Now()
	}
	if task.Status == domain.TaskStatusCompleted && task.CompletedAt.IsZero() {
		task.CompletedAt = task.CreatedAt
	}
	task.Tags = append([]string(nil), task.Tags...)
	s.tasks[task.ID] = task

	return task.ID, nil
}

func (s *TaskStore) Get(ctx context.Context, id domain.TaskID) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (s *TaskStore) Update(ctx context.Context, id domain.TaskID, patch domain.TaskPatch) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	task = cloneTask(task)
	now := s.opts.clock.Now()
	patch.Apply(&task, now)
	task.UpdatedAt = now
	s.tasks[id] = task

	return cloneTask(task), nil
}

func (s *TaskStore) Delete(ctx context.Context, id domain.TaskID) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	delete(s.tasks, id)

	return task, nil
}

func (s *TaskStore) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if filter.Match(task) {
			tasks = append(tasks, cloneTask(task))
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		return domain.LessTask(tasks[i], tasks[j])
	})

	return tasks, nil
}

// cloneTask copies the tag slice so callers never alias store memory.
func cloneTask(task domain.Task) domain.Task {
	if task.Tags != nil {
		task.Tags = append([]string{}, task.Tags...)
	}
	return task
}
