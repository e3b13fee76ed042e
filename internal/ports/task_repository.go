package ports

import (
	"context"

	"github.com/bnema/schedule-manager-cli/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.TaskID, error)
	Get(ctx context.Context, id domain.TaskID) (domain.Task, error)
	Update(ctx context.Context, id domain.TaskID, patch domain.TaskPatch) (domain.Task, error)
	Delete(ctx context.Context, id domain.TaskID) (domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
}
