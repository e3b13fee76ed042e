package ports

import (
	"context"

	"github.com/bnema/schedule-manager-cli/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.EventID, error)
	Get(ctx context.Context, id domain.EventID) (domain.Event, error)
	Update(ctx context.Context, id domain.EventID, patch domain.EventPatch) (domain.Event, error)
	Delete(ctx context.Context, id domain.EventID) (domain.Event, error)
	List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
}
