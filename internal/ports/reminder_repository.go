package ports

import (
	"context"

	"github.com/bnema/schedule-manager-cli/internal/domain"
)

type ReminderRepository interface {
	Create(ctx context.Context, reminder domain.Reminder) (domain.ReminderID, error)
	Get(ctx context.Context, id domain.ReminderID) (domain.Reminder, error)
	Update(ctx context.Context, id domain.ReminderID, patch domain.ReminderPatch) (domain.Reminder, error)
	Delete(ctx context.Context, id domain.ReminderID) (domain.Reminder, error)
	List(ctx context.Context, filter domain.ReminderFilter) ([]domain.Reminder, error)
}
