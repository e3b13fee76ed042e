package ports

import (
	"context"

	"github.com/bnema/schedule-manager-cli/internal/domain"
)

type MemorySink interface {
	Store(ctx context.Context, snapshot domain.SessionSnapshot) error
	Load(ctx context.Context, userID string) ([]domain.SessionSnapshot, error)
}
