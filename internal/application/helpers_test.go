package application

import (
	"time"

	"github.com/bnema/schedule-manager-cli/internal/adapters/repo/memory"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newTestTaskService(now time.Time) (*TaskService, *memory.TaskStore) {
	clock := fixedClock{now: now}
	store := memory.NewTaskStore(memory.WithClock(clock))
	return NewTaskService(store, clock), store
}

func ptr[T any](v T) *T {
	return &v
}
