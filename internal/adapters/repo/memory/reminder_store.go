package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
)

type ReminderStore struct {
	mu        sync.RWMutex
	reminders map[domain.ReminderID]domain.Reminder
	opts      options
}

var _ ports.ReminderRepository = (*ReminderStore)(nil)

func NewReminderStore(opts ...Option) *ReminderStore {
	return &ReminderStore{reminders: map[domain.ReminderID]domain.Reminder{}, opts: buildOptions(opts)}
}

func (s *ReminderStore) Create(ctx context.Context, reminder domain.Reminder) (domain.ReminderID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if reminder.ID == "" {
		reminder.ID = domain.ReminderID(s.opts.newID(domain.ReminderIDPrefix))
	}
	if reminder.Status == "" {
		reminder.Status = domain.ReminderStatusActive
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = s.opts.clock.Now()
	}
	s.reminders[reminder.ID] = reminder

	return reminder.ID, nil
}

func (s *ReminderStore) Get(ctx context.Context, id domain.ReminderID) (domain.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return domain.Reminder{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	reminder, ok := s.reminders[id]
	if !ok {
		return domain.Reminder{}, domain.ErrReminderNotFound
	}
	return reminder, nil
}

func (s *ReminderStore) Update(ctx context.Context, id domain.ReminderID, patch domain.ReminderPatch) (domain.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return domain.Reminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reminder, ok := s.reminders[id]
	if !ok {
		return domain.Reminder{}, domain.ErrReminderNotFound
	}
	patch.Apply(&reminder, s.opts.clock.Now())
	s.reminders[id] = reminder

	return reminder, nil
}

func (s *ReminderStore) Delete(ctx context.Context, id domain.ReminderID) (domain.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return domain.Reminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reminder, ok := s.reminders[id]
	if !ok {
		return domain.Reminder{}, domain.ErrReminderNotFound
	}
	delete(s.reminders, id)

	return reminder, nil
}

func (s *ReminderStore) List(ctx context.Context, filter domain.ReminderFilter) ([]domain.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	reminders := make([]domain.Reminder, 0, len(s.reminders))
	for _, reminder := range s.reminders {
		if filter.Match(reminder) {
			reminders = append(reminders, reminder)
		}
	}

	sort.Slice(reminders, func(i, j int) bool {
		if reminders[i].ReminderTime != reminders[j].ReminderTime {
			return reminders[i].ReminderTime < reminders[j].ReminderTime
		}
		return reminders[i].ID < reminders[j].ID
	})

	return reminders, nil
}
