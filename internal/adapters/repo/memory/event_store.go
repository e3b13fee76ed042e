package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
)

type EventStore struct {
	mu     sync.RWMutex
	events map[domain.EventID]domain.Event
	opts   options
}

var _ ports.EventRepository = (*EventStore)(nil)

func NewEventStore(opts ...Option) *EventStore {
	return &EventStore{events: map[domain.EventID]domain.Event{}, opts: buildOptions(opts)}
}

// Create stores the event. A non-empty event.ID is kept as is, which is how
// seed data gets stable ids.
func (s *EventStore) Create(ctx context.Context, event domain.Event) (domain.EventID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == "" {
		event.ID = domain.EventID(s.opts.newID(domain.EventIDPrefix))
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.opts.clock.Now()
	}
	s.events[event.ID] = event

	return event.ID, nil
}

func (s *EventStore) Get(ctx context.Context, id domain.EventID) (domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return domain.Event{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *EventStore) Update(ctx context.Context, id domain.EventID, patch domain.EventPatch) (domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return domain.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	patch.Apply(&event)
	event.UpdatedAt = s.opts.clock.Now()
	s.events[id] = event

	return event, nil
}

func (s *EventStore) Delete(ctx context.Context, id domain.EventID) (domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return domain.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	delete(s.events, id)

	return event, nil
}

func (s *EventStore) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]domain.Event, 0, len(s.events))
	for _, event := range s.events {
		if filter.Match(event) {
			events = append(events, event)
		}
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		if events[i].StartTime != events[j].StartTime {
			return events[i].StartTime < events[j].StartTime
		}
		return events[i].ID < events[j].ID
	})

	return events, nil
}
