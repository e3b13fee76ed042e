package application

import (
	"context"
	"fmt"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
)

type CalendarService struct {
	events ports.EventRepository
	clock  ports.Clock
}

func NewCalendarService(events ports.EventRepository, clock ports.Clock) *CalendarService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &CalendarService{events: events, clock: clock}
}

// AddEvent stores the event as given. Date and time formats and the
// start < end ordering are not checked.
func (s *CalendarService) AddEvent(ctx context.Context, cmd AddEventCommand) (domain.Event, error) {
	id, err := s.events.Create(ctx, domain.Event{
		Title:       cmd.Title,
		Date:        cmd.Date,
		StartTime:   cmd.StartTime,
		EndTime:     cmd.EndTime,
		Location:    cmd.Location,
		Description: cmd.Description,
		CreatedAt:   s.clock.Now(),
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("create event: %w", err)
	}

	event, err := s.events.Get(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("get created event: %w", err)
	}

	return event, nil
}

func (s *CalendarService) QueryEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}

func (s *CalendarService) TodaySchedule(ctx context.Context) ([]domain.Event, error) {
	return s.QueryEvents(ctx, domain.EventFilter{Date: s.clock.Now().Format(domain.DateLayout)})
}

func (s *CalendarService) GetEvent(ctx context.Context, id domain.EventID) (domain.Event, error) {
	event, err := s.events.Get(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("get event %s: %w", id, err)
	}

	return event, nil
}

func (s *CalendarService) UpdateEvent(ctx context.Context, id domain.EventID, patch domain.EventPatch) (domain.Event, error) {
	event, err := s.events.Update(ctx, id, patch)
	if err != nil {
		return domain.Event{}, fmt.Errorf("update event %s: %w", id, err)
	}

	return event, nil
}

func (s *CalendarService) DeleteEvent(ctx context.Context, id domain.EventID) (domain.Event, error) {
	event, err := s.events.Delete(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("delete event %s: %w", id, err)
	}

	return event, nil
}

// CheckTimeConflict returns every event on date whose interval overlaps
// [start, end).
func (s *CalendarService) CheckTimeConflict(ctx context.Context, date, start, end string) (ConflictReport, error) {
	events, err := s.events.List(ctx, domain.EventFilter{Date: date})
	if err != nil {
		return ConflictReport{}, fmt.Errorf("list events on %s: %w", date, err)
	}

	report := ConflictReport{Conflicts: []Conflict{}}
	for _, event := range events {
		if !domain.Overlaps(start, end, event.StartTime, event.EndTime) {
			continue
		}
		report.Conflicts = append(report.Conflicts, Conflict{
			EventID: event.ID,
			Title:   event.Title,
			Time:    event.StartTime + "-" + event.EndTime,
		})
	}
	report.HasConflict = len(report.Conflicts) > 0

	return report, nil
}
