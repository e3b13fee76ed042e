package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
)

type ReminderService struct {
	reminders ports.ReminderRepository
	clock     ports.Clock
}

func NewReminderService(reminders ports.ReminderRepository, clock ports.Clock) *ReminderService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &ReminderService{reminders: reminders, clock: clock}
}

func (s *ReminderService) SetReminder(ctx context.Context, cmd SetReminderCommand) (domain.Reminder, error) {
	id, err := s.reminders.Create(ctx, domain.Reminder{
		Title:        cmd.Title,
		ReminderTime: cmd.ReminderTime,
		RelatedType:  cmd.RelatedType,
		RelatedID:    cmd.RelatedID,
		Status:       domain.ReminderStatusActive,
		CreatedAt:    s.clock.Now(),
	})
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("create reminder: %w", err)
	}

	reminder, err := s.reminders.Get(ctx, id)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("get created reminder: %w", err)
	}

	return reminder, nil
}

func (s *ReminderService) ListReminders(ctx context.Context, filter domain.ReminderFilter) ([]domain.Reminder, error) {
	reminders, err := s.reminders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	return reminders, nil
}

func (s *ReminderService) CancelReminder(ctx context.Context, id domain.ReminderID) (domain.Reminder, error) {
	return s.setStatus(ctx, id, domain.ReminderStatusCancelled)
}

func (s *ReminderService) CompleteReminder(ctx context.Context, id domain.ReminderID) (domain.Reminder, error) {
	return s.setStatus(ctx, id, domain.ReminderStatusCompleted)
}

func (s *ReminderService) DeleteReminder(ctx context.Context, id domain.ReminderID) (domain.Reminder, error) {
	reminder, err := s.reminders.Delete(ctx, id)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("delete reminder %s: %w", id, err)
	}

	return reminder, nil
}

func (s *ReminderService) setStatus(ctx context.Context, id domain.ReminderID, status domain.ReminderStatus) (domain.Reminder, error) {
	reminder, err := s.reminders.Update(ctx, id, domain.ReminderPatch{Status: &status})
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("set reminder %s %s: %w", id, status, err)
	}

	return reminder, nil
}

// Upcoming returns active reminders with now <= time <= now+horizonHours,
// ascending, each annotated with the time left. Reminder times are read in
// now's location; values that do not parse are skipped.
func (s *ReminderService) Upcoming(ctx context.Context, now time.Time, horizonHours float64) ([]domain.UpcomingReminder, error) {
	if now.IsZero() {
		now = s.clock.Now()
	}

	reminders, err := s.reminders.List(ctx, domain.ReminderFilter{Status: domain.ReminderStatusActive})
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	cutoff := now.Add(time.Duration(horizonHours * float64(time.Hour)))
	upcoming := make([]domain.UpcomingReminder, 0, len(reminders))
	for _, reminder := range reminders {
		at, err := time.ParseInLocation(domain.ReminderTimeLayout, reminder.ReminderTime, now.Location())
		if err != nil {
			continue
		}
		if at.Before(now) || at.After(cutoff) {
			continue
		}
		upcoming = append(upcoming, domain.UpcomingReminder{Reminder: reminder, TimeUntil: at.Sub(now)})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].TimeUntil < upcoming[j].TimeUntil
	})

	return upcoming, nil
}
