package application

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/adapters/repo/memory"
	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderServiceUpcoming(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	clock := fixedClock{now: now}
	store := memory.NewReminderStore(memory.WithClock(clock))
	service := NewReminderService(store, clock)

	for _, reminder := range []domain.Reminder{
		{ID: "REM-001", Title: "past", ReminderTime: "2024-01-02 08:59"},
		{ID: "REM-002", Title: "now", ReminderTime: "2024-01-02 09:00"},
		{ID: "REM-003", Title: "later", ReminderTime: "2024-01-02 17:00"},
		{ID: "REM-004", Title: "edge", ReminderTime: "2024-01-03 09:00"},
		{ID: "REM-005", Title: "beyond", ReminderTime: "2024-01-03 09:01"},
		{ID: "REM-006", Title: "broken", ReminderTime: "tomorrow-ish"},
		{ID: "REM-007", Title: "cancelled", ReminderTime: "2024-01-02 10:00", Status: domain.ReminderStatusCancelled},
	} {
		_, err := store.Create(ctx, reminder)
		require.NoError(t, err)
	}

	upcoming, err := service.Upcoming(ctx, now, 24)
	require.NoError(t, err)

	var titles []string
	for _, reminder := range upcoming {
		titles = append(titles, reminder.Title)
	}
	assert.Equal(t, []string{"now", "later", "edge"}, titles)
	assert.Equal(t, time.Duration(0), upcoming[0].TimeUntil)
	assert.Equal(t, 8*time.Hour, upcoming[1].TimeUntil)
	assert.Equal(t, 24*time.Hour, upcoming[2].TimeUntil)
}

func TestReminderServiceUpcomingDefaultsToClock(t *testing.T) {
	t.Parallel()

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
	store := memory.NewReminderStore(memory.WithClock(fixedClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}))
	service := NewReminderService(store, clock)

	_, err := store.Create(context.Background(), domain.Reminder{Title: "soon", ReminderTime: "2024-01-02 10:00"})
	require.NoError(t, err)

	upcoming, err := service.Upcoming(context.Background(), time.Time{}, 2)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, time.Hour, upcoming[0].TimeUntil)
}

func TestReminderServiceCancelAndComplete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	clock := fixedClock{now: now}
	service := NewReminderService(memory.NewReminderStore(memory.WithClock(clock)), clock)

	first, err := service.SetReminder(ctx, SetReminderCommand{Title: "call", ReminderTime: "2024-01-02 10:00"})
	require.NoError(t, err)
	second, err := service.SetReminder(ctx, SetReminderCommand{Title: "pay", ReminderTime: "2024-01-02 11:00", RelatedType: domain.RelatedTask, RelatedID: "TSK-001"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReminderStatusActive, first.Status)

	cancelled, err := service.CancelReminder(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReminderStatusCancelled, cancelled.Status)

	completed, err := service.CompleteReminder(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, now, completed.CompletedAt)

	active, err := service.ListReminders(ctx, domain.ReminderFilter{})
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = service.CancelReminder(ctx, "REM-404")
	assert.ErrorIs(t, err, domain.ErrReminderNotFound)
}
