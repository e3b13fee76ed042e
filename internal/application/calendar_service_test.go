package application

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/adapters/repo/memory"
	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarServiceCheckTimeConflict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := fixedClock{now: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)}
	service := NewCalendarService(memory.NewEventStore(memory.WithClock(clock)), clock)

	for _, cmd := range []AddEventCommand{
		{Title: "standup", Date: "2024-01-02", StartTime: "10:00", EndTime: "11:00"},
		{Title: "review", Date: "2024-01-02", StartTime: "14:00", EndTime: "16:00"},
		{Title: "tomorrow", Date: "2024-01-03", StartTime: "10:00", EndTime: "11:00"},
	} {
		_, err := service.AddEvent(ctx, cmd)
		require.NoError(t, err)
	}

	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{name: "inside first", start: "10:30", end: "10:45", want: []string{"standup"}},
		{name: "back to back", start: "11:00", end: "14:00", want: nil},
		{name: "spans both", start: "09:00", end: "15:00", want: []string{"standup", "review"}},
		{name: "before all", start: "08:00", end: "10:00", want: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			report, err := service.CheckTimeConflict(ctx, "2024-01-02", tc.start, tc.end)
			require.NoError(t, err)

			var titles []string
			for _, conflict := range report.Conflicts {
				titles = append(titles, conflict.Title)
			}
			assert.Equal(t, tc.want, titles)
			assert.Equal(t, len(tc.want) > 0, report.HasConflict)
		})
	}
}

func TestCalendarServiceTodaySchedule(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := fixedClock{now: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)}
	service := NewCalendarService(memory.NewEventStore(memory.WithClock(clock)), clock)

	_, err := service.AddEvent(ctx, AddEventCommand{Title: "late", Date: "2024-01-02", StartTime: "15:00", EndTime: "16:00"})
	require.NoError(t, err)
	_, err = service.AddEvent(ctx, AddEventCommand{Title: "early", Date: "2024-01-02", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	_, err = service.AddEvent(ctx, AddEventCommand{Title: "other day", Date: "2024-01-05", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)

	events, err := service.TodaySchedule(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "early", events[0].Title)
	assert.Equal(t, "late", events[1].Title)

	_, err = service.DeleteEvent(ctx, "EVT-404")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}
