// Package agent holds the schedule agents: the query branches, the analyst,
// the critic/adjuster pair and the coordinator that routes requests.
package agent

type OverduePolicy string

const (
	OverduePromote         OverduePolicy = "promote"
	OverdueCancelCandidate OverduePolicy = "cancel_candidate"
)

// Settings are the planning knobs shared by the agents.
type Settings struct {
	DailyCapacityHours float64
	WorkStartHour      int
	WorkEndHour        int
	UpcomingHours      float64
	OverduePolicy      OverduePolicy
}

func DefaultSettings() Settings {
	return Settings{
		DailyCapacityHours: 8,
		WorkStartHour:      9,
		WorkEndHour:        18,
		UpcomingHours:      24,
		OverduePolicy:      OverduePromote,
	}
}

func (s Settings) withDefaults() Settings {
	defaults := DefaultSettings()
	if s.DailyCapacityHours <= 0 {
		s.DailyCapacityHours = defaults.DailyCapacityHours
	}
	if s.WorkEndHour <= s.WorkStartHour {
		s.WorkStartHour, s.WorkEndHour = defaults.WorkStartHour, defaults.WorkEndHour
	}
	if s.UpcomingHours <= 0 {
		s.UpcomingHours = defaults.UpcomingHours
	}
	if s.OverduePolicy == "" {
		s.OverduePolicy = defaults.OverduePolicy
	}
	return s
}

const (
	ownerCalendar  = "calendar_agent"
	ownerTasks     = "task_agent"
	ownerReminders = "reminder_agent"
	ownerAnalysis  = "analysis_agent"
	ownerCritic    = "critic_agent"
	ownerAdjuster  = "adjuster_agent"
	ownerHabits    = "habit_learner"
)
