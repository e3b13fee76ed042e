package agent

import (
	"sort"
	"strconv"

	"github.com/bnema/schedule-manager-cli/internal/domain"
)

// PeakHour returns the hour with the most interactions. Ties go to the
// earlier hour; keys that are not hours are ignored.
func PeakHour(hours map[string]int) (hour, count int, ok bool) {
	hour = -1
	for key, n := range hours {
		h, err := strconv.Atoi(key)
		if err != nil || h < 0 || h > 23 || n <= 0 {
			continue
		}
		if n > count || (n == count && h < hour) {
			hour, count = h, n
		}
	}
	return hour, count, hour >= 0
}

// mergeActiveHours sums the latest activity map of every past session other
// than current, then adds current.
func mergeActiveHours(past []domain.SessionSnapshot, currentSession string, current map[string]int) map[string]int {
	sort.SliceStable(past, func(i, j int) bool {
		return past[i].CapturedAt.Before(past[j].CapturedAt)
	})
	latest := map[string]map[string]int{}
	for _, snapshot := range past {
		if snapshot.SessionID == currentSession {
			continue
		}
		latest[snapshot.SessionID] = snapshot.ActiveHours
	}

	merged := map[string]int{}
	for _, hours := range latest {
		for key, n := range hours {
			merged[key] += n
		}
	}
	for key, n := range current {
		merged[key] += n
	}
	return merged
}
