package agent

import (
	"regexp"
	"strings"
)

type Route string

const (
	RoutePlan           Route = "plan"
	RouteAnalyze        Route = "analyze"
	RouteHabits         Route = "habits"
	RouteEvents         Route = "events"
	RouteTasks          Route = "tasks"
	RouteReminders      Route = "reminders"
	RouteCompleteTask   Route = "complete_task"
	RouteCancelReminder Route = "cancel_reminder"
	RouteHelp           Route = "help"
)

var (
	taskIDPattern     = regexp.MustCompile(`(?i)\bTSK-[0-9A-Z]+\b`)
	reminderIDPattern = regexp.MustCompile(`(?i)\bREM-[0-9A-Z]+\b`)
)

// Order matters: the first matching keyword set wins.
var routeKeywords = []struct {
	route Route
	words []string
}{
	{RoutePlan, []string{"plan", "今日規劃", "今日行程", "今天要做什麼", "規劃"}},
	{RouteAnalyze, []string{"analy", "statistic", "stats", "分析", "統計"}},
	{RouteHabits, []string{"habit", "preference", "習慣", "偏好"}},
	{RouteReminders, []string{"remind", "提醒"}},
	{RouteTasks, []string{"task", "todo", "待辦", "任務"}},
	{RouteEvents, []string{"event", "schedule", "calendar", "meeting", "行程", "日程", "會議"}},
}

var (
	completeWords = []string{"complete", "done", "finish", "完成"}
	cancelWords   = []string{"cancel", "取消"}
)

// Resolve maps a free-text request to a route. Id-carrying routes also
// return the upper-cased id.
func Resolve(input string) (Route, string) {
	lower := strings.ToLower(strings.TrimSpace(input))

	if id := taskIDPattern.FindString(input); id != "" && containsAny(lower, completeWords) {
		return RouteCompleteTask, strings.ToUpper(id)
	}
	if id := reminderIDPattern.FindString(input); id != "" && containsAny(lower, cancelWords) {
		return RouteCancelReminder, strings.ToUpper(id)
	}

	for _, entry := range routeKeywords {
		if containsAny(lower, entry.words) {
			return entry.route, ""
		}
	}
	return RouteHelp, ""
}

// containsAny reports whether any word occurs in s. ASCII keywords are stems
// and must start a word, so "plan" matches "planning" but not "explain".
func containsAny(s string, words []string) bool {
	for _, word := range words {
		if isASCIIWord(word) {
			if startsWord(s, word) {
				return true
			}
			continue
		}
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}

func startsWord(s, word string) bool {
	for offset := 0; offset <= len(s); {
		idx := strings.Index(s[offset:], word)
		if idx < 0 {
			return false
		}
		at := offset + idx
		if at == 0 || !isASCIIAlnum(s[at-1]) {
			return true
		}
		offset = at + 1
	}
	return false
}

func isASCIIWord(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] >= 0x80 {
			return false
		}
	}
	return true
}

func isASCIIAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
