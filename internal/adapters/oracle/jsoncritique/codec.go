// Package jsoncritique builds model prompts from a plan snapshot and decodes
// the critique a model sends back.
package jsoncritique

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/schedule-manager-cli/internal/domain"
)

var ErrNoJSON = errors.New("no JSON object in model output")

const CriticInstruction = `You are a strict schedule reviewer. Check the plan for:
1. priority_conflict: several high or urgent tasks due the same day
2. time_conflict: overlapping events, or events clashing with task deadlines
3. overload: more open work on a day than the daily capacity hours
4. overdue: open tasks past their due date
Answer with JSON only:
{"is_optimal": bool, "issues": [{"type": "priority_conflict|time_conflict|overload|overdue", "description": string, "affected_items": [ids or YYYY-MM-DD days]}], "suggestions": [string]}
Set is_optimal to true only when there are no issues.`

const SummaryInstruction = `You are a planning assistant. Summarize the day from the plan data:
today's schedule, open tasks by priority with due dates, upcoming reminders,
conflict warnings, and two or three concrete suggestions. Plain text, short
lines, no JSON.`

// Decode extracts the critique from raw model text. Code fences and text
// around the outermost JSON object are ignored.
func Decode(text string) (domain.Critique, error) {
	body := strings.TrimSpace(text)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")

	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end < start {
		return domain.Critique{}, ErrNoJSON
	}

	var critique domain.Critique
	if err := json.Unmarshal([]byte(body[start:end+1]), &critique); err != nil {
		return domain.Critique{}, fmt.Errorf("decode critique: %w", err)
	}
	if critique.Issues == nil {
		critique.Issues = []domain.Issue{}
	}
	if critique.Suggestions == nil {
		critique.Suggestions = []string{}
	}
	return critique, nil
}

type promptEvent struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Date            string `json:"date"`
	Start           string `json:"start_time"`
	End             string `json:"end_time"`
	Location        string `json:"location,omitempty"`
	NeedsReschedule bool   `json:"needs_reschedule,omitempty"`
}

type promptTask struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Priority       string   `json:"priority"`
	Status         string   `json:"status"`
	DueDate        string   `json:"due_date,omitempty"`
	EstimatedHours float64  `json:"estimated_hours"`
	Tags           []string `json:"tags,omitempty"`
}

type promptReminder struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Time  string `json:"reminder_time"`
}

type promptPlan struct {
	Today              string             `json:"today"`
	Iteration          int                `json:"iteration,omitempty"`
	DailyCapacityHours float64            `json:"daily_capacity_hours"`
	WorkHours          string             `json:"work_hours"`
	Events             []promptEvent      `json:"events"`
	Tasks              []promptTask       `json:"tasks"`
	Reminders          []promptReminder   `json:"reminders"`
	Summary            string             `json:"daily_summary,omitempty"`
	PreviousAdjustment *domain.Adjustment `json:"previous_adjustment,omitempty"`
}

// Prompt renders the snapshot as the JSON document sent to a model.
// Unavailable sections are encoded as null.
func Prompt(snapshot domain.PlanSnapshot) (string, error) {
	plan := promptPlan{
		Today:              snapshot.Today,
		Iteration:          snapshot.Iteration,
		DailyCapacityHours: snapshot.DailyCapacityHours,
		WorkHours:          fmt.Sprintf("%02d:00-%02d:00", snapshot.WorkStartHour, snapshot.WorkEndHour),
		Summary:            snapshot.Summary,
		PreviousAdjustment: snapshot.PreviousAdjustment,
	}
	if snapshot.Events != nil {
		plan.Events = make([]promptEvent, 0, len(snapshot.Events))
		for _, event := range snapshot.Events {
			plan.Events = append(plan.Events, promptEvent{
				ID:              string(event.ID),
				Title:           event.Title,
				Date:            event.Date,
				Start:           event.StartTime,
				End:             event.EndTime,
				Location:        event.Location,
				NeedsReschedule: event.NeedsReschedule,
			})
		}
	}
	if snapshot.Tasks != nil {
		plan.Tasks = make([]promptTask, 0, len(snapshot.Tasks))
		for _, task := range snapshot.Tasks {
			plan.Tasks = append(plan.Tasks, promptTask{
				ID:             string(task.ID),
				Title:          task.Title,
				Priority:       string(task.Priority),
				Status:         string(task.Status),
				DueDate:        task.DueDate,
				EstimatedHours: task.EstimatedHours,
				Tags:           task.Tags,
			})
		}
	}
	if snapshot.Reminders != nil {
		plan.Reminders = make([]promptReminder, 0, len(snapshot.Reminders))
		for _, reminder := range snapshot.Reminders {
			plan.Reminders = append(plan.Reminders, promptReminder{
				ID:    string(reminder.ID),
				Title: reminder.Title,
				Time:  reminder.ReminderTime,
			})
		}
	}

	raw, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode plan prompt: %w", err)
	}
	return string(raw), nil
}
