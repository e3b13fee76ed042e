package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/application"
	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
	"github.com/bnema/schedule-manager-cli/internal/session"
	"github.com/bnema/schedule-manager-cli/internal/workflow"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultUserID = "default_user"

type Planner interface {
	Run(ctx context.Context, state *session.State) (workflow.PlanReport, error)
}

type Reply struct {
	Route  Route
	Text   string
	Plan   *workflow.PlanReport
	Result *domain.Result
}

type Dependencies struct {
	Tools     *Tools
	Calendar  *application.CalendarService
	Tasks     *application.TaskService
	Reminders *application.ReminderService
	Planner   Planner
	Memory    ports.MemorySink
	Clock     ports.Clock
	Settings  Settings
	Logger    *zap.Logger
	UserID    string
}

// Coordinator routes one request at a time within a session and records
// the user's activity after every interaction.
type Coordinator struct {
	deps      Dependencies
	state     *session.State
	sessionID string
}

func NewCoordinator(deps Dependencies) *Coordinator {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.UserID == "" {
		deps.UserID = DefaultUserID
	}
	deps.Settings = deps.Settings.withDefaults()

	return &Coordinator{
		deps:      deps,
		state:     session.New(),
		sessionID: NewSessionID(),
	}
}

// NewSessionID returns a short random session id.
func NewSessionID() string {
	return "schedule_session_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (c *Coordinator) SessionID() string {
	return c.sessionID
}

func (c *Coordinator) State() *session.State {
	return c.state
}

func (c *Coordinator) Handle(ctx context.Context, input string) (Reply, error) {
	route, id := Resolve(input)
	reply, err := c.dispatch(ctx, route, id)
	reply.Route = route
	if err != nil {
		reply.Text = "error: " + err.Error()
	}

	c.learnHabits(ctx, input, reply)
	return reply, err
}

func (c *Coordinator) dispatch(ctx context.Context, route Route, id string) (Reply, error) {
	switch route {
	case RoutePlan:
		if c.deps.Planner == nil {
			return Reply{}, fmt.Errorf("daily planning is not configured")
		}
		report, err := c.deps.Planner.Run(ctx, c.state)
		if err != nil {
			return Reply{}, fmt.Errorf("run daily planning: %w", err)
		}
		return Reply{Text: report.Summary, Plan: &report}, nil
	case RouteAnalyze:
		return c.analyze(ctx)
	case RouteHabits:
		return c.habits(ctx)
	case RouteEvents:
		return c.events(ctx)
	case RouteTasks:
		return c.tasks(ctx)
	case RouteReminders:
		return c.reminders(ctx)
	case RouteCompleteTask:
		result := c.deps.Tools.CompleteTask(ctx, domain.TaskID(id))
		return Reply{Text: result.Message, Result: &result}, nil
	case RouteCancelReminder:
		result := c.deps.Tools.CancelReminder(ctx, domain.ReminderID(id))
		return Reply{Text: result.Message, Result: &result}, nil
	default:
		return Reply{Text: HelpText}, nil
	}
}

const HelpText = `You can ask for:
  - "plan my day" / "今日規劃"          run the daily planning pipeline
  - "today's schedule" / "今天有什麼行程"  list today's events
  - "list tasks" / "待辦任務"            list open tasks
  - "upcoming reminders" / "提醒"        reminders in the next hours
  - "analyze tasks" / "任務統計"         completion rate and workload
  - "my habits" / "我的習慣"             your most active hours
  - "complete TSK-001" / "cancel REM-001"
Type exit or quit to leave.`

func (c *Coordinator) analyze(ctx context.Context) (Reply, error) {
	analysis, err := c.deps.Tasks.Analysis(ctx)
	if err != nil {
		return Reply{}, err
	}

	stats := analysis.Statistics
	var b strings.Builder
	fmt.Fprintf(&b, "Tasks: %d total, %d overdue\n", stats.Total, stats.OverdueCount)
	fmt.Fprintf(&b, "Completion rate: %.1f%%\n", analysis.CompletionRate)
	fmt.Fprintf(&b, "Status: todo %d, in progress %d, completed %d, cancelled %d\n",
		stats.ByStatus[domain.TaskStatusTodo], stats.ByStatus[domain.TaskStatusInProgress],
		stats.ByStatus[domain.TaskStatusCompleted], stats.ByStatus[domain.TaskStatusCancelled])
	fmt.Fprintf(&b, "Priority: urgent %.0f%%, high %.0f%%, medium %.0f%%, low %.0f%%\n",
		analysis.PriorityDistribution[domain.PriorityUrgent], analysis.PriorityDistribution[domain.PriorityHigh],
		analysis.PriorityDistribution[domain.PriorityMedium], analysis.PriorityDistribution[domain.PriorityLow])
	fmt.Fprintf(&b, "Open work: %.1fh of %.1fh estimated", analysis.OpenEstimatedHours, stats.TotalEstimatedHours)

	return Reply{Text: b.String()}, nil
}

func (c *Coordinator) habits(ctx context.Context) (Reply, error) {
	current, _ := session.Lookup[map[string]int](c.state, session.SlotActiveHours)

	var past []domain.SessionSnapshot
	if c.deps.Memory != nil {
		loaded, err := c.deps.Memory.Load(ctx, c.deps.UserID)
		if err != nil {
			c.deps.Logger.Warn("load long-term memory", zap.Error(err))
		} else {
			past = loaded
		}
	}

	hour, count, ok := PeakHour(mergeActiveHours(past, c.sessionID, current))
	if !ok {
		return Reply{Text: "Not enough history yet to suggest a focus time."}, nil
	}
	return Reply{Text: fmt.Sprintf("You are most active around %02d:00 (%d interactions). Consider handling important tasks then.", hour, count)}, nil
}

func (c *Coordinator) events(ctx context.Context) (Reply, error) {
	events, err := c.deps.Calendar.TodaySchedule(ctx)
	if err != nil {
		return Reply{}, err
	}
	if len(events) == 0 {
		return Reply{Text: "No events today."}, nil
	}

	lines := []string{"Today's schedule:"}
	lines = append(lines, FormatEvents(events)...)
	return Reply{Text: strings.Join(lines, "\n")}, nil
}

func (c *Coordinator) tasks(ctx context.Context) (Reply, error) {
	tasks, err := c.deps.Tasks.ListTasks(ctx, domain.TaskFilter{})
	if err != nil {
		return Reply{}, err
	}
	if len(tasks) == 0 {
		return Reply{Text: "No open tasks."}, nil
	}

	lines := []string{"Open tasks (by priority):"}
	lines = append(lines, FormatTasks(tasks)...)
	return Reply{Text: strings.Join(lines, "\n")}, nil
}

func (c *Coordinator) reminders(ctx context.Context) (Reply, error) {
	upcoming, err := c.deps.Reminders.Upcoming(ctx, c.deps.Clock.Now(), c.deps.Settings.UpcomingHours)
	if err != nil {
		return Reply{}, err
	}
	if len(upcoming) == 0 {
		return Reply{Text: fmt.Sprintf("No reminders in the next %.0f hours.", c.deps.Settings.UpcomingHours)}, nil
	}

	lines := []string{"Upcoming reminders:"}
	lines = append(lines, FormatReminders(upcoming)...)
	return Reply{Text: strings.Join(lines, "\n")}, nil
}

// learnHabits bumps the active-hour counter and hands the session to the
// memory sink. Sink failures are logged only.
func (c *Coordinator) learnHabits(ctx context.Context, input string, reply Reply) {
	now := c.deps.Clock.Now()

	hours := map[string]int{}
	if current, ok := session.Lookup[map[string]int](c.state, session.SlotActiveHours); ok {
		for key, n := range current {
			hours[key] = n
		}
	}
	hours[strconv.Itoa(now.Hour())]++
	if err := c.state.Set(ownerHabits, session.SlotActiveHours, hours); err != nil {
		c.deps.Logger.Warn("record active hours", zap.Error(err))
		return
	}

	if c.deps.Memory == nil {
		return
	}
	snapshot := domain.SessionSnapshot{
		SessionID:   c.sessionID,
		UserID:      c.deps.UserID,
		Request:     input,
		Route:       string(reply.Route),
		Response:    reply.Text,
		ActiveHours: hours,
		Slots:       slotText(c.state.Snapshot()),
		CapturedAt:  now,
	}
	if err := c.deps.Memory.Store(ctx, snapshot); err != nil {
		c.deps.Logger.Warn("store session in long-term memory",
			zap.String("session_id", c.sessionID),
			zap.Error(err),
		)
		return
	}
	c.deps.Logger.Debug("session stored in long-term memory", zap.String("session_id", c.sessionID))
}

func slotText(slots map[string]any) map[string]string {
	out := make(map[string]string, len(slots))
	for slot, value := range slots {
		if slot == session.SlotActiveHours {
			continue
		}
		if text, ok := value.(string); ok {
			out[slot] = text
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			continue
		}
		out[slot] = string(raw)
	}
	return out
}

func FormatEvents(events []domain.Event) []string {
	lines := make([]string, 0, len(events))
	for _, event := range events {
		line := fmt.Sprintf("- %s-%s %s", event.StartTime, event.EndTime, event.Title)
		if event.Location != "" {
			line += " @ " + event.Location
		}
		line += fmt.Sprintf(" (%s)", event.ID)
		if event.NeedsReschedule {
			line += " [needs reschedule]"
		}
		lines = append(lines, line)
	}
	return lines
}

func FormatTasks(tasks []domain.Task) []string {
	lines := make([]string, 0, len(tasks))
	for i, task := range tasks {
		due := task.DueDate
		if due == "" {
			due = "no due date"
		}
		line := fmt.Sprintf("%d. [%s] %s - due %s, %.1fh (%s)", i+1, task.Priority, task.Title, due, task.EstimatedHours, task.ID)
		if len(task.Tags) > 0 {
			line += " #" + strings.Join(task.Tags, " #")
		}
		lines = append(lines, line)
	}
	return lines
}

func FormatReminders(reminders []domain.UpcomingReminder) []string {
	lines := make([]string, 0, len(reminders))
	for _, reminder := range reminders {
		lines = append(lines, fmt.Sprintf("- %s %s (%s, in %s)", reminder.ReminderTime, reminder.Title, reminder.ID, reminder.TimeUntil.Round(time.Minute)))
	}
	return lines
}
