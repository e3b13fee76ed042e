package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var configEnv = []string{
	"MAX_OPTIMIZATION_ITERATIONS", "DAILY_CAPACITY_HOURS", "WORK_START_HOUR", "WORK_END_HOUR",
	"UPCOMING_HOURS", "ORACLE_PROVIDER", "ORACLE_MODEL", "GOOGLE_API_KEY", "OPENAI_API_KEY",
	"OVERDUE_POLICY", "MEMORY_PATH", "CONFIG_FILE",
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ORACLE_PROVIDER", "not-a-provider")

	stdout, _, err := executeCLI(t, home, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestTasksListsOpenSeededTasksByPriority(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "", "tasks")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "[high]")
	assert.Contains(t, stdout, "Finish project report")
	assert.Contains(t, lines[3], "TSK-004")
}

func TestTasksJSONOutput(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "", "tasks", "--priority", "high", "-o", "json")
	require.NoError(t, err)

	var tasks []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &tasks))
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, "high", task["priority"])
	}
}

func TestEventsDefaultsToToday(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "", "events")
	require.NoError(t, err)
	assert.Contains(t, stdout, "10:00-11:00 Team weekly sync @ Room A (EVT-001)")
	assert.Contains(t, stdout, "Project review")
	assert.NotContains(t, stdout, "Client visit")
}

func TestEventsUnknownDateIsEmpty(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "", "events", "--date", "1999-01-01")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No events on 1999-01-01.")
}

func TestRemindersUpcomingYAMLOutput(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "", "reminders", "upcoming", "--hours", "48", "-o", "yaml")
	require.NoError(t, err)

	var reminders []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &reminders))
	for _, reminder := range reminders {
		assert.Equal(t, "active", reminder["status"])
	}
}

func TestStatsCountsSeededTasks(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, stdout, "total: 4")
	assert.Contains(t, stdout, "overdue: 0")
	assert.Contains(t, stdout, "by priority: urgent 0, high 2, medium 1, low 1")
}

func TestUnsupportedOutputFormatFails(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "", "stats", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format \"xml\"")
}

func TestPlanTextOutput(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "", "plan")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Daily Plan")
	assert.Contains(t, stdout, "today's load:")
	assert.Contains(t, stdout, "Optimization")
}

func TestPlanJSONOutputAndMetricsFile(t *testing.T) {
	home := t.TempDir()
	metricsPath := filepath.Join(t.TempDir(), "planning.prom")

	stdout, _, err := executeCLI(t, home, "", "plan", "-o", "json", "--max-iterations", "2", "--metrics-file", metricsPath)
	require.NoError(t, err)

	var report struct {
		Summary string `json:"summary"`
		Query   struct {
			Branches []map[string]any `json:"branches"`
		} `json:"query"`
		Loop struct {
			Iterations int    `json:"iterations"`
			Reason     string `json:"reason"`
		} `json:"loop"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.NotEmpty(t, report.Summary)
	assert.Len(t, report.Query.Branches, 3)
	assert.GreaterOrEqual(t, report.Loop.Iterations, 1)
	assert.LessOrEqual(t, report.Loop.Iterations, 2)
	assert.Contains(t, []string{"exit_signal", "budget_exhausted"}, report.Loop.Reason)

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "schedule_manager_planning_loop_terminations_total")
}

func TestChatLoopHandlesRequestsUntilExitWord(t *testing.T) {
	home := t.TempDir()
	input := "\nlist tasks\ncomplete TSK-002\ncomplete TSK-999\n結束\nlist tasks\n"

	stdout, _, err := executeCLI(t, home, input)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Open tasks (by priority):")
	assert.Contains(t, stdout, `completed task TSK-002 "Reply to client email"`)
	assert.Contains(t, stdout, "task TSK-999 not found")
	assert.Contains(t, stdout, "Bye.")
	assert.Equal(t, 1, strings.Count(stdout, "Open tasks (by priority):"))

	memory, err := os.ReadFile(filepath.Join(home, ".schedule-manager", "memory.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(memory), "complete TSK-002")
}

func TestChatExitWordsAreCaseInsensitive(t *testing.T) {
	testCases := []string{"exit", "QUIT", "離開", "  Exit  "}

	for _, word := range testCases {
		word := word
		t.Run(word, func(t *testing.T) {
			home := t.TempDir()

			stdout, _, err := executeCLI(t, home, word+"\nhelp\n")
			require.NoError(t, err)
			assert.Contains(t, stdout, "Bye.")
			assert.NotContains(t, stdout, "You can ask for:")
		})
	}
}

func TestChatEndsAtEndOfInput(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "help\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, stdout, "You can ask for:")
	assert.NotContains(t, stdout, "Bye.")
}

func TestInvalidConfigurationFails(t *testing.T) {
	testCases := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "unknown provider", env: map[string]string{"ORACLE_PROVIDER": "llama"}, wantErr: "invalid config"},
		{name: "gemini without key", env: map[string]string{"ORACLE_PROVIDER": "gemini", "GOOGLE_API_KEY": ""}, wantErr: "GoogleAPIKey is required"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			home := t.TempDir()
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			_, _, err := executeCLI(t, home, "", "tasks")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

// executeCLI runs the root command with HOME pointed at home. Variables a
// test set before the call are kept; the rest of the config env is cleared.
func executeCLI(t *testing.T, home, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("LOG_LEVEL", "error")
	for _, key := range configEnv {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		t.Setenv(key, "")
	}

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCredentialsSetEnablesConfiguredProvider(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "sk-test-123\n", "credentials", "set", "openai")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Stored openai API key")

	t.Setenv("ORACLE_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	_, _, err = executeCLI(t, home, "", "tasks")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "", "credentials", "delete", "openai")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "", "tasks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAIAPIKey is required")
}

func TestCredentialsRejectUnknownProvider(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "", "credentials", "set", "llama", "--value", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider \"llama\"")
}
