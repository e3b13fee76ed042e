package jsoncritique

import (
	"encoding/json"
	"testing"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		optimal bool
		issues  int
		wantErr error
	}{
		{name: "bare", input: `{"is_optimal": true, "issues": [], "suggestions": []}`, optimal: true},
		{name: "fenced", input: "```json\n{\"is_optimal\": false, \"issues\": [{\"type\": \"overdue\", \"affected_items\": [\"TSK-001\"]}]}\n```", issues: 1},
		{name: "chatty", input: "Here is my review:\n{\"is_optimal\": true}\nThanks!", optimal: true},
		{name: "optimal with issues", input: `{"is_optimal": true, "issues": [{"type": "overdue", "affected_items": ["TSK-001"]}]}`, optimal: true, issues: 1},
		{name: "no json", input: "looks fine to me", wantErr: ErrNoJSON},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			critique, err := Decode(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.optimal, critique.IsOptimal)
			assert.Len(t, critique.Issues, tc.issues)
			assert.NotNil(t, critique.Suggestions)
		})
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := Decode(`{"is_optimal": tru}`)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoJSON)
}

func TestPromptEncodesUnavailableSectionsAsNull(t *testing.T) {
	t.Parallel()

	prompt, err := Prompt(domain.PlanSnapshot{
		Today:         "2024-01-02",
		WorkStartHour: 9,
		WorkEndHour:   18,
		Tasks:         []domain.Task{{ID: "TSK-001", Title: "report", Priority: domain.PriorityHigh}},
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(prompt), &decoded))
	assert.Nil(t, decoded["events"])
	assert.Equal(t, "09:00-18:00", decoded["work_hours"])
	tasks, ok := decoded["tasks"].([]any)
	require.True(t, ok)
	assert.Len(t, tasks, 1)
}
