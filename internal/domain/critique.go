package domain

type IssueType string

const (
	IssuePriorityConflict IssueType = "priority_conflict"
	IssueTimeConflict     IssueType = "time_conflict"
	IssueOverload         IssueType = "overload"
	IssueOverdue          IssueType = "overdue"
)

type Issue struct {
	Type          IssueType `json:"type" yaml:"type"`
	Description   string    `json:"description" yaml:"description"`
	AffectedItems []string  `json:"affected_items" yaml:"affected_items"`
}

// Critique is one assessment of the current schedule. Each iteration's
// critique replaces the previous one.
type Critique struct {
	IsOptimal   bool     `json:"is_optimal" yaml:"is_optimal"`
	Issues      []Issue  `json:"issues" yaml:"issues"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

type Change struct {
	ItemID string `json:"item_id" yaml:"item_id"`
	Field  string `json:"field" yaml:"field"`
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Reason string `json:"reason" yaml:"reason"`
}

type Adjustment struct {
	Iteration int      `json:"iteration" yaml:"iteration"`
	Stopped   bool     `json:"stopped" yaml:"stopped"`
	Changes   []Change `json:"changes" yaml:"changes"`
	Skipped   []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Summary   string   `json:"summary" yaml:"summary"`
}
