package ports

import (
	"context"

	"github.com/bnema/schedule-manager-cli/internal/domain"
)

// DecisionOracle stands in for the language model behind each agent.
type DecisionOracle interface {
	// Critique assesses the schedule in the snapshot.
	Critique(ctx context.Context, snapshot domain.PlanSnapshot) (domain.Critique, error)
	// Summarize produces the free-text daily summary.
	Summarize(ctx context.Context, snapshot domain.PlanSnapshot) (string, error)
}
