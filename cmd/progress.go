package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/workflow"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const planningLabel = "Planning your day..."

type planDoneMsg struct {
	err error
}

type branchDoneMsg struct {
	name   string
	failed bool
}

type iterationDoneMsg struct {
	iteration int
	changes   int
}

// progressModel shows a spinner with how far the planning pipeline got:
// sources queried first, then optimization iterations.
type progressModel struct {
	spinner     spinner.Model
	work        tea.Cmd
	queried     int
	unavailable int
	iteration   int
	changes     int
	err         error
	done        bool
}

func newProgressModel(work tea.Cmd) progressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)
	return progressModel{spinner: s, work: work}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case branchDoneMsg:
		m.queried++
		if msg.failed {
			m.unavailable++
		}
		return m, nil
	case iterationDoneMsg:
		m.iteration = msg.iteration
		m.changes += msg.changes
		return m, nil
	case planDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s%s", m.spinner.View(), planningLabel, m.status())
}

func (m progressModel) status() string {
	switch {
	case m.iteration > 0:
		return fmt.Sprintf(" iteration %d, %d change(s) so far", m.iteration, m.changes)
	case m.queried > 0 && m.unavailable > 0:
		return fmt.Sprintf(" %d source(s) queried, %d unavailable", m.queried, m.unavailable)
	case m.queried > 0:
		return fmt.Sprintf(" %d source(s) queried", m.queried)
	default:
		return ""
	}
}

// progressRelay is the planner's observer hook for the spinner. It forwards
// to the current target and drops events when none is attached.
type progressRelay struct {
	mu     sync.Mutex
	target workflow.Observer
}

var _ workflow.Observer = (*progressRelay)(nil)

func (r *progressRelay) attach(target workflow.Observer) (detach func()) {
	r.mu.Lock()
	r.target = target
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		r.target = nil
		r.mu.Unlock()
	}
}

func (r *progressRelay) current() workflow.Observer {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target
}

func (r *progressRelay) BranchFinished(name string, elapsed time.Duration, err error) {
	if target := r.current(); target != nil {
		target.BranchFinished(name, elapsed, err)
	}
}

func (r *progressRelay) IterationFinished(iteration, issues, changes int) {
	if target := r.current(); target != nil {
		target.IterationFinished(iteration, issues, changes)
	}
}

func (r *progressRelay) LoopFinished(iterations int, reason workflow.TerminationReason) {
	if target := r.current(); target != nil {
		target.LoopFinished(iterations, reason)
	}
}

// programObserver turns workflow events into messages for a running program.
type programObserver struct {
	send func(tea.Msg)
}

func (o programObserver) BranchFinished(name string, _ time.Duration, err error) {
	o.send(branchDoneMsg{name: name, failed: err != nil})
}

func (o programObserver) IterationFinished(iteration, _, changes int) {
	o.send(iterationDoneMsg{iteration: iteration, changes: changes})
}

func (programObserver) LoopFinished(int, workflow.TerminationReason) {}

// runPlanProgress runs work while output shows planning progress reported
// through relay, and returns work's error.
func runPlanProgress(ctx context.Context, output io.Writer, relay *progressRelay, work func(context.Context) error) error {
	workCmd := func() tea.Msg {
		return planDoneMsg{err: work(ctx)}
	}

	p := tea.NewProgram(
		newProgressModel(workCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)
	detach := relay.attach(programObserver{send: p.Send})
	defer detach()

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(progressModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", finalModel)
	}
	return result.err
}
