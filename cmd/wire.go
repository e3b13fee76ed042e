package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	credentialchain "github.com/bnema/schedule-manager-cli/internal/adapters/credentials/chain"
	"github.com/bnema/schedule-manager-cli/internal/adapters/metrics/prom"
	"github.com/bnema/schedule-manager-cli/internal/adapters/oracle/gemini"
	"github.com/bnema/schedule-manager-cli/internal/adapters/oracle/openai"
	"github.com/bnema/schedule-manager-cli/internal/adapters/oracle/rules"
	planrender "github.com/bnema/schedule-manager-cli/internal/adapters/render/plan"
	"github.com/bnema/schedule-manager-cli/internal/adapters/repo/memory"
	tomlrepo "github.com/bnema/schedule-manager-cli/internal/adapters/repo/toml"
	"github.com/bnema/schedule-manager-cli/internal/agent"
	"github.com/bnema/schedule-manager-cli/internal/application"
	"github.com/bnema/schedule-manager-cli/internal/config"
	"github.com/bnema/schedule-manager-cli/internal/ports"
	"github.com/bnema/schedule-manager-cli/internal/workflow"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	cfg       config.Config
	logger    *zap.Logger
	clock     ports.Clock
	settings  agent.Settings
	oracle    ports.DecisionOracle
	calendar  *application.CalendarService
	tasks     *application.TaskService
	reminders *application.ReminderService
	tools     *agent.Tools
	sink      *tomlrepo.Sink
	metrics   *prom.Metrics
	progress  *progressRelay

	planRenderer func(workflow.PlanReport, planrender.RenderOptions) (string, error)
	isTerminal   func(io.Writer) bool
}

const credentialsDir = "credentials"

// wire loads the configuration and builds the stores, services and agents.
// The entity stores live for the process and start from the sample schedule.
func (a *app) wire(ctx context.Context, verbose bool) error {
	credentials, err := newCredentialStore()
	if err != nil {
		return err
	}

	cfg, err := config.Load(ctx, viper.New(), credentials)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, verbose)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	oracle, err := newOracle(ctx, cfg)
	if err != nil {
		return fmt.Errorf("wire decision oracle: %w", err)
	}

	clock := ports.SystemClock{}
	events := memory.NewEventStore(memory.WithClock(clock))
	tasks := memory.NewTaskStore(memory.WithClock(clock))
	reminders := memory.NewReminderStore(memory.WithClock(clock))
	if err := memory.Seed(ctx, clock.Now(), events, tasks, reminders); err != nil {
		return fmt.Errorf("seed schedule: %w", err)
	}

	sinkCfg := viper.New()
	if cfg.MemoryPath != "" {
		sinkCfg.Set(tomlrepo.MemoryPathKey, cfg.MemoryPath)
	}
	sink, err := tomlrepo.NewSink(sinkCfg)
	if err != nil {
		return fmt.Errorf("wire memory sink: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.clock = clock
	a.settings = agent.Settings{
		DailyCapacityHours: cfg.DailyCapacityHours,
		WorkStartHour:      cfg.WorkStartHour,
		WorkEndHour:        cfg.WorkEndHour,
		UpcomingHours:      cfg.UpcomingHours,
		OverduePolicy:      agent.OverduePolicy(cfg.OverduePolicy),
	}
	a.oracle = oracle
	a.calendar = application.NewCalendarService(events, clock)
	a.tasks = application.NewTaskService(tasks, clock)
	a.reminders = application.NewReminderService(reminders, clock)
	a.tools = agent.NewTools(a.calendar, a.tasks, a.reminders)
	a.sink = sink
	a.metrics = prom.New(nil)
	a.progress = &progressRelay{}
	if a.planRenderer == nil {
		a.planRenderer = planrender.Render
	}
	if a.isTerminal == nil {
		a.isTerminal = isTerminal
	}

	logger.Debug("app wired",
		zap.String("oracle", cfg.OracleProvider),
		zap.String("memory_path", sink.Path()),
		zap.String("config_file", cfg.ConfigFile),
	)
	return nil
}

// newPlanner builds a daily planning pipeline with its own loop budget.
func (a *app) newPlanner(maxIterations int) *workflow.DailyPlanning {
	branches := agent.QueryBranches(a.calendar, a.tasks, a.reminders, a.clock, a.settings)
	observer := workflow.Observers{a.metrics, a.progress}
	query := workflow.NewParallelStage(branches, a.logger, observer)
	analyst := agent.NewAnalyst(a.oracle, a.clock, a.settings, a.logger)
	critic := agent.NewCritic(a.calendar, a.tasks, a.reminders, a.oracle, a.clock, a.settings)
	adjuster := agent.NewAdjuster(a.calendar, a.tasks, a.settings, a.logger)
	loop := workflow.NewLoop(maxIterations, critic, adjuster, a.logger, observer)

	return workflow.NewDailyPlanning(query, analyst, loop, a.logger)
}

func (a *app) newCoordinator() *agent.Coordinator {
	return agent.NewCoordinator(agent.Dependencies{
		Tools:     a.tools,
		Calendar:  a.calendar,
		Tasks:     a.tasks,
		Reminders: a.reminders,
		Planner:   a.newPlanner(a.cfg.MaxIterations),
		Memory:    a.sink,
		Clock:     a.clock,
		Settings:  a.settings,
		Logger:    a.logger,
	})
}

func newOracle(ctx context.Context, cfg config.Config) (ports.DecisionOracle, error) {
	switch cfg.OracleProvider {
	case config.ProviderGemini:
		return gemini.New(ctx, cfg.GoogleAPIKey, cfg.OracleModel)
	case config.ProviderOpenAI:
		return openai.New(cfg.OpenAIAPIKey, cfg.OracleModel)
	default:
		return rules.New(), nil
	}
}

// newCredentialStore reads API keys from pass, falling back to files under
// ~/.schedule-manager/credentials.
func newCredentialStore() (ports.CredentialStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	store, err := credentialchain.NewPassFirstWithFileFallback(filepath.Join(homeDir, ".schedule-manager", credentialsDir))
	if err != nil {
		return nil, fmt.Errorf("wire credential store: %w", err)
	}
	return store, nil
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	atLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		atLevel = zapcore.InfoLevel
	}
	if verbose {
		atLevel = zapcore.DebugLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(atLevel)
	return zapCfg.Build()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
