package cmd

import (
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := &app{}
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "sm",
		Short:         "Schedule manager (sm): plan your day with a team of schedule agents",
		Long:          "sm keeps your events, tasks and reminders, answers questions about them in a chat, and runs a daily planning pipeline that critiques and adjusts the schedule until it holds up.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(cmd.Context(), verbose)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, app)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCredentialsCmd(),
		newChatCmd(app),
		newPlanCmd(app),
		newStatsCmd(app),
		newEventsCmd(app),
		newTasksCmd(app),
		newRemindersCmd(app),
	)

	return rootCmd
}
