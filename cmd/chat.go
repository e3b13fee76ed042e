package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/bnema/schedule-manager-cli/internal/agent"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exitWords = []string{"exit", "quit", "結束", "離開"}

func newChatCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the schedule coordinator (default command)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, app)
		},
	}
}

// runChat reads one request per line until an exit word or end of input.
// Failed requests are reported and the loop keeps going.
func runChat(cmd *cobra.Command, app *app) error {
	coordinator := app.newCoordinator()
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	_, _ = fmt.Fprintf(out, "Schedule manager ready (session %s). Type help for ideas, exit to leave.\n", coordinator.SessionID())
	for {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if isExitWord(input) {
			_, _ = fmt.Fprintln(out, "Bye.")
			return nil
		}

		var reply agent.Reply
		var err error
		handle := func(ctx context.Context) error {
			var handleErr error
			reply, handleErr = coordinator.Handle(ctx, input)
			return handleErr
		}
		if route, _ := agent.Resolve(input); route == agent.RoutePlan && app.isTerminal(out) {
			err = runPlanProgress(cmd.Context(), cmd.ErrOrStderr(), app.progress, handle)
		} else {
			err = handle(cmd.Context())
		}
		if err != nil {
			app.logger.Debug("chat request failed", zap.String("route", string(reply.Route)), zap.Error(err))
			if reply.Text == "" {
				reply.Text = "error: " + err.Error()
			}
			_, _ = fmt.Fprintln(out, reply.Text)
			continue
		}

		text, err := replyText(cmd, app, reply)
		if err != nil {
			_, _ = fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		_, _ = fmt.Fprintln(out, text)
	}
}

func replyText(cmd *cobra.Command, app *app, reply agent.Reply) (string, error) {
	if reply.Plan == nil {
		return reply.Text, nil
	}
	return app.renderPlan(cmd, *reply.Plan)
}

func isExitWord(input string) bool {
	for _, word := range exitWords {
		if strings.EqualFold(input, word) {
			return true
		}
	}
	return false
}
