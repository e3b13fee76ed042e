package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/schedule-manager-cli/internal/config"
	"github.com/bnema/schedule-manager-cli/internal/ports"
	"github.com/spf13/cobra"
)

var credentialProviders = []string{config.ProviderGemini, config.ProviderOpenAI}

func newCredentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Store oracle API keys in pass or ~/.schedule-manager/credentials",
		// Runs without a valid config, so a missing key can be stored.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	cmd.AddCommand(
		newCredentialsSetCmd(),
		newCredentialsDeleteCmd(),
	)
	return cmd
}

func newCredentialsSetCmd() *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:       "set <gemini|openai>",
		Short:     "Store the API key for a provider (reads stdin when --value is empty)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: credentialProviders,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := credentialProvider(args[0])
			if err != nil {
				return err
			}

			if value == "" {
				line, readErr := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if readErr != nil && line == "" {
					return errors.New("no API key given: pass --value or pipe it on stdin")
				}
				value = line
			}
			value = strings.TrimSpace(value)
			if value == "" {
				return errors.New("API key is empty")
			}

			store, err := newCredentialStore()
			if err != nil {
				return err
			}
			return putCredential(cmd, store, provider, value)
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "API key value")
	return cmd
}

func newCredentialsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "delete <gemini|openai>",
		Short:     "Remove the stored API key of a provider",
		Args:      cobra.ExactArgs(1),
		ValidArgs: credentialProviders,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := credentialProvider(args[0])
			if err != nil {
				return err
			}

			store, err := newCredentialStore()
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), config.CredentialKey(provider)); err != nil {
				return fmt.Errorf("delete %s api key: %w", provider, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s API key\n", provider)
			return err
		},
	}
}

func putCredential(cmd *cobra.Command, store ports.CredentialStore, provider, value string) error {
	if err := store.Put(cmd.Context(), config.CredentialKey(provider), value); err != nil {
		return fmt.Errorf("store %s api key: %w", provider, err)
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Stored %s API key\n", provider)
	return err
}

func credentialProvider(raw string) (string, error) {
	provider := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range credentialProviders {
		if provider == known {
			return provider, nil
		}
	}
	return "", fmt.Errorf("unknown provider %q (want gemini or openai)", raw)
}
