package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	portmocks "github.com/bnema/schedule-manager-cli/internal/ports/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"MAX_OPTIMIZATION_ITERATIONS", "DAILY_CAPACITY_HOURS", "WORK_START_HOUR", "WORK_END_HOUR",
		"UPCOMING_HOURS", "LOG_LEVEL", "ORACLE_PROVIDER", "ORACLE_MODEL", "GOOGLE_API_KEY",
		"OPENAI_API_KEY", "OVERDUE_POLICY", "MEMORY_PATH", "CONFIG_FILE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(context.Background(), viper.New(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxIterations)
	assert.Equal(t, 8.0, cfg.DailyCapacityHours)
	assert.Equal(t, 9, cfg.WorkStartHour)
	assert.Equal(t, 18, cfg.WorkEndHour)
	assert.Equal(t, 24.0, cfg.UpcomingHours)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ProviderRules, cfg.OracleProvider)
	assert.Equal(t, "promote", cfg.OverduePolicy)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("MAX_OPTIMIZATION_ITERATIONS", "5")
	t.Setenv("DAILY_CAPACITY_HOURS", "6.5")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ORACLE_PROVIDER", "gemini")
	t.Setenv("GOOGLE_API_KEY", "key-123")

	cfg, err := Load(context.Background(), viper.New(), nil)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, 6.5, cfg.DailyCapacityHours)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ProviderGemini, cfg.OracleProvider)
	assert.Equal(t, "key-123", cfg.GoogleAPIKey)
}

func TestLoadReadsConfigFileBelowEnvironment(t *testing.T) {
	isolate(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".schedule-manager")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
daily_capacity_hours = 4
work_start_hour = 8
overdue_policy = "cancel_candidate"
`), 0o600))
	t.Setenv("WORK_START_HOUR", "10")

	cfg, err := Load(context.Background(), viper.New(), nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), cfg.ConfigFile)
	assert.Equal(t, 4.0, cfg.DailyCapacityHours)
	assert.Equal(t, 10, cfg.WorkStartHour)
	assert.Equal(t, "cancel_candidate", cfg.OverduePolicy)
}

func TestLoadExplicitConfigFileMustExist(t *testing.T) {
	isolate(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	_, err := Load(context.Background(), viper.New(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat config file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "unknown provider", env: map[string]string{"ORACLE_PROVIDER": "llama"}, wantErr: "OracleProvider must be one of [rules gemini openai]"},
		{name: "gemini without key", env: map[string]string{"ORACLE_PROVIDER": "gemini"}, wantErr: "GoogleAPIKey is required"},
		{name: "openai without key", env: map[string]string{"ORACLE_PROVIDER": "openai"}, wantErr: "OpenAIAPIKey is required"},
		{name: "work hours reversed", env: map[string]string{"WORK_START_HOUR": "18", "WORK_END_HOUR": "9"}, wantErr: "WorkEndHour must be greater than WorkStartHour"},
		{name: "zero iterations", env: map[string]string{"MAX_OPTIMIZATION_ITERATIONS": "0"}, wantErr: "MaxIterations failed gte=1"},
		{name: "bad overdue policy", env: map[string]string{"OVERDUE_POLICY": "ignore"}, wantErr: "OverduePolicy must be one of"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			_, err := Load(context.Background(), viper.New(), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadResolvesMissingAPIKeyFromCredentials(t *testing.T) {
	isolate(t)
	t.Setenv("ORACLE_PROVIDER", "openai")

	credentials := portmocks.NewMockCredentialStore(t)
	credentials.EXPECT().Get(mock.Anything, "schedule-manager/openai/api_key").Return("sk-stored", nil).Once()

	cfg, err := Load(context.Background(), viper.New(), credentials)
	require.NoError(t, err)
	assert.Equal(t, "sk-stored", cfg.OpenAIAPIKey)
}

func TestLoadPrefersEnvironmentAPIKey(t *testing.T) {
	isolate(t)
	t.Setenv("ORACLE_PROVIDER", "gemini")
	t.Setenv("GOOGLE_API_KEY", "from-env")

	cfg, err := Load(context.Background(), viper.New(), portmocks.NewMockCredentialStore(t))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.GoogleAPIKey)
}

func TestLoadCredentialErrors(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		wantErr string
	}{
		{name: "not stored", err: domain.ErrCredentialNotFound, wantErr: "GoogleAPIKey is required"},
		{name: "backend failure", err: errors.New("gpg failed"), wantErr: "load gemini api key: gpg failed"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			t.Setenv("ORACLE_PROVIDER", "gemini")

			credentials := portmocks.NewMockCredentialStore(t)
			credentials.EXPECT().Get(mock.Anything, CredentialKey("gemini")).Return("", tc.err).Once()

			_, err := Load(context.Background(), viper.New(), credentials)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
