// Package config loads runtime settings from the environment and an optional
// TOML file, then validates them.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyMaxIterations  = "max_optimization_iterations"
	KeyDailyCapacity  = "daily_capacity_hours"
	KeyWorkStartHour  = "work_start_hour"
	KeyWorkEndHour    = "work_end_hour"
	KeyUpcomingHours  = "upcoming_hours"
	KeyLogLevel       = "log_level"
	KeyOracleProvider = "oracle_provider"
	KeyOracleModel    = "oracle_model"
	KeyGoogleAPIKey   = "google_api_key"
	KeyOpenAIAPIKey   = "openai_api_key"
	KeyOverduePolicy  = "overdue_policy"
	KeyMemoryPath     = "memory_path"
	KeyConfigFile     = "config_file"

	configDir  = ".schedule-manager"
	configFile = "config.toml"
)

const (
	ProviderRules  = "rules"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	MaxIterations      int     `validate:"gte=1,lte=20"`
	DailyCapacityHours float64 `validate:"gt=0,lte=24"`
	WorkStartHour      int     `validate:"gte=0,lte=23"`
	WorkEndHour        int     `validate:"gtfield=WorkStartHour,lte=24"`
	UpcomingHours      float64 `validate:"gt=0"`
	LogLevel           string  `validate:"oneof=debug info warn error"`
	OracleProvider     string  `validate:"oneof=rules gemini openai"`
	OracleModel        string
	GoogleAPIKey       string `validate:"required_if=OracleProvider gemini"`
	OpenAIAPIKey       string `validate:"required_if=OracleProvider openai"`
	OverduePolicy      string `validate:"oneof=promote cancel_candidate"`
	MemoryPath         string
	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile         string
}

var validate = validator.New()

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMaxIterations, 3)
	v.SetDefault(KeyDailyCapacity, 8.0)
	v.SetDefault(KeyWorkStartHour, 9)
	v.SetDefault(KeyWorkEndHour, 18)
	v.SetDefault(KeyUpcomingHours, 24.0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyOracleProvider, ProviderRules)
	v.SetDefault(KeyOverduePolicy, "promote")
}

// CredentialKey names the stored API key of an oracle provider.
func CredentialKey(provider string) string {
	return "schedule-manager/" + provider + "/api_key"
}

// Load binds v to the environment (MAX_OPTIMIZATION_ITERATIONS, LOG_LEVEL,
// ...), merges ~/.schedule-manager/config.toml or CONFIG_FILE when present,
// and validates the result. Environment values win over the file. A missing
// API key for the selected provider is looked up in credentials, which may
// be nil.
func Load(ctx context.Context, v *viper.Viper, credentials ports.CredentialStore) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := readConfigFile(v)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		MaxIterations:      v.GetInt(KeyMaxIterations),
		DailyCapacityHours: v.GetFloat64(KeyDailyCapacity),
		WorkStartHour:      v.GetInt(KeyWorkStartHour),
		WorkEndHour:        v.GetInt(KeyWorkEndHour),
		UpcomingHours:      v.GetFloat64(KeyUpcomingHours),
		LogLevel:           strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		OracleProvider:     strings.ToLower(strings.TrimSpace(v.GetString(KeyOracleProvider))),
		OracleModel:        strings.TrimSpace(v.GetString(KeyOracleModel)),
		GoogleAPIKey:       strings.TrimSpace(v.GetString(KeyGoogleAPIKey)),
		OpenAIAPIKey:       strings.TrimSpace(v.GetString(KeyOpenAIAPIKey)),
		OverduePolicy:      strings.ToLower(strings.TrimSpace(v.GetString(KeyOverduePolicy))),
		MemoryPath:         strings.TrimSpace(v.GetString(KeyMemoryPath)),
		ConfigFile:         path,
	}

	if err := cfg.resolveAPIKey(ctx, credentials); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolveAPIKey(ctx context.Context, credentials ports.CredentialStore) error {
	var target *string
	switch c.OracleProvider {
	case ProviderGemini:
		target = &c.GoogleAPIKey
	case ProviderOpenAI:
		target = &c.OpenAIAPIKey
	default:
		return nil
	}
	if *target != "" || credentials == nil {
		return nil
	}

	value, err := credentials.Get(ctx, CredentialKey(c.OracleProvider))
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return nil
		}
		return fmt.Errorf("load %s api key: %w", c.OracleProvider, err)
	}
	*target = value
	return nil
}

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fmt.Sprint(fe.Value()))
	case "required_if":
		return fmt.Sprintf("%s is required when %s", fe.Field(), fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
	}
}

func readConfigFile(v *viper.Viper) (string, error) {
	path := v.GetString(KeyConfigFile)
	explicit := path != ""
	if !explicit {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", nil
		}
		path = filepath.Join(homeDir, configDir, configFile)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return "", nil
		}
		return "", fmt.Errorf("stat config file: %w", err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("read config file %s: %w", path, err)
	}
	return path, nil
}
