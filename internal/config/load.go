package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LINGUA"

// defaults lists every key with its default value. Registering a default is
// also what makes viper consult the matching environment variable.
var defaults = map[string]any{
	"server.port":                             8054,
	"server.log_level":                        "info",
	"server.shutdown_timeout_seconds":         10,
	"server.max_upload_mb":                    20,
	"llm.text_model":                          "gemma-3-27b-it",
	"llm.vision_model":                        "gemini-2.5-flash",
	"llm.audio_model":                         "gemini-2.5-flash",
	"llm.speech_model":                        "gemini-2.5-flash-preview-tts",
	"llm.max_retries":                         3,
	"llm.retry_delay_seconds":                 2,
	"llm.request_timeout_seconds":             30,
	"conversation.session_ttl_minutes":        30,
	"conversation.max_sessions":               10000,
	"conversation.janitor_interval_seconds":   60,
	"conversation.open_with_greeting":         true,
	"conversation.phrases_file":               "",
	"conversation.enrichment_enabled":         false,
	"conversation.enrichment_timeout_seconds": 10,
}

// Keys without a default are bound explicitly.
var boundEnv = []string{
	"database.url",
	"llm.gemini_api_key",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit YAML config file. An empty path searches
// for config.yaml in the working directory and ignores it when absent.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range boundEnv {
		envVar := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
